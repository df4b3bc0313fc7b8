// file: internals/features/dashboard/student/route/student_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_dashboard/internals/features/dashboard/core"
	"sekolahku_dashboard/internals/features/dashboard/student/controller"
	"sekolahku_dashboard/internals/middlewares"
)

// StudentRoutes: dashboard siswa / orang tua (read-only + cetak rapor).
//
//	siswa := app.Group("/api/siswa", authJWT, onlyStudents)
//	route.StudentRoutes(siswa, deps)
func StudentRoutes(r fiber.Router, deps core.Deps) {
	ctl := controller.NewStudentDashboardController(deps)

	r.Get("/dashboard", ctl.Dashboard)
	r.Get("/rapor", middlewares.ReportRateLimiter(), ctl.PrintReport)
}
