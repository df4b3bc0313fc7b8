// file: internals/features/dashboard/homeroom/route/homeroom_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_dashboard/internals/features/dashboard/core"
	"sekolahku_dashboard/internals/features/dashboard/homeroom/controller"
	"sekolahku_dashboard/internals/middlewares"
)

func HomeroomRoutes(r fiber.Router, deps core.Deps) {
	ctl := controller.NewHomeroomDashboardController(deps)

	r.Get("/dashboard", ctl.Dashboard)
	r.Patch("/nilai/:id/verifikasi", ctl.VerifyGrade)
	r.Get("/rapor/:studentId", middlewares.ReportRateLimiter(), ctl.PrintReport)
}
