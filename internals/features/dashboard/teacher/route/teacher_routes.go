// file: internals/features/dashboard/teacher/route/teacher_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_dashboard/internals/features/dashboard/core"
	"sekolahku_dashboard/internals/features/dashboard/teacher/controller"
)

// TeacherRoutes: input nilai & absensi untuk guru (walikelas juga boleh).
func TeacherRoutes(r fiber.Router, deps core.Deps) {
	ctl := controller.NewTeacherDashboardController(deps)

	r.Get("/dashboard", ctl.Dashboard)
	r.Get("/form-options", ctl.FormOptions)

	nilai := r.Group("/nilai")
	nilai.Post("/", ctl.CreateGrade)
	nilai.Put("/:id", ctl.UpdateGrade)
	nilai.Delete("/:id", ctl.DeleteGrade)

	absensi := r.Group("/absensi")
	absensi.Post("/", ctl.CreateAttendance)
	absensi.Put("/:id", ctl.UpdateAttendance)
	absensi.Delete("/:id", ctl.DeleteAttendance)
}
