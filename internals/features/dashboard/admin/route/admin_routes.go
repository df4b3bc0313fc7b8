// file: internals/features/dashboard/admin/route/admin_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_dashboard/internals/features/dashboard/admin/controller"
	"sekolahku_dashboard/internals/features/dashboard/core"
)

// AdminRoutes: CRUD jadwal, semester, kelas (wali), user.
func AdminRoutes(r fiber.Router, deps core.Deps) {
	ctl := controller.NewAdminConsoleController(deps)

	r.Get("/dashboard", ctl.Dashboard)

	jadwal := r.Group("/jadwal")
	jadwal.Get("/", ctl.Schedules)
	jadwal.Post("/", ctl.CreateSchedule)
	jadwal.Put("/:id", ctl.UpdateSchedule)
	jadwal.Delete("/:id", ctl.DeleteSchedule)

	semester := r.Group("/semesters")
	semester.Get("/", ctl.Semesters)
	semester.Post("/", ctl.CreateSemester)
	semester.Patch("/:id", ctl.UpdateSemester)

	kelas := r.Group("/kelas")
	kelas.Get("/", ctl.Classes)
	kelas.Get("/:id/kandidat-wali", ctl.HomeroomCandidates)

	users := r.Group("/users")
	users.Get("/", ctl.Users)
	users.Post("/", ctl.CreateUser)
	users.Put("/:id", ctl.UpdateUser)
	users.Delete("/:id", ctl.DeleteUser)
}
