// file: internals/route/details/dashboard_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_dashboard/internals/constants"
	adminRoutes "sekolahku_dashboard/internals/features/dashboard/admin/route"
	"sekolahku_dashboard/internals/features/dashboard/core"
	homeroomRoutes "sekolahku_dashboard/internals/features/dashboard/homeroom/route"
	studentRoutes "sekolahku_dashboard/internals/features/dashboard/student/route"
	teacherRoutes "sekolahku_dashboard/internals/features/dashboard/teacher/route"
	authMiddleware "sekolahku_dashboard/internals/middlewares/auth"
)

/* ===================== SISWA / ORANG TUA ===================== */

func StudentDashboardRoutes(api fiber.Router, auth fiber.Handler, deps core.Deps) {
	g := api.Group("/siswa",
		auth,
		authMiddleware.OnlyRoles(constants.RoleErrorStudent("dashboard siswa"), constants.StudentRoles...),
	)
	studentRoutes.StudentRoutes(g, deps)
}

/* ===================== GURU ===================== */

func TeacherDashboardRoutes(api fiber.Router, auth fiber.Handler, deps core.Deps) {
	g := api.Group("/guru",
		auth,
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("dashboard guru"), constants.TeacherRoles...),
	)
	teacherRoutes.TeacherRoutes(g, deps)
}

/* ===================== WALI KELAS ===================== */

func HomeroomDashboardRoutes(api fiber.Router, auth fiber.Handler, deps core.Deps) {
	g := api.Group("/walikelas",
		auth,
		authMiddleware.OnlyRoles(constants.RoleErrorHomeroom("dashboard wali kelas"), constants.HomeroomOnly...),
	)
	homeroomRoutes.HomeroomRoutes(g, deps)
}

/* ===================== ADMIN ===================== */

func AdminDashboardRoutes(api fiber.Router, auth fiber.Handler, deps core.Deps) {
	g := api.Group("/admin",
		auth,
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("konsol admin"), constants.AdminOnly...),
	)
	adminRoutes.AdminRoutes(g, deps)
}
