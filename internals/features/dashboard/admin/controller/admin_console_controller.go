// file: internals/features/dashboard/admin/controller/admin_console_controller.go
package controller

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sekolahku_dashboard/internals/features/dashboard/admin/service"
	"sekolahku_dashboard/internals/features/dashboard/core"
	"sekolahku_dashboard/internals/features/dashboard/session"
	schedto "sekolahku_dashboard/internals/features/school/schedules/dto"
	semdto "sekolahku_dashboard/internals/features/school/semesters/dto"
	userdto "sekolahku_dashboard/internals/features/users/dto"
	usermodel "sekolahku_dashboard/internals/features/users/model"
	helper "sekolahku_dashboard/internals/helpers"
	helperAuth "sekolahku_dashboard/internals/helpers/auth"
)

type AdminConsoleController struct {
	core.Deps
}

func NewAdminConsoleController(deps core.Deps) *AdminConsoleController {
	return &AdminConsoleController{Deps: deps}
}

func (ctl *AdminConsoleController) factory(id core.Identity) func() *service.Console {
	return func() *service.Console {
		return service.New(ctl.ClientFor(id), id,
			service.WithLogger(ctl.Logger()),
			service.WithOnDataChange(ctl.OnChange(id)),
		)
	}
}

// read menjalankan fn pada console sesi; ?refresh=true memaksa load ulang.
func (ctl *AdminConsoleController) read(c *fiber.Ctx, fn func(ctx context.Context, con *service.Console) error) error {
	id, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	ctx := core.ReqCtx(c)
	return session.Run(ctx, ctl.Sessions, core.SessionKey(id), ctl.factory(id), c.QueryBool("refresh"),
		func(con *service.Console, loadErr error) error {
			if loadErr != nil {
				return loadErr
			}
			return fn(ctx, con)
		})
}

func (ctl *AdminConsoleController) mutate(c *fiber.Ctx, status int,
	op func(ctx context.Context, con *service.Console) error,
	render func(con *service.Console) any) error {
	id, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	return core.Mutate(c, ctl.Sessions, id, ctl.factory(id), status, op,
		func(con *service.Console) (any, *core.Notice) { return render(con), con.Notice() })
}

func scheduleView(con *service.Console) any { return con.ScheduleView() }
func semesterList(con *service.Console) any { return con.Semesters() }
func userList(con *service.Console) any     { return con.Users("") }

/* =========================================================
   Ringkasan
========================================================= */

type Overview struct {
	Schedules service.ScheduleView `json:"schedules"`
	Classes   []service.ClassView  `json:"classes"`
	Users     map[string]int       `json:"users"`
	Errors    map[string]string    `json:"errors,omitempty"`
}

// GET /dashboard: selalu load ulang semua referensi.
func (ctl *AdminConsoleController) Dashboard(c *fiber.Ctx) error {
	id, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	ctx := core.ReqCtx(c)

	var view Overview
	var failure error
	err = session.Run(ctx, ctl.Sessions, core.SessionKey(id), ctl.factory(id), true,
		func(con *service.Console, loadErr error) error {
			failure = loadErr
			counts := map[string]int{}
			for _, u := range con.Users("") {
				counts[u.Role]++
			}
			view = Overview{
				Schedules: con.ScheduleView(),
				Classes:   con.Classes(),
				Users:     counts,
				Errors:    con.Errors(),
			}
			return nil
		})
	if err != nil {
		return core.WriteFailure(c, err)
	}
	return core.RespondView(c, failure, view)
}

/* =========================================================
   Jadwal
========================================================= */

// GET /jadwal?semesterId=&kelasId=&hari=
func (ctl *AdminConsoleController) Schedules(c *fiber.Ctx) error {
	var view service.ScheduleView
	var failure error
	err := ctl.read(c, func(ctx context.Context, con *service.Console) error {
		if semID := c.Query("semesterId"); semID != "" {
			failure = con.SelectSemester(ctx, semID)
		}
		con.SetFilter(c.Query("kelasId"), c.Query("hari"))
		view = con.ScheduleView()
		return nil
	})
	if err != nil {
		return core.WriteFailure(c, err)
	}
	return core.RespondView(c, failure, view)
}

func (ctl *AdminConsoleController) CreateSchedule(c *fiber.Ctx) error {
	form, err := schedto.DecodeScheduleForm(c.Body())
	if err != nil {
		return core.WriteFailure(c, err)
	}
	form.ID = ""
	return ctl.mutate(c, fiber.StatusCreated,
		func(ctx context.Context, con *service.Console) error { return con.SubmitSchedule(ctx, form) }, scheduleView)
}

func (ctl *AdminConsoleController) UpdateSchedule(c *fiber.Ctx) error {
	form, err := schedto.DecodeScheduleForm(c.Body())
	if err != nil {
		return core.WriteFailure(c, err)
	}
	form.ID = strings.TrimSpace(c.Params("id"))
	return ctl.mutate(c, fiber.StatusOK,
		func(ctx context.Context, con *service.Console) error { return con.SubmitSchedule(ctx, form) }, scheduleView)
}

func (ctl *AdminConsoleController) DeleteSchedule(c *fiber.Ctx) error {
	schedID := c.Params("id")
	return ctl.mutate(c, fiber.StatusOK,
		func(ctx context.Context, con *service.Console) error { return con.DeleteSchedule(ctx, schedID) }, scheduleView)
}

/* =========================================================
   Semester
========================================================= */

func (ctl *AdminConsoleController) Semesters(c *fiber.Ctx) error {
	var out any
	err := ctl.read(c, func(_ context.Context, con *service.Console) error {
		out = con.Semesters()
		return nil
	})
	if err != nil {
		return core.WriteFailure(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

func (ctl *AdminConsoleController) CreateSemester(c *fiber.Ctx) error {
	var body semdto.SemesterCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	return ctl.mutate(c, fiber.StatusCreated,
		func(ctx context.Context, con *service.Console) error { return con.CreateSemester(ctx, &body) }, semesterList)
}

func (ctl *AdminConsoleController) UpdateSemester(c *fiber.Ctx) error {
	var body semdto.SemesterUpdateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	semID := c.Params("id")
	return ctl.mutate(c, fiber.StatusOK,
		func(ctx context.Context, con *service.Console) error { return con.UpdateSemester(ctx, semID, &body) }, semesterList)
}

/* =========================================================
   Kelas
========================================================= */

func (ctl *AdminConsoleController) Classes(c *fiber.Ctx) error {
	var out []service.ClassView
	err := ctl.read(c, func(_ context.Context, con *service.Console) error {
		out = con.Classes()
		return nil
	})
	if err != nil {
		return core.WriteFailure(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /kelas/:id/kandidat-wali: guru yang belum memegang kelas lain.
func (ctl *AdminConsoleController) HomeroomCandidates(c *fiber.Ctx) error {
	kelasID := c.Params("id")
	var out []usermodel.Teacher
	err := ctl.read(c, func(_ context.Context, con *service.Console) error {
		out = con.HomeroomCandidates(kelasID)
		return nil
	})
	if err != nil {
		return core.WriteFailure(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

/* =========================================================
   User
========================================================= */

// GET /users?role=&page=&per_page=
func (ctl *AdminConsoleController) Users(c *fiber.Ctx) error {
	role := usermodel.NormalizeRole(c.Query("role"))
	var all []usermodel.MergedUser
	err := ctl.read(c, func(_ context.Context, con *service.Console) error {
		all = con.Users(role)
		return nil
	})
	if err != nil {
		return core.WriteFailure(c, err)
	}
	page, meta := helper.Paginate(all, helper.ResolvePaging(c, 20, 100))
	return helper.JsonList(c, "ok", page, meta)
}

func (ctl *AdminConsoleController) CreateUser(c *fiber.Ctx) error {
	form, err := userdto.DecodeUserForm(c.Body())
	if err != nil {
		return core.WriteFailure(c, err)
	}
	return ctl.mutate(c, fiber.StatusCreated,
		func(ctx context.Context, con *service.Console) error { return con.CreateUser(ctx, form) }, userList)
}

func (ctl *AdminConsoleController) UpdateUser(c *fiber.Ctx) error {
	form, err := userdto.DecodeUserForm(c.Body())
	if err != nil {
		return core.WriteFailure(c, err)
	}
	userID := c.Params("id")
	return ctl.mutate(c, fiber.StatusOK,
		func(ctx context.Context, con *service.Console) error { return con.UpdateUser(ctx, userID, form) }, userList)
}

func (ctl *AdminConsoleController) DeleteUser(c *fiber.Ctx) error {
	userID := c.Params("id")
	return ctl.mutate(c, fiber.StatusOK,
		func(ctx context.Context, con *service.Console) error { return con.DeleteUser(ctx, userID) }, userList)
}
