// file: internals/features/dashboard/teacher/controller/teacher_dashboard_controller.go
package controller

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"sekolahku_dashboard/internals/features/dashboard/core"
	"sekolahku_dashboard/internals/features/dashboard/session"
	"sekolahku_dashboard/internals/features/dashboard/teacher/service"
	attdto "sekolahku_dashboard/internals/features/school/attendance/dto"
	gradedto "sekolahku_dashboard/internals/features/school/grades/dto"
	helper "sekolahku_dashboard/internals/helpers"
	helperAuth "sekolahku_dashboard/internals/helpers/auth"
)

type TeacherDashboardController struct {
	core.Deps
}

func NewTeacherDashboardController(deps core.Deps) *TeacherDashboardController {
	return &TeacherDashboardController{Deps: deps}
}

func (ctl *TeacherDashboardController) factory(id core.Identity) func() *service.Dashboard {
	return func() *service.Dashboard {
		return service.New(ctl.ClientFor(id), id,
			service.WithLogger(ctl.Logger()),
			service.WithOnDataChange(ctl.OnChange(id)),
		)
	}
}

func render(d *service.Dashboard) (any, *core.Notice) {
	v := d.View()
	return v, v.Notice
}

// GET /dashboard?semesterId=
func (ctl *TeacherDashboardController) Dashboard(c *fiber.Ctx) error {
	id, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	ctx := core.ReqCtx(c)
	semID := c.Query("semesterId")

	var view service.View
	var failure error
	err = session.Run(ctx, ctl.Sessions, core.SessionKey(id), ctl.factory(id), semID == "",
		func(d *service.Dashboard, loadErr error) error {
			failure = loadErr
			if semID != "" && loadErr == nil {
				failure = d.SelectSemester(ctx, semID)
			}
			view = d.View()
			return nil
		})
	if err != nil {
		return core.WriteFailure(c, err)
	}
	return core.RespondView(c, failure, view)
}

// GET /form-options?kelasId=
func (ctl *TeacherDashboardController) FormOptions(c *fiber.Ctx) error {
	id, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	var opts service.FormOptions
	err = session.Run(core.ReqCtx(c), ctl.Sessions, core.SessionKey(id), ctl.factory(id), false,
		func(d *service.Dashboard, loadErr error) error {
			if loadErr != nil {
				return loadErr
			}
			opts = d.Options(c.Query("kelasId"))
			return nil
		})
	if err != nil {
		return core.WriteFailure(c, err)
	}
	return helper.JsonOK(c, "ok", opts)
}

/* =========================================================
   Nilai
========================================================= */

func (ctl *TeacherDashboardController) CreateGrade(c *fiber.Ctx) error {
	id, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	form, err := gradedto.DecodeGradeForm(c.Body())
	if err != nil {
		return core.WriteFailure(c, err)
	}
	return core.Mutate(c, ctl.Sessions, id, ctl.factory(id), fiber.StatusCreated,
		func(ctx context.Context, d *service.Dashboard) error { return d.CreateGrade(ctx, form) }, render)
}

func (ctl *TeacherDashboardController) UpdateGrade(c *fiber.Ctx) error {
	id, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	form, err := gradedto.DecodeGradeForm(c.Body())
	if err != nil {
		return core.WriteFailure(c, err)
	}
	gradeID := c.Params("id")
	return core.Mutate(c, ctl.Sessions, id, ctl.factory(id), fiber.StatusOK,
		func(ctx context.Context, d *service.Dashboard) error { return d.UpdateGrade(ctx, gradeID, form) }, render)
}

func (ctl *TeacherDashboardController) DeleteGrade(c *fiber.Ctx) error {
	id, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	gradeID := c.Params("id")
	return core.Mutate(c, ctl.Sessions, id, ctl.factory(id), fiber.StatusOK,
		func(ctx context.Context, d *service.Dashboard) error { return d.DeleteGrade(ctx, gradeID) }, render)
}

/* =========================================================
   Absensi
========================================================= */

func (ctl *TeacherDashboardController) CreateAttendance(c *fiber.Ctx) error {
	id, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	form, err := attdto.DecodeAttendanceForm(c.Body())
	if err != nil {
		return core.WriteFailure(c, err)
	}
	return core.Mutate(c, ctl.Sessions, id, ctl.factory(id), fiber.StatusCreated,
		func(ctx context.Context, d *service.Dashboard) error { return d.CreateAttendance(ctx, form) }, render)
}

func (ctl *TeacherDashboardController) UpdateAttendance(c *fiber.Ctx) error {
	id, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	form, err := attdto.DecodeAttendanceForm(c.Body())
	if err != nil {
		return core.WriteFailure(c, err)
	}
	attID := c.Params("id")
	return core.Mutate(c, ctl.Sessions, id, ctl.factory(id), fiber.StatusOK,
		func(ctx context.Context, d *service.Dashboard) error { return d.UpdateAttendance(ctx, attID, form) }, render)
}

func (ctl *TeacherDashboardController) DeleteAttendance(c *fiber.Ctx) error {
	id, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	attID := c.Params("id")
	return core.Mutate(c, ctl.Sessions, id, ctl.factory(id), fiber.StatusOK,
		func(ctx context.Context, d *service.Dashboard) error { return d.DeleteAttendance(ctx, attID) }, render)
}
