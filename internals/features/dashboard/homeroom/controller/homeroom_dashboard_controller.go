// file: internals/features/dashboard/homeroom/controller/homeroom_dashboard_controller.go
package controller

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"sekolahku_dashboard/internals/features/dashboard/core"
	"sekolahku_dashboard/internals/features/dashboard/homeroom/service"
	"sekolahku_dashboard/internals/features/dashboard/session"
	gradedto "sekolahku_dashboard/internals/features/school/grades/dto"
	reportmodel "sekolahku_dashboard/internals/features/school/reports/model"
	helper "sekolahku_dashboard/internals/helpers"
	helperAuth "sekolahku_dashboard/internals/helpers/auth"
)

type HomeroomDashboardController struct {
	core.Deps
}

func NewHomeroomDashboardController(deps core.Deps) *HomeroomDashboardController {
	return &HomeroomDashboardController{Deps: deps}
}

func (ctl *HomeroomDashboardController) factory(id core.Identity) func() *service.Dashboard {
	return func() *service.Dashboard {
		opts := []service.Option{
			service.WithLogger(ctl.Logger()),
			service.WithOnDataChange(ctl.OnChange(id)),
			service.WithSchool(ctl.School),
		}
		if ctl.Printer != nil {
			opts = append(opts, service.WithPrinter(ctl.Printer))
		}
		return service.New(ctl.ClientFor(id), id, opts...)
	}
}

// GET /dashboard?semesterId=
func (ctl *HomeroomDashboardController) Dashboard(c *fiber.Ctx) error {
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

// PATCH /nilai/:id/verifikasi  body: {"isVerified": true}
func (ctl *HomeroomDashboardController) VerifyGrade(c *fiber.Ctx) error {
	id, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	var body gradedto.VerifyGradeDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := helper.Validator().Struct(body); err != nil {
		return core.WriteFailure(c, err)
	}
	gradeID := c.Params("id")
	return core.Mutate(c, ctl.Sessions, id, ctl.factory(id), fiber.StatusOK,
		func(ctx context.Context, d *service.Dashboard) error {
			return d.VerifyGrade(ctx, gradeID, *body.IsVerified)
		},
		func(d *service.Dashboard) (any, *core.Notice) {
			v := d.View()
			return v, v.Notice
		})
}

// GET /rapor/:studentId
func (ctl *HomeroomDashboardController) PrintReport(c *fiber.Ctx) error {
	id, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	ctx := core.ReqCtx(c)
	studentID := c.Params("studentId")

	var out *reportmodel.Output
	err = session.Run(ctx, ctl.Sessions, core.SessionKey(id), ctl.factory(id), false,
		func(d *service.Dashboard, loadErr error) error {
			if loadErr != nil {
				return loadErr
			}
			res, err := d.PrintReport(ctx, studentID)
			out = res
			return err
		})
	if err != nil {
		return core.WriteFailure(c, err)
	}
	return core.SendReport(c, out)
}
