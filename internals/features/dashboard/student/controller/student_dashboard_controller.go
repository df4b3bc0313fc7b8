// file: internals/features/dashboard/student/controller/student_dashboard_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_dashboard/internals/features/dashboard/core"
	"sekolahku_dashboard/internals/features/dashboard/session"
	"sekolahku_dashboard/internals/features/dashboard/student/service"
	reportmodel "sekolahku_dashboard/internals/features/school/reports/model"
	helperAuth "sekolahku_dashboard/internals/helpers/auth"
)

type StudentDashboardController struct {
	core.Deps
}

func NewStudentDashboardController(deps core.Deps) *StudentDashboardController {
	return &StudentDashboardController{Deps: deps}
}

func (ctl *StudentDashboardController) factory(id core.Identity) func() *service.Dashboard {
	return func() *service.Dashboard {
		opts := []service.Option{service.WithLogger(ctl.Logger()), service.WithSchool(ctl.School)}
		if ctl.Printer != nil {
			opts = append(opts, service.WithPrinter(ctl.Printer))
		}
		return service.New(ctl.ClientFor(id), id, opts...)
	}
}

// GET /dashboard?semesterId=
func (ctl *StudentDashboardController) Dashboard(c *fiber.Ctx) error {
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

// GET /rapor (semester efektif sesi)
func (ctl *StudentDashboardController) PrintReport(c *fiber.Ctx) error {
	id, err := helperAuth.GetIdentity(c)
	if err != nil {
		return err
	}
	ctx := core.ReqCtx(c)

	var out *reportmodel.Output
	err = session.Run(ctx, ctl.Sessions, core.SessionKey(id), ctl.factory(id), false,
		func(d *service.Dashboard, loadErr error) error {
			if loadErr != nil {
				return loadErr
			}
			res, err := d.PrintReport(ctx)
			out = res
			return err
		})
	if err != nil {
		return core.WriteFailure(c, err)
	}
	return core.SendReport(c, out)
}
