// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sekolahku_dashboard/internals/features/dashboard/core"
	authMiddleware "sekolahku_dashboard/internals/middlewares/auth"
	routeDetails "sekolahku_dashboard/internals/route/details"
)

var startTime time.Time

type Options struct {
	JWTSecret string
	Log       *zap.Logger
}

func SetupRoutes(app *fiber.App, deps core.Deps, opts Options) {
	startTime = time.Now()
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	BaseRoutes(app, deps)

	auth := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              opts.JWTSecret,
		AllowCookieFallback: true,
		Log:                 log,
	})
	api := app.Group("/api")

	log.Info("Mounting dashboard routes...")
	routeDetails.StudentDashboardRoutes(api, auth, deps)
	routeDetails.TeacherDashboardRoutes(api, auth, deps)
	routeDetails.HomeroomDashboardRoutes(api, auth, deps)
	routeDetails.AdminDashboardRoutes(api, auth, deps)
}
