package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sekolahku_dashboard/internals/configs"
	"sekolahku_dashboard/internals/middlewares/logger"
)

// SetupMiddlewares: urutan penting, request id dulu supaya ikut tercatat di log & panic.
func SetupMiddlewares(app *fiber.App, cfg configs.Config, log *zap.Logger) {
	app.Use(RequestID())
	app.Use(RecoveryMiddleware(log))
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware(cfg.CorsOrigins))
	app.Use(GlobalRateLimiter(cfg.RateLimitPerMin))
	app.Use(RequestTimeout(cfg.BackendTimeout + cfg.BackendTimeout/2))
}
