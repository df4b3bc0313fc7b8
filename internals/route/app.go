// file: internals/route/app.go
package routes

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"

	"sekolahku_dashboard/internals/configs"
	"sekolahku_dashboard/internals/features/dashboard/core"
	helper "sekolahku_dashboard/internals/helpers"
	middlewares "sekolahku_dashboard/internals/middlewares"
)

// NewApp merakit fiber app lengkap: middleware dasar + semua route dashboard.
func NewApp(cfg configs.Config, deps core.Deps, log *zap.Logger) *fiber.App {
	if log == nil {
		log = zap.NewNop()
	}
	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ErrorHandler:          helper.ErrorHandler(log),
		AppName:               cfg.AppName,
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app, cfg, log)

	SetupRoutes(app, deps, Options{JWTSecret: cfg.JWTSecret, Log: log})
	return app
}
