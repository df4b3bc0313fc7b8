package routes

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"sekolahku_dashboard/internals/backend"
	"sekolahku_dashboard/internals/features/dashboard/core"
)

func BaseRoutes(app *fiber.App, deps core.Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Sekolahku dashboard service 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":          "OK",
			"backend_mode":    backend.ModeLabel(deps.Client),
			"active_sessions": deps.Sessions.Len(),
			"server_time":     time.Now().Format(time.RFC3339),
			"uptime_seconds":  int(time.Since(startTime).Seconds()),
			"environment":     os.Getenv("RAILWAY_ENVIRONMENT"),
		})
	})
}
