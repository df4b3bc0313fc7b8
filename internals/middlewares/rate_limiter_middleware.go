package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "sekolahku_dashboard/internals/helpers"
	helperAuth "sekolahku_dashboard/internals/helpers/auth"
)

func limitReached(msg string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return helper.JsonError(c, fiber.StatusTooManyRequests, msg)
	}
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		perMinute = 100
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: limitReached("❌ Terlalu banyak permintaan. Silakan coba lagi nanti."),
	})
}

// Cetak rapor (render PDF) lebih berat: dibatasi per user.
func ReportRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			if id, err := helperAuth.GetIdentity(c); err == nil {
				return "rapor:" + id.UserID
			}
			return "rapor:" + c.IP()
		},
		LimitReached: limitReached("❌ Terlalu banyak permintaan cetak rapor. Coba beberapa saat lagi."),
	})
}
