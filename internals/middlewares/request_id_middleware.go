package middlewares

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestID: pakai header dari client kalau ada, kalau tidak buat baru.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := strings.TrimSpace(c.Get(RequestIDHeader))
		if rid == "" || len(rid) > 64 {
			rid = utils.UUID()
		}
		c.Locals(RequestIDKey, rid)
		c.Set(RequestIDHeader, rid)
		return c.Next()
	}
}

// RequestTimeout: batas waktu per request lewat UserContext (dipakai panggilan backend).
func RequestTimeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
