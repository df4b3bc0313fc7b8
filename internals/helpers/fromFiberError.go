package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FromFiberError: *fiber.Error → envelope standar; error lain → 500 tanpa membocorkan pesan asli.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, "")
}

// ErrorHandler untuk fiber.Config: error yang lolos dari handler dicatat lalu dibungkus.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if !errors.As(err, &fe) || fe.Code >= fiber.StatusInternalServerError {
			log.Error("request gagal",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Any("request_id", c.Locals("request_id")),
				zap.Error(err),
			)
		}
		return FromFiberError(c, err)
	}
}
