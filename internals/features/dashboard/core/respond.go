// file: internals/features/dashboard/core/respond.go
package core

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	helper "sekolahku_dashboard/internals/helpers"
)

// WriteFailure menulis error operasi dashboard dengan envelope standar.
// *fiber.Error diteruskan ke ErrorHandler apa adanya.
func WriteFailure(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return err
	}
	if errors.Is(err, ErrNoIdentity) {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	f := Classify(err)
	switch f.Kind {
	case FailValidation:
		return helper.JsonErrorDetails(c, f.Status(), f.Message, f.Fields, nil)
	case FailConflict:
		var details any
		if f.Banner != nil {
			details = fiber.Map{"banner": f.Banner}
		}
		return helper.JsonErrorDetails(c, f.Status(), f.Message, nil, details)
	}
	return helper.JsonError(c, f.Status(), f.Message)
}

// RespondView: GET dashboard tetap 200 beserta view; bagian yang gagal ada
// di view.errors dan pesan gagal dipakai sebagai message.
func RespondView(c *fiber.Ctx, err error, view any) error {
	if errors.Is(err, ErrNoIdentity) {
		return WriteFailure(c, err)
	}
	msg := "ok"
	if err != nil {
		msg = Classify(err).Message
	}
	return helper.JsonOK(c, msg, view)
}
