// file: internals/features/dashboard/core/handler.go
package core

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sekolahku_dashboard/internals/backend"
	"sekolahku_dashboard/internals/features/dashboard/session"
	reportmodel "sekolahku_dashboard/internals/features/school/reports/model"
	reportservice "sekolahku_dashboard/internals/features/school/reports/service"
	helper "sekolahku_dashboard/internals/helpers"
)

// Deps: dependency bersama controller dashboard per role.
type Deps struct {
	Client   backend.Client
	Sessions *session.Registry
	Printer  reportservice.Printer
	School   string
	Log      *zap.Logger
}

func (d Deps) Logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

// ClientFor: client backend atas nama user (token ikut diteruskan di mode http).
func (d Deps) ClientFor(id Identity) backend.Client {
	return backend.ForUser(d.Client, id.Token)
}

// OnChange mencatat mutasi sukses; sesi lain memuat ulang saat GET berikutnya.
func (d Deps) OnChange(id Identity) DataChangeFunc {
	log := d.Logger()
	return func(kind string) {
		log.Debug("data berubah",
			zap.String("kind", kind),
			zap.String("role", id.Role),
			zap.String("user_id", id.UserID))
	}
}

func SessionKey(id Identity) session.Key {
	return session.Key{Role: id.Role, UserID: id.UserID}
}

// ReqCtx: context request (sudah diberi timeout oleh middleware).
func ReqCtx(c *fiber.Ctx) context.Context {
	if uc := c.UserContext(); uc != nil {
		return uc
	}
	return context.Background()
}

// SendReport mengirim hasil cetak rapor sebagai lampiran.
func SendReport(c *fiber.Ctx, out *reportmodel.Output) error {
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+out.Filename+`"`)
	return c.Send(out.Data)
}

// Mutate menjalankan op pada orchestrator sesi user. Sesi yang gagal dimuat
// tidak dimutasi. Sukses → status + view dengan pesan notice; envelope
// mengikuti method (created / updated / deleted).
func Mutate[T session.Loader](c *fiber.Ctx, reg *session.Registry, id Identity, create func() T, status int,
	op func(ctx context.Context, v T) error, render func(v T) (any, *Notice)) error {
	ctx := ReqCtx(c)
	var data any
	var notice *Notice
	err := session.Run(ctx, reg, SessionKey(id), create, false, func(v T, loadErr error) error {
		if loadErr != nil {
			return loadErr
		}
		if err := op(ctx, v); err != nil {
			return err
		}
		data, notice = render(v)
		return nil
	})
	if err != nil {
		return WriteFailure(c, err)
	}
	msg := ""
	if notice != nil {
		msg = notice.Message
	}
	switch {
	case status == fiber.StatusCreated:
		return helper.JsonCreated(c, msg, data)
	case c.Method() == fiber.MethodDelete:
		return helper.JsonDeleted(c, msg, data)
	case c.Method() == fiber.MethodPut || c.Method() == fiber.MethodPatch:
		return helper.JsonUpdated(c, msg, data)
	default:
		return helper.JsonOK(c, msg, data)
	}
}
