// file: internals/features/dashboard/core/failure.go
package core

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"sekolahku_dashboard/internals/backend"
	semservice "sekolahku_dashboard/internals/features/school/semesters/service"
	schedservice "sekolahku_dashboard/internals/features/school/schedules/service"
	helper "sekolahku_dashboard/internals/helpers"
)

// Jenis kegagalan yang ditampilkan ke user.
const (
	FailValidation       = "validation"
	FailNotFound         = "not_found"
	FailConflict         = "conflict"
	FailSemesterNotFound = "semester_not_found"
	FailSemesterRequired = "semester_required"
	FailUnavailable      = "unavailable"
	FailGeneric          = "generic"
)

const (
	MsgSemesterNotFound = "Semester tidak ditemukan. Silakan pilih semester lain."
	MsgNotFound         = "Data yang dirujuk tidak ditemukan. Muat ulang lalu periksa kembali pilihan Anda."
	MsgValidation       = "Periksa kembali isian form."
	MsgUnavailable      = "Server tidak dapat dihubungi. Coba lagi beberapa saat."
	MsgGeneric          = "Terjadi kesalahan. Silakan coba lagi."
)

// Failure: hasil klasifikasi error operasi dashboard. Dipakai sebagai error
// (controller memetakan Kind ke status HTTP) dan sebagai isi toast.
type Failure struct {
	Kind    string               `json:"kind"`
	Message string               `json:"message"`
	Fields  map[string][]string  `json:"errors,omitempty"`
	Banner  *schedservice.Banner `json:"banner,omitempty"`
	Err     error                `json:"-"`
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return f.Message + ": " + f.Err.Error()
	}
	return f.Message
}

func (f *Failure) Unwrap() error { return f.Err }

// Status: status HTTP untuk response controller.
func (f *Failure) Status() int {
	switch f.Kind {
	case FailValidation:
		return http.StatusUnprocessableEntity
	case FailNotFound, FailSemesterNotFound:
		return http.StatusNotFound
	case FailConflict:
		return http.StatusConflict
	case FailSemesterRequired:
		return http.StatusBadRequest
	case FailUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

func Validation(err error) *Failure {
	fe, ok := helper.AsFieldError(err)
	if !ok {
		return &Failure{Kind: FailValidation, Message: MsgValidation, Fields: map[string][]string{"_": {err.Error()}}, Err: err}
	}
	return &Failure{Kind: FailValidation, Message: MsgValidation, Fields: fe.Fields, Err: err}
}

// Classify memetakan error dari backend / validasi ke Failure.
// Urutan: semester tidak ditemukan → 404 → 409 → field error → lainnya.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}
	if f, ok := AsFailure(err); ok {
		return f
	}
	if errors.Is(err, semservice.ErrSemesterRequired) {
		return &Failure{Kind: FailSemesterRequired, Message: semservice.ErrSemesterRequired.Error(), Err: err}
	}
	if _, ok := helper.AsFieldError(err); ok {
		return Validation(err)
	}
	if apiErr, ok := backend.AsAPIError(err); ok {
		switch {
		case apiErr.IsSemesterNotFound():
			return &Failure{Kind: FailSemesterNotFound, Message: MsgSemesterNotFound, Err: err}
		case apiErr.IsNotFound():
			return &Failure{Kind: FailNotFound, Message: MsgNotFound, Err: err}
		case apiErr.IsConflict():
			scope, conflicts := apiErr.Conflicts()
			b := schedservice.BuildBanner(scope, conflicts)
			msg := b.Title
			if apiErr.Message != "" {
				msg = apiErr.Message
			}
			return &Failure{Kind: FailConflict, Message: msg, Banner: &b, Err: err}
		}
		if fields := apiErr.FieldErrors(); len(fields) > 0 {
			msg := apiErr.Message
			if msg == "" {
				msg = MsgValidation
			}
			return &Failure{Kind: FailValidation, Message: msg, Fields: fields, Err: err}
		}
		msg := apiErr.Message
		if msg == "" {
			msg = MsgGeneric
		}
		return &Failure{Kind: FailGeneric, Message: msg, Err: err}
	}
	if errors.Is(err, backend.ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return &Failure{Kind: FailUnavailable, Message: MsgUnavailable, Err: err}
	}
	return &Failure{Kind: FailGeneric, Message: MsgGeneric, Err: err}
}

// Notice: toast terakhir untuk view.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

const (
	LevelSuccess = "success"
	LevelError   = "error"
)

func SuccessNotice(msg string) *Notice { return &Notice{Level: LevelSuccess, Message: msg} }

func (f *Failure) Notice() *Notice { return &Notice{Level: LevelError, Message: f.Message} }

// Report: klasifikasi + log untuk operasi yang gagal.
func Report(log *zap.Logger, op string, err error) *Failure {
	f := Classify(err)
	if log != nil {
		lvl := log.Warn
		if f.Kind == FailGeneric || f.Kind == FailUnavailable {
			lvl = log.Error
		}
		lvl(op+" gagal", zap.String("kind", f.Kind), zap.Error(err))
	}
	return f
}
