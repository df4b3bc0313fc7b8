// file: internals/helpers/validator.go
package helper

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	reTahunAjaran = regexp.MustCompile(`^(\d{4})/(\d{4})$`)
	reJam         = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

	sharedValidator *validator.Validate
	validatorOnce   sync.Once
)

// Validator dipakai bersama oleh semua form; tag custom didaftarkan sekali.
func Validator() *validator.Validate {
	validatorOnce.Do(func() {
		sharedValidator = NewValidator()
	})
	return sharedValidator
}

// NewValidator: validator.v10 + nama field dari tag json + tag custom dashboard.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// "2024/2025": dua tahun berurutan
	_ = v.RegisterValidation("tahunajaran", func(fl validator.FieldLevel) bool {
		m := reTahunAjaran.FindStringSubmatch(strings.TrimSpace(fl.Field().String()))
		if m == nil {
			return false
		}
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		return b == a+1
	})

	// "07:30"
	_ = v.RegisterValidation("jam", func(fl validator.FieldLevel) bool {
		return reJam.MatchString(strings.TrimSpace(fl.Field().String()))
	})

	// angka bulat walaupun dikirim sebagai float
	_ = v.RegisterValidation("integerlike", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		switch f.Kind() {
		case reflect.Float32, reflect.Float64:
			x := f.Float()
			return x == float64(int64(x))
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return true
		default:
			return false
		}
	})

	return v
}

var tagMessages = map[string]string{
	"required":    "wajib diisi",
	"min":         "nilai terlalu kecil",
	"max":         "nilai terlalu besar",
	"gte":         "nilai terlalu kecil",
	"lte":         "nilai terlalu besar",
	"oneof":       "pilihan tidak valid",
	"datetime":    "format tanggal harus YYYY-MM-DD",
	"tahunajaran": "format tahun ajaran harus YYYY/YYYY",
	"jam":         "format jam harus HH:MM",
	"integerlike": "harus bilangan bulat",
	"numeric":     "harus berupa angka",
	"len":         "panjang tidak sesuai",
	"email":       "format email tidak valid",
}

// FieldErrors mengubah validator.ValidationErrors menjadi map field → pesan.
// Error lain dikembalikan di bawah key "_".
func FieldErrors(err error) map[string][]string {
	out := map[string][]string{}
	if err == nil {
		return out
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range ve {
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = fe.Tag()
		}
		out[fe.Field()] = append(out[fe.Field()], msg)
	}
	return out
}

// FieldError: satu pesan untuk satu field, bentuk yang sama dengan FieldErrors.
type FieldError struct {
	Fields map[string][]string
}

func NewFieldError(field, msg string) *FieldError {
	return &FieldError{Fields: map[string][]string{field: {msg}}}
}

func (e *FieldError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msgs := range e.Fields {
		parts = append(parts, f+": "+strings.Join(msgs, ", "))
	}
	sort.Strings(parts)
	return "validasi gagal: " + strings.Join(parts, "; ")
}

// AsFieldError menyatukan error validator dan FieldError.
func AsFieldError(err error) (*FieldError, bool) {
	if err == nil {
		return nil, false
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return &FieldError{Fields: FieldErrors(err)}, true
	}
	return nil, false
}
