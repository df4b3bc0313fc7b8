package backend

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"sekolahku_dashboard/internals/helpers/pick"
)

// ErrUnavailable: backend tidak bisa dihubungi (jaringan/timeout).
var ErrUnavailable = errors.New("backend tidak tersedia")

const (
	CodeSemesterNotFound = "SEMESTER_NOT_FOUND"
	CodeScheduleConflict = "SCHEDULE_CONFLICT"
	CodeNotFound         = "NOT_FOUND"
	CodeValidation       = "VALIDATION_ERROR"
)

// APIError: response gagal dari backend.
type APIError struct {
	Status  int                 `json:"status"`
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Details map[string]any      `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("backend %d (%s): %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("backend %d: %s", e.Status, msg)
}

func (e *APIError) IsNotFound() bool { return e.Status == http.StatusNotFound }
func (e *APIError) IsConflict() bool { return e.Status == http.StatusConflict }

// IsSemesterNotFound: kode khusus atau teks pesan yang menyebut semester tidak ditemukan.
func (e *APIError) IsSemesterNotFound() bool {
	if strings.EqualFold(e.Code, CodeSemesterNotFound) {
		return true
	}
	msg := strings.ToLower(e.Message)
	return strings.Contains(msg, "semester") &&
		(strings.Contains(msg, "tidak ditemukan") || strings.Contains(msg, "not found"))
}

// Conflicts: details.conflictScope + details.conflicts (bentuk mentah).
func (e *APIError) Conflicts() (scope string, conflicts any) {
	if e.Details == nil {
		return "", nil
	}
	return pick.String(e.Details, "conflictScope", "scope"), e.Details["conflicts"]
}

// FieldErrors: map field → pesan; kosong jika bukan error validasi.
func (e *APIError) FieldErrors() map[string][]string {
	if e.Errors == nil {
		return map[string][]string{}
	}
	return e.Errors
}

func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// ParseError membangun APIError dari body response. "code" bisa angka
// (409) atau string ("SEMESTER_NOT_FOUND").
func ParseError(status int, body any) *APIError {
	e := &APIError{Status: status}
	m, _ := body.(map[string]any)
	if m == nil {
		e.Message = http.StatusText(status)
		return e
	}

	e.Message = pick.String(m, "message", "error", "msg")
	if v, ok := pick.Value(m, "code", "error_code", "errorCode"); ok {
		if n, isNum := pick.ToNumber(v); isNum && n >= 400 && n < 600 {
			e.Status = int(n)
		} else {
			e.Code = pick.Stringify(v)
		}
	}
	if e.Status < 400 {
		e.Status = http.StatusBadRequest
	}
	if d, ok := pick.Object(m, "details"); ok {
		e.Details = d
	}
	e.Errors = parseFieldErrors(m["errors"])
	return e
}

// parseFieldErrors menerima {field: "pesan"}, {field: ["a","b"]} atau
// [{field, message}].
func parseFieldErrors(raw any) map[string][]string {
	out := map[string][]string{}
	switch t := raw.(type) {
	case map[string]any:
		for k, v := range t {
			switch vv := v.(type) {
			case []any:
				for _, item := range vv {
					if s := pick.Stringify(item); s != "" {
						out[k] = append(out[k], s)
					}
				}
			default:
				if s := pick.Stringify(vv); s != "" {
					out[k] = append(out[k], s)
				}
			}
		}
	case []any:
		for _, item := range t {
			r, ok := item.(map[string]any)
			if !ok {
				continue
			}
			field := pick.FirstNonEmpty(pick.String(r, "field", "path", "param"), "_")
			if msg := pick.String(r, "message", "msg", "error"); msg != "" {
				out[field] = append(out[field], msg)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
