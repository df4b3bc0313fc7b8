package backend

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError_NumericCodeIsStatus(t *testing.T) {
	body := map[string]any{
		"success": false,
		"code":    409.0,
		"message": "Jadwal bentrok",
		"details": map[string]any{
			"conflictScope": "kelas",
			"conflicts":     []any{map[string]any{"hari": "Senin"}},
		},
	}
	e := ParseError(200, body)
	assert.Equal(t, 409, e.Status)
	assert.True(t, e.IsConflict())

	scope, list := e.Conflicts()
	assert.Equal(t, "kelas", scope)
	assert.Len(t, list, 1)
}

func TestParseError_SemesterNotFound(t *testing.T) {
	e := ParseError(404, map[string]any{"code": "SEMESTER_NOT_FOUND", "message": "x"})
	assert.True(t, e.IsSemesterNotFound())
	assert.True(t, e.IsNotFound())

	e = ParseError(400, map[string]any{"message": "Semester tidak ditemukan"})
	assert.True(t, e.IsSemesterNotFound())
	assert.False(t, e.IsNotFound())

	e = ParseError(404, map[string]any{"message": "Kelas tidak ditemukan"})
	assert.False(t, e.IsSemesterNotFound())
}

func TestParseError_FieldErrorShapes(t *testing.T) {
	e := ParseError(422, map[string]any{"errors": map[string]any{"nilai": "wajib diisi", "tanggal": []any{"a", "b"}}})
	assert.Equal(t, map[string][]string{"nilai": {"wajib diisi"}, "tanggal": {"a", "b"}}, e.FieldErrors())

	e = ParseError(400, map[string]any{"errors": []any{map[string]any{"field": "hari", "message": "tidak valid"}}})
	assert.Equal(t, map[string][]string{"hari": {"tidak valid"}}, e.FieldErrors())

	e = ParseError(500, "bukan objek")
	assert.Equal(t, "Internal Server Error", e.Message)
	assert.Empty(t, e.FieldErrors())
}

func TestAsAPIError(t *testing.T) {
	wrapped := fmt.Errorf("simpan nilai: %w", &APIError{Status: 404})
	ae, ok := AsAPIError(wrapped)
	require.True(t, ok)
	assert.True(t, ae.IsNotFound())
	assert.Contains(t, ae.Error(), "404")

	_, ok = AsAPIError(fmt.Errorf("lain"))
	assert.False(t, ok)
}
