package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]Status{
		"Hadir": StatusHadir, "H": StatusHadir, "sakit": StatusSakit,
		"ijin": StatusIzin, "alpa": StatusAlfa, "A": StatusAlfa,
	} {
		got, ok := ParseStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseStatus("terlambat")
	assert.False(t, ok)
}

func TestFromRaw(t *testing.T) {
	raw := map[string]any{
		"a": map[string]any{"id": 1.0, "siswaId": 7.0, "mapelId": "10", "status": "H", "tanggal": "2024-09-02"},
		"b": map[string]any{"id": 2.0, "studentId": "7", "status": "Terlambat"},
	}
	list := FromRaw(raw)
	require.Len(t, list, 2)
	assert.Equal(t, "7", list[0].StudentID)
	assert.Equal(t, "10", list[0].SubjectID)
	assert.Equal(t, StatusHadir, list[0].Status)
	assert.Equal(t, Status("terlambat"), list[1].Status)
}
