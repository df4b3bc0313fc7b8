package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssessmentType(t *testing.T) {
	cases := map[string]AssessmentType{
		"UTS":            JenisUTS,
		"uas":            JenisUAS,
		"ulangan harian": JenisUlanganHarian,
		"Ulangan_Harian": JenisUlanganHarian,
		" kuis ":         JenisKuis,
		"TUGAS":          JenisTugas,
	}
	for in, want := range cases {
		got, ok := ParseAssessmentType(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseAssessmentType("remedial")
	assert.False(t, ok)

	assert.True(t, JenisUTS.IsExam())
	assert.False(t, JenisKuis.IsExam())
}

func TestFromRaw(t *testing.T) {
	raw := []any{
		map[string]any{
			"id": "g1", "studentId": 1.0, "subjectId": 10.0, "nilai": 90.0, "jenis": "uts",
			"semester": map[string]any{"id": "s1", "tahunAjaran": "2024/2025"},
		},
		map[string]any{"id": "g2", "siswa": map[string]any{"id": "2", "nama": "Rina"}, "mapel": map[string]any{"id": "11", "nama": "Biologi"}, "score": "75", "verified": true},
		map[string]any{"id": "g3", "studentId": "3"},
	}
	grades := FromRaw(raw)
	require.Len(t, grades, 2)

	assert.Equal(t, "1", grades[0].StudentID)
	assert.Equal(t, "10", grades[0].SubjectID)
	assert.Equal(t, JenisUTS, grades[0].Jenis)
	assert.Equal(t, "s1", grades[0].SemesterID)
	assert.Equal(t, "2024/2025", grades[0].Semester["tahunAjaran"])

	assert.Equal(t, "2", grades[1].StudentID)
	assert.Equal(t, "Rina", grades[1].StudentName)
	assert.Equal(t, 75.0, grades[1].Nilai)
	assert.True(t, grades[1].IsVerified)
}
