package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_dashboard/internals/features/school/schedules/model"
)

func TestBuildBanner_SingleKelasConflict(t *testing.T) {
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"code":409,"details":{"conflictScope":"kelas","conflicts":[{"hari":"Senin","jamMulai":"08:00","jamSelesai":"09:00","kelasNama":"X IPA 1"}]}}`), &body))
	details := body["details"].(map[string]any)

	b := BuildBanner(details["conflictScope"].(string), details["conflicts"])
	assert.Equal(t, ScopeKelas, b.Scope)
	assert.Equal(t, []string{"Senin • 08:00 - 09:00 • Kelas X IPA 1"}, b.Entries)
}

func TestConflictLine_PartOrder(t *testing.T) {
	c := ConflictFromRecord(map[string]any{
		"day": "selasa", "startTime": "10:00",
		"mapel": map[string]any{"nama": "Fisika"},
		"guru":  map[string]any{"nama": "Pak Anton"},
		"kelas": map[string]any{"nama": "XI IPA 2"},
	})
	assert.Equal(t, "Selasa • 10:00 • Kelas XI IPA 2 • Guru Pak Anton • Mapel Fisika", c.Line())
}

func TestBuildBanner_EmptyAndSingleObject(t *testing.T) {
	b := BuildBanner("", nil)
	assert.Empty(t, b.Entries)
	assert.NotEmpty(t, b.Title)

	b = BuildBanner("guru", map[string]any{"hari": "Kamis", "jamMulai": "07:00", "jamSelesai": "08:00", "guruNama": "Bu Sari"})
	assert.Equal(t, []string{"Kamis • 07:00 - 08:00 • Guru Bu Sari"}, b.Entries)
}

func TestOverlapsAndFindConflicts(t *testing.T) {
	existing := []model.Schedule{
		{ID: "a", KelasID: "k1", TeacherID: "t1", SemesterID: "1", Hari: "Senin", JamMulai: "08:00", JamSelesai: "09:00"},
		{ID: "b", KelasID: "k2", TeacherID: "t2", SemesterID: "1", Hari: "Senin", JamMulai: "08:30", JamSelesai: "10:00"},
		{ID: "c", KelasID: "k1", TeacherID: "t1", SemesterID: "2", Hari: "Senin", JamMulai: "08:00", JamSelesai: "09:00"},
	}

	// bersentuhan di batas tidak dihitung bentrok
	assert.False(t, Overlaps(existing[0], model.Schedule{Hari: "Senin", JamMulai: "09:00", JamSelesai: "10:00"}))
	assert.False(t, Overlaps(existing[0], model.Schedule{Hari: "Selasa", JamMulai: "08:00", JamSelesai: "09:00"}))

	scope, list := FindConflicts(existing, model.Schedule{KelasID: "k1", TeacherID: "t9", SemesterID: "1", Hari: "Senin", JamMulai: "08:15", JamSelesai: "08:45"})
	assert.Equal(t, ScopeKelas, scope)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)

	scope, list = FindConflicts(existing, model.Schedule{KelasID: "k3", TeacherID: "t2", SemesterID: "1", Hari: "Senin", JamMulai: "09:30", JamSelesai: "10:30"})
	assert.Equal(t, ScopeGuru, scope)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ID)

	// update jadwal sendiri tidak bentrok dengan dirinya
	scope, list = FindConflicts(existing, model.Schedule{ID: "a", KelasID: "k1", TeacherID: "t1", SemesterID: "1", Hari: "Senin", JamMulai: "08:00", JamSelesai: "08:20"})
	assert.Equal(t, "", scope)
	assert.Empty(t, list)
}
