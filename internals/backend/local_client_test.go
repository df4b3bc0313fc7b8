package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_dashboard/internals/constants"
	"sekolahku_dashboard/internals/helpers/pick"
	"sekolahku_dashboard/internals/storage"
)

func seededClient(t *testing.T) *LocalClient {
	t.Helper()
	c := NewLocalClient(storage.NewMemoryStore())
	ctx := context.Background()
	seed := map[string]any{
		constants.ResourceSemesters: []any{map[string]any{"id": "1", "semester": 1.0, "tahunAjaran": "2024/2025", "isActive": true}},
		constants.ResourceClasses:   []any{map[string]any{"id": "k1", "nama": "X IPA 1"}, map[string]any{"id": "k2", "nama": "X IPA 2"}},
		constants.ResourceTeachers:  []any{map[string]any{"id": "t1", "nama": "Pak Budi"}, map[string]any{"id": "t2", "nama": "Bu Sari"}},
		constants.ResourceSubjects:  []any{map[string]any{"id": "10", "nama": "Matematika"}},
		constants.ResourceTeacherSubjects: []any{
			map[string]any{"id": "r1", "teacherId": "t1", "subjectId": "10", "kelasId": "k1"},
			map[string]any{"id": "r2", "teacherId": "t1", "subjectId": "10", "kelasId": "k2"},
		},
		constants.ResourceSchedules: []any{
			map[string]any{"id": "s1", "relationId": "r1", "kelasId": "k1", "semesterId": "1", "hari": "Senin", "jamMulai": "08:00", "jamSelesai": "09:00"},
		},
	}
	for res, raw := range seed {
		_, err := c.Seed(ctx, res, raw)
		require.NoError(t, err)
	}
	return c
}

func TestLocalClient_CRUDAndFilter(t *testing.T) {
	c := NewLocalClient(storage.NewMemoryStore())
	ctx := context.Background()

	res, err := c.Create(ctx, constants.ResourceSubjects, map[string]any{"nama": "Biologi", "kode": "BIO"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	id := pick.ID(res.Data.(pick.Record), "id")
	assert.NotEmpty(t, id)

	_, err = c.Create(ctx, constants.ResourceSubjects, map[string]any{"id": 7.0, "nama": "Kimia"})
	require.NoError(t, err)

	raw, err := c.List(ctx, constants.ResourceSubjects, Query{"nama": "Kimia"})
	require.NoError(t, err)
	list := pick.Normalize(raw)
	require.Len(t, list, 1)
	assert.Equal(t, "7", pick.ID(list[0], "id"))

	_, err = c.Update(ctx, constants.ResourceSubjects, id, map[string]any{"nama": "Biologi Lanjut", "id": "abaikan"})
	require.NoError(t, err)
	raw, _ = c.List(ctx, constants.ResourceSubjects, Query{"id": id})
	assert.Equal(t, "Biologi Lanjut", pick.String(pick.Normalize(raw)[0], "nama"))

	_, err = c.Delete(ctx, constants.ResourceSubjects, id)
	require.NoError(t, err)
	_, err = c.Delete(ctx, constants.ResourceSubjects, id)
	ae, ok := AsAPIError(err)
	require.True(t, ok)
	assert.True(t, ae.IsNotFound())

	_, err = c.List(ctx, "unknown", nil)
	assert.Error(t, err)
}

func TestLocalClient_UnknownSemester(t *testing.T) {
	c := seededClient(t)
	_, err := c.Create(context.Background(), constants.ResourceGrades, map[string]any{"studentId": "1", "semesterId": "99", "nilai": 80.0})
	ae, ok := AsAPIError(err)
	require.True(t, ok)
	assert.True(t, ae.IsSemesterNotFound())
	assert.Equal(t, 404, ae.Status)

	_, err = c.Create(context.Background(), constants.ResourceGrades, map[string]any{"studentId": "1", "semesterId": "1", "nilai": 80.0})
	assert.NoError(t, err)
}

func TestLocalClient_ScheduleConflict(t *testing.T) {
	c := seededClient(t)
	ctx := context.Background()

	_, err := c.Create(ctx, constants.ResourceSchedules, map[string]any{
		"kelasId": "k1", "relationId": "r1", "semesterId": "1", "hari": "Senin", "jamMulai": "08:30", "jamSelesai": "09:30",
	})
	ae, ok := AsAPIError(err)
	require.True(t, ok)
	assert.True(t, ae.IsConflict())
	scope, conflicts := ae.Conflicts()
	assert.Equal(t, "kelas", scope)
	items := pick.Normalize(conflicts)
	require.Len(t, items, 1)
	assert.Equal(t, "X IPA 1", pick.String(items[0], "kelasNama"))
	assert.Equal(t, "Pak Budi", pick.String(items[0], "guruNama"))

	// guru sama di kelas lain pada jam yang sama
	_, err = c.Create(ctx, constants.ResourceSchedules, map[string]any{
		"kelasId": "k2", "relationId": "r2", "semesterId": "1", "hari": "Senin", "jamMulai": "08:00", "jamSelesai": "09:00",
	})
	ae, ok = AsAPIError(err)
	require.True(t, ok)
	scope, _ = ae.Conflicts()
	assert.Equal(t, "guru", scope)

	_, err = c.Create(ctx, constants.ResourceSchedules, map[string]any{
		"kelasId": "k1", "relationId": "r1", "semesterId": "1", "hari": "Senin", "jamMulai": "09:00", "jamSelesai": "10:00",
	})
	assert.NoError(t, err)

	// edit jadwal sendiri tidak bentrok dengan dirinya
	_, err = c.Update(ctx, constants.ResourceSchedules, "s1", map[string]any{"jamSelesai": "08:45"})
	assert.NoError(t, err)
}

func TestLocalClient_ScheduleMissingReferences(t *testing.T) {
	c := seededClient(t)
	ctx := context.Background()

	_, err := c.Create(ctx, constants.ResourceSchedules, map[string]any{"kelasId": "k9", "relationId": "r1", "semesterId": "1", "hari": "Rabu", "jamMulai": "08:00", "jamSelesai": "09:00"})
	ae, ok := AsAPIError(err)
	require.True(t, ok)
	assert.True(t, ae.IsNotFound())
	assert.False(t, ae.IsSemesterNotFound())

	_, err = c.Create(ctx, constants.ResourceSchedules, map[string]any{"kelasId": "k1", "relationId": "r9", "semesterId": "1", "hari": "Rabu", "jamMulai": "08:00", "jamSelesai": "09:00"})
	ae, ok = AsAPIError(err)
	require.True(t, ok)
	assert.True(t, ae.IsNotFound())
}
