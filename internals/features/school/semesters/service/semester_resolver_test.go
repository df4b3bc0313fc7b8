package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_dashboard/internals/features/school/semesters/model"
	"sekolahku_dashboard/internals/helpers/pick"
)

func resolverFrom(t *testing.T, raw string) *Resolver {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return NewResolverFromRaw(v)
}

func TestResolve_UnknownIDWithoutFallbackIsNil(t *testing.T) {
	r := resolverFrom(t, `[{"id":"1","semester":1,"tahunAjaran":"2024/2025"}]`)

	for _, id := range []string{"2", "99", "abc", ""} {
		assert.Nil(t, r.Resolve(id, nil), id)
	}
}

func TestResolve_ByIDComparesAsString(t *testing.T) {
	r := resolverFrom(t, `[{"id":1,"semester":"2","tahun":"2024/2025","startDate":"2025-01-06","endDate":"2025-06-20","hariBelajar":"110","notes":"genap","isActive":1}]`)

	m := r.Resolve("1", nil)
	require.NotNil(t, m)
	assert.Equal(t, "2024/2025", m.TahunAjaran)
	assert.Equal(t, 2, m.Semester.Number)
	assert.Equal(t, "2025-01-06", m.TanggalMulai)
	assert.Equal(t, "2025-06-20", m.TanggalSelesai)
	require.NotNil(t, m.JumlahHariBelajar)
	assert.Equal(t, 110, *m.JumlahHariBelajar)
	assert.Equal(t, "genap", m.Catatan)
	assert.True(t, m.IsActive)
}

func TestResolve_FallbackRecord(t *testing.T) {
	r := NewResolver(nil)
	fallback := pick.Record{"id": "9", "academicYear": "2023/2024", "term": 1}

	m := r.Resolve("9", fallback)
	require.NotNil(t, m)
	assert.Equal(t, "2023/2024", m.TahunAjaran)
	assert.Equal(t, "Semester Ganjil", m.TermLabel())

	assert.NotNil(t, r.Resolve("", fallback))
	assert.Nil(t, r.Resolve("", nil))
}

func TestDefaultSelection_PrefersActiveRegardlessOfOrder(t *testing.T) {
	lists := []string{
		`[{"id":"a"},{"id":"b","isActive":true},{"id":"c"}]`,
		`[{"id":"b","isActive":true},{"id":"a"},{"id":"c"}]`,
		`[{"id":"c"},{"id":"a"},{"id":"b","isActive":true}]`,
	}
	for _, raw := range lists {
		assert.Equal(t, "b", resolverFrom(t, raw).DefaultSelection(), raw)
	}
}

func TestDefaultSelection_FirstWhenNoneActive(t *testing.T) {
	r := resolverFrom(t, `[{"id":"x"},{"id":"y"}]`)
	assert.Equal(t, "x", r.DefaultSelection())
}

func TestDefaultSelection_MultipleActivePicksFirstFound(t *testing.T) {
	r := resolverFrom(t, `[{"id":"x"},{"id":"y","isActive":true},{"id":"z","isActive":true}]`)
	assert.Equal(t, "y", r.DefaultSelection())
}

func TestEffective(t *testing.T) {
	single := resolverFrom(t, `[{"id":"only"}]`)
	id, err := single.Effective("")
	require.NoError(t, err)
	assert.Equal(t, "only", id)

	multi := resolverFrom(t, `[{"id":"1"},{"id":"2","isActive":true}]`)
	id, err = multi.Effective("1")
	require.NoError(t, err)
	assert.Equal(t, "1", id)

	_, err = multi.Effective("404")
	assert.ErrorIs(t, err, ErrSemesterRequired)

	empty := NewResolver(nil)
	id, err = empty.Effective("")
	require.NoError(t, err)
	assert.Equal(t, "", id)
}

func TestEffective_EmptyListIgnoresSelection(t *testing.T) {
	id, err := NewResolver(nil).Effective("7")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestNewResolver_SkipsRecordsWithoutID(t *testing.T) {
	r := NewResolver([]model.Metadata{{TahunAjaran: "2024/2025"}, {ID: "1"}})
	assert.Equal(t, 1, r.Len())
}
