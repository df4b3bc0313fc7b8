package pick

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestNormalize_Array(t *testing.T) {
	raw := decode(t, `[{"id":1,"nama":"A"}, 3, null, "x", {"id":"2"}, {"nama":"tanpa id"}]`)

	got := Normalize(raw, "id")
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0]["nama"])
	assert.Equal(t, "2", ID(got[1], "id"))

	// tanpa kandidat id: semua objek dipertahankan
	assert.Len(t, Normalize(raw), 3)
}

func TestNormalize_KeyedMap(t *testing.T) {
	raw := decode(t, `{"10":{"id":"c"},"2":{"id":"b"},"1":{"id":"a"},"total":3}`)

	got := Normalize(raw, "id")
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{ID(got[0], "id"), ID(got[1], "id"), ID(got[2], "id")})
}

func TestNormalize_SingleObject(t *testing.T) {
	raw := decode(t, `{"id":7,"nama":"X IPA 1","walikelas":{"id":3}}`)

	got := Normalize(raw, "id")
	require.Len(t, got, 1)
	assert.Equal(t, "X IPA 1", got[0]["nama"])
}

func TestNormalize_ObjectWithoutIDIsNotUnpacked(t *testing.T) {
	raw := decode(t, `{"nama":"tanpa id","teacher":{"id":3}}`)
	assert.Empty(t, Normalize(raw, "id"))
}

func TestNormalize_RelationWithoutIDIsDropped(t *testing.T) {
	raw := decode(t, `{"teacher":{"id":5,"nama":"Budi"},"subject":{"id":6,"nama":"Matematika"},"kelasId":3}`)
	assert.Empty(t, Normalize(raw, "id", "relationId", "pivot.id"))

	// tanpa kandidat id objek tetap dibungkus utuh
	got := Normalize(raw)
	require.Len(t, got, 1)
	assert.Equal(t, "3", ID(got[0], "kelasId"))
}

func TestNormalize_KeyedMapWithoutScalars(t *testing.T) {
	raw := decode(t, `{"b":{"id":2},"a":{"id":1}}`)
	got := Normalize(raw, "id")
	require.Len(t, got, 2)
	assert.Equal(t, "1", ID(got[0], "id"))
}

func TestNormalize_NilAndScalars(t *testing.T) {
	assert.Empty(t, Normalize(nil))
	assert.Empty(t, Normalize("hello"))
	assert.Empty(t, Normalize(42.0))
	assert.NotNil(t, Normalize(nil))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		`[{"id":1},{"x":1},{"id":2}]`,
		`{"a":{"id":1},"b":{"id":2}}`,
		`{"id":5}`,
	}
	for _, in := range inputs {
		once := Normalize(decode(t, in), "id")
		twice := Normalize(once, "id")
		assert.Equal(t, once, twice, in)
	}
}

func TestNormalize_CandidateIDPaths(t *testing.T) {
	raw := decode(t, `[{"relationId":"r1"},{"pivot":{"id":9}},{"teacherId":1}]`)
	got := Normalize(raw, "id", "relationId", "pivot.id")
	require.Len(t, got, 2)
	assert.Equal(t, "9", ID(got[1], "id", "relationId", "pivot.id"))
}

func TestString_FirstNonEmptyWins(t *testing.T) {
	r := decode(t, `{"tahunAjaran":"","tahun":"2024/2025","year":"2023/2024"}`).(map[string]any)
	assert.Equal(t, "2024/2025", String(r, "tahunAjaran", "tahun", "year"))
	assert.Equal(t, "", String(r, "academicYear"))
}

func TestValue_NestedPath(t *testing.T) {
	r := decode(t, `{"teacher":{"nama":"Bu Sari"},"guru":null}`).(map[string]any)

	v, ok := Value(r, "guru.nama", "teacher.nama")
	require.True(t, ok)
	assert.Equal(t, "Bu Sari", v)

	_, ok = Value(r, "guru", "missing.path")
	assert.False(t, ok)
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "1", Stringify(1.0))
	assert.Equal(t, "1.5", Stringify(1.5))
	assert.Equal(t, "12", Stringify(json.Number("12")))
	assert.Equal(t, "abc", Stringify("  abc "))
	assert.Equal(t, "", Stringify(map[string]any{}))
	assert.True(t, Equal(1.0, "1"))
	assert.False(t, Equal("", ""))
}

func TestNumberAndBool(t *testing.T) {
	r := decode(t, `{"a":"x","b":"2","c":true,"d":"aktif","e":0}`).(map[string]any)

	n, ok := Number(r, "a", "b")
	require.True(t, ok)
	assert.Equal(t, 2.0, n)

	_, ok = Int(r, "a")
	assert.False(t, ok)

	assert.True(t, Bool(r, "c"))
	assert.True(t, Bool(r, "d"))
	assert.False(t, Bool(r, "e"))
	assert.False(t, Bool(r, "missing"))
}

func TestUnwrap(t *testing.T) {
	env := decode(t, `{"success":true,"data":[{"id":1}]}`)
	assert.Len(t, Normalize(Unwrap(env), "id"), 1)

	plain := decode(t, `{"id":1,"data":"isi"}`)
	assert.Equal(t, plain, Unwrap(plain))
}
