package pick

import (
	"sort"
	"strconv"
)

// DefaultIDPaths dipakai ketika pemanggil tidak menyebut kandidat id sendiri.
var DefaultIDPaths = []string{"id"}

// Normalize menyeragamkan response list backend menjadi slice record.
//
//   - array            → elemen bertipe objek, urutan asli
//   - objek ber-id     → dibungkus jadi satu elemen
//   - objek tanpa id   → map berkunci kalau semua value objek (atau key-nya numerik);
//     value objek diambil, urut berdasarkan key. Selain itu objek tunggal.
//   - nil / scalar     → slice kosong
//
// Jika idPaths diisi, elemen tanpa id (setelah mencoba semua kandidat) dibuang.
// Tidak pernah panic; output aman untuk dinormalisasi ulang.
func Normalize(raw any, idPaths ...string) []Record {
	var items []any

	switch t := raw.(type) {
	case nil:
		return []Record{}
	case []any:
		items = t
	case []map[string]any:
		items = make([]any, 0, len(t))
		for _, m := range t {
			items = append(items, m)
		}
	case map[string]any:
		if isSingleObject(t, idPaths) {
			items = []any{t}
		} else {
			items = sortedValues(t)
		}
	default:
		return []Record{}
	}

	out := make([]Record, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok || m == nil {
			continue
		}
		if len(idPaths) > 0 && ID(m, idPaths...) == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Objek tunggal: punya id, atau punya field scalar sementara key objeknya bukan
// key numerik. Map berkunci id ({"1":{...},"2":{...}}) boleh membawa scalar
// tambahan seperti total.
func isSingleObject(m map[string]any, idPaths []string) bool {
	paths := idPaths
	if len(paths) == 0 {
		paths = DefaultIDPaths
	}
	if ID(m, paths...) != "" {
		return true
	}
	objects, numericKeys, scalars := 0, 0, 0
	for k, v := range m {
		switch v.(type) {
		case nil:
		case map[string]any:
			objects++
			if _, err := strconv.ParseFloat(k, 64); err == nil {
				numericKeys++
			}
		default:
			scalars++
		}
	}
	switch {
	case objects == 0:
		return true
	case scalars == 0:
		return false
	default:
		return numericKeys < objects
	}
}

func sortedValues(m map[string]any) []any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })

	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

// Key numerik diurutkan sebagai angka dan selalu di depan key non-numerik.
func keyLess(a, b string) bool {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

// Unwrap melepas envelope {success, data, ...} yang dipakai sebagian endpoint.
func Unwrap(raw any) any {
	m, ok := raw.(map[string]any)
	if !ok {
		return raw
	}
	data, has := m["data"]
	if !has {
		return raw
	}
	_, hasSuccess := m["success"]
	_, hasStatus := m["status"]
	_, hasMessage := m["message"]
	if hasSuccess || hasStatus || hasMessage || len(m) == 1 {
		return data
	}
	return raw
}
