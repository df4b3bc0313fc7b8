// Package pick membaca record JSON yang bentuk dan nama field-nya tidak konsisten.
//
// Semua lookup memakai daftar kandidat berurutan (path bertitik, misal "pivot.id");
// kandidat pertama yang ada dan tidak nil yang dipakai.
package pick

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Record adalah objek JSON hasil decode.
type Record = map[string]any

func lookup(r Record, path string) (any, bool) {
	var cur any = r
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok || m == nil {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Value mengembalikan nilai kandidat pertama yang ada dan tidak nil.
func Value(r Record, paths ...string) (any, bool) {
	if r == nil {
		return nil, false
	}
	for _, p := range paths {
		if v, ok := lookup(r, p); ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Stringify mengubah scalar JSON menjadi string pembanding.
// Angka bulat ditulis tanpa desimal sehingga 1 dan "1" dianggap sama.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	case int:
		return strconv.Itoa(t)
	case int8:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint8:
		return strconv.FormatUint(uint64(t), 10)
	case uint16:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// String mengembalikan kandidat pertama yang tidak kosong setelah di-stringify.
func String(r Record, paths ...string) string {
	if r == nil {
		return ""
	}
	for _, p := range paths {
		v, ok := lookup(r, p)
		if !ok || v == nil {
			continue
		}
		if s := Stringify(v); s != "" {
			return s
		}
	}
	return ""
}

// ID sama dengan String; dipisah agar pemanggil jelas sedang mencari identifier.
func ID(r Record, paths ...string) string { return String(r, paths...) }

// ToNumber mengonversi angka atau string numerik.
func ToNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t)
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Number mengembalikan kandidat pertama yang bisa dibaca sebagai angka.
func Number(r Record, paths ...string) (float64, bool) {
	if r == nil {
		return 0, false
	}
	for _, p := range paths {
		v, ok := lookup(r, p)
		if !ok || v == nil {
			continue
		}
		if f, ok := ToNumber(v); ok {
			return f, true
		}
	}
	return 0, false
}

// Int seperti Number tapi hanya menerima angka bulat.
func Int(r Record, paths ...string) (int, bool) {
	f, ok := Number(r, paths...)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// ToBool mengonversi nilai flag yang sering dikirim backend (bool, 0/1, "true", "aktif").
func ToBool(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "ya", "aktif", "active":
			return true
		}
		return false
	default:
		if f, ok := ToNumber(v); ok {
			return f != 0
		}
		return false
	}
}

// Bool membaca kandidat pertama yang tidak nil sebagai flag.
func Bool(r Record, paths ...string) bool {
	v, ok := Value(r, paths...)
	if !ok {
		return false
	}
	return ToBool(v)
}

// Object mengembalikan kandidat pertama yang berupa objek.
func Object(r Record, paths ...string) (Record, bool) {
	if r == nil {
		return nil, false
	}
	for _, p := range paths {
		v, ok := lookup(r, p)
		if !ok {
			continue
		}
		if m, ok := v.(map[string]any); ok && m != nil {
			return m, true
		}
	}
	return nil, false
}

// Equal membandingkan dua identifier sebagai string. Identifier kosong tidak pernah sama.
func Equal(a, b any) bool {
	sa, sb := Stringify(a), Stringify(b)
	return sa != "" && sa == sb
}

// FirstNonEmpty mengembalikan string pertama yang tidak kosong.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
