// file: internals/features/school/semesters/service/semester_resolver.go
package service

import (
	"errors"

	"sekolahku_dashboard/internals/features/school/semesters/model"
	"sekolahku_dashboard/internals/helpers/pick"
)

// ErrSemesterRequired: ada daftar semester tapi tidak ada yang bisa dipakai,
// sehingga load data harus dilewati.
var ErrSemesterRequired = errors.New("silakan pilih semester terlebih dahulu")

// Resolver memegang daftar semester yang sudah dimuat untuk satu sesi dashboard.
type Resolver struct {
	list []model.Metadata
	byID map[string]model.Metadata
}

func NewResolver(list []model.Metadata) *Resolver {
	r := &Resolver{
		list: make([]model.Metadata, 0, len(list)),
		byID: make(map[string]model.Metadata, len(list)),
	}
	for _, m := range list {
		if m.ID == "" {
			continue
		}
		r.list = append(r.list, m)
		if _, dup := r.byID[m.ID]; !dup {
			r.byID[m.ID] = m
		}
	}
	return r
}

// NewResolverFromRaw: langsung dari response backend (array/map/objek).
func NewResolverFromRaw(raw any) *Resolver {
	return NewResolver(model.FromRecords(pick.Normalize(raw, model.IDPaths...)))
}

func (r *Resolver) List() []model.Metadata {
	out := make([]model.Metadata, len(r.list))
	copy(out, r.list)
	return out
}

func (r *Resolver) Len() int { return len(r.list) }

func (r *Resolver) Find(id string) (model.Metadata, bool) {
	m, ok := r.byID[pick.Stringify(id)]
	return m, ok
}

// Resolve: id dicari di daftar semester; kalau tidak ketemu pakai record fallback
// (misal semester yang ikut di payload nilai/absensi); selain itu nil.
func (r *Resolver) Resolve(id string, fallback pick.Record) *model.Metadata {
	if id != "" {
		if m, ok := r.Find(id); ok {
			return &m
		}
	}
	if fallback != nil {
		m := model.FromRecord(fallback)
		return &m
	}
	return nil
}

// DefaultSelection: semester aktif pertama, kalau tidak ada semester pertama di daftar.
func DefaultSelection(list []model.Metadata) string {
	for _, m := range list {
		if m.IsActive && m.ID != "" {
			return m.ID
		}
	}
	for _, m := range list {
		if m.ID != "" {
			return m.ID
		}
	}
	return ""
}

func (r *Resolver) DefaultSelection() string { return DefaultSelection(r.list) }

// Effective menentukan id semester yang dipakai untuk load data.
//
//   - pilihan eksplisit yang dikenal → dipakai
//   - tanpa pilihan → aturan default (aktif → pertama → satu-satunya)
//   - daftar kosong → "" tanpa error (load tanpa filter semester), pilihan apa pun diabaikan
//   - selain itu → ErrSemesterRequired
func (r *Resolver) Effective(selected string) (string, error) {
	selected = pick.Stringify(selected)
	if len(r.list) == 0 {
		return "", nil
	}
	if selected != "" {
		if _, ok := r.byID[selected]; ok {
			return selected, nil
		}
		return "", ErrSemesterRequired
	}
	if id := r.DefaultSelection(); id != "" {
		return id, nil
	}
	return "", ErrSemesterRequired
}
