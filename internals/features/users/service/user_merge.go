// file: internals/features/users/service/user_merge.go
package service

import (
	"sort"
	"strings"

	"sekolahku_dashboard/internals/constants"
	relmodel "sekolahku_dashboard/internals/features/school/relations/model"
	"sekolahku_dashboard/internals/features/users/model"
	"sekolahku_dashboard/internals/helpers/pick"
)

// Merge menggabungkan users, students, teachers berdasarkan user id.
// Profil tanpa user id tetap tampil dengan key profilnya sendiri.
// Kelas walikelas diambil dari classes (field wali kelas = id guru).
func Merge(users, students, teachers, classes []pick.Record) []model.MergedUser {
	byUser := map[string]*model.MergedUser{}
	order := []string{}
	get := func(key string) *model.MergedUser {
		if m, ok := byUser[key]; ok {
			return m
		}
		m := &model.MergedUser{UserID: key}
		byUser[key] = m
		order = append(order, key)
		return m
	}

	kelasNames := relmodel.NameMap(classes)
	homeroomOf := map[string]string{}
	for _, c := range classes {
		if tid := pick.ID(c, model.HomeroomTeacherPaths...); tid != "" {
			if _, dup := homeroomOf[tid]; !dup {
				homeroomOf[tid] = pick.ID(c, "id")
			}
		}
	}

	for _, u := range users {
		id := pick.ID(u, model.IDPaths...)
		if id == "" {
			continue
		}
		m := get(id)
		m.Nama = pick.String(u, model.NamePaths...)
		m.Email = pick.String(u, model.EmailPaths...)
		m.Role = model.NormalizeRole(pick.String(u, model.RolePaths...))
	}

	for _, r := range students {
		s := model.StudentFromRecord(r)
		if s.ID == "" {
			continue
		}
		m := get(pick.FirstNonEmpty(s.UserID, "siswa:"+s.ID))
		m.StudentID = s.ID
		m.NISN = s.NISN
		m.KelasID = s.KelasID
		m.Nama = pick.FirstNonEmpty(m.Nama, s.Nama)
		if m.Role == "" {
			m.Role = constants.RoleStudent
		}
	}

	for _, r := range teachers {
		t := model.TeacherFromRecord(r)
		if t.ID == "" {
			continue
		}
		m := get(pick.FirstNonEmpty(t.UserID, "guru:"+t.ID))
		m.TeacherID = t.ID
		m.NIP = t.NIP
		m.Nama = pick.FirstNonEmpty(m.Nama, t.Nama)
		if kelasID, ok := homeroomOf[t.ID]; ok {
			m.KelasID = kelasID
			if m.Role == "" || m.Role == constants.RoleTeacher {
				m.Role = constants.RoleHomeroom
			}
		}
		if m.Role == "" {
			m.Role = constants.RoleTeacher
		}
	}

	out := make([]model.MergedUser, 0, len(order))
	for _, k := range order {
		m := byUser[k]
		if m.KelasID != "" {
			m.KelasNama = kelasNames[m.KelasID]
		}
		out = append(out, *m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Nama) < strings.ToLower(out[j].Nama)
	})
	return out
}

// FilterByRole: role "" = semua.
func FilterByRole(list []model.MergedUser, role string) []model.MergedUser {
	role = model.NormalizeRole(role)
	if role == "" {
		return list
	}
	out := make([]model.MergedUser, 0, len(list))
	for _, u := range list {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}
