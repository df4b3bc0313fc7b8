// file: internals/features/dashboard/admin/service/class_admin.go
package service

import (
	"sort"
	"strings"

	relmodel "sekolahku_dashboard/internals/features/school/relations/model"
	usermodel "sekolahku_dashboard/internals/features/users/model"
	"sekolahku_dashboard/internals/helpers/pick"
)

type ClassView struct {
	ID            string `json:"id"`
	Nama          string `json:"nama"`
	WaliKelasID   string `json:"waliKelasId,omitempty"`
	WaliKelasNama string `json:"waliKelasNama,omitempty"`
	JumlahSiswa   int    `json:"jumlahSiswa"`
}

func (c *Console) Classes() []ClassView {
	count := map[string]int{}
	for _, r := range c.students {
		count[pick.ID(r, relmodel.KelasIDPaths...)]++
	}
	out := make([]ClassView, 0, len(c.classes))
	for _, r := range c.classes {
		id := pick.ID(r, relmodel.RefIDPaths...)
		wali := pick.ID(r, usermodel.HomeroomTeacherPaths...)
		out = append(out, ClassView{
			ID:            id,
			Nama:          pick.FirstNonEmpty(c.lookups.KelasName(id), id),
			WaliKelasID:   wali,
			WaliKelasNama: c.lookups.TeacherName(wali),
			JumlahSiswa:   count[id],
		})
	}
	return out
}

// homeroomOwner: kelas lain (selain exceptKelasID) yang dipegang teacherID.
func (c *Console) homeroomOwner(teacherID, exceptKelasID string) string {
	for _, r := range c.classes {
		id := pick.ID(r, relmodel.RefIDPaths...)
		if id == exceptKelasID {
			continue
		}
		if pick.ID(r, usermodel.HomeroomTeacherPaths...) == teacherID {
			return id
		}
	}
	return ""
}

// HomeroomCandidates: guru yang belum jadi wali kelas lain.
// Wali kelas saat ini dari kelasID tetap masuk daftar.
func (c *Console) HomeroomCandidates(kelasID string) []usermodel.Teacher {
	out := make([]usermodel.Teacher, 0, len(c.teachers))
	for _, r := range c.teachers {
		t := usermodel.TeacherFromRecord(r)
		if t.ID == "" || c.homeroomOwner(t.ID, kelasID) != "" {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Nama) < strings.ToLower(out[j].Nama)
	})
	return out
}

// classHomeroom: wali kelas yang sekarang tercatat untuk kelasID.
func (c *Console) classHomeroom(kelasID string) (exists bool, teacherID string) {
	for _, r := range c.classes {
		if pick.ID(r, relmodel.RefIDPaths...) == kelasID {
			return true, pick.ID(r, usermodel.HomeroomTeacherPaths...)
		}
	}
	return false, ""
}
