// file: internals/features/users/model/user_model.go
package model

import (
	"strings"

	relmodel "sekolahku_dashboard/internals/features/school/relations/model"
	"sekolahku_dashboard/internals/helpers/pick"
)

var (
	IDPaths     = []string{"id"}
	UserIDPaths = []string{"userId", "user_id", "user.id", "akunId"}
	NamePaths   = []string{"nama", "name", "namaLengkap", "fullName", "full_name", "user.nama", "user.name"}
	EmailPaths  = []string{"email", "user.email"}
	RolePaths   = []string{"role", "user.role", "peran"}
	NISNPaths   = []string{"nisn", "NISN", "student.nisn", "siswa.nisn"}
	NIPPaths    = []string{"nip", "NIP", "teacher.nip", "guru.nip"}

	// kelas yang dipegang walikelas
	HomeroomTeacherPaths = []string{
		"waliKelasId", "wali_kelas_id", "homeroomTeacherId", "homeroom_teacher_id",
		"walikelas.id", "waliKelas.id", "homeroomTeacher.id",
	}
)

// NormalizeRole: "Guru", "teacher" → "guru" dst. Role tak dikenal dikembalikan lowercase.
func NormalizeRole(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "teacher":
		return "guru"
	case "homeroom", "homeroom_teacher", "wali_kelas", "wali kelas":
		return "walikelas"
	case "student":
		return "siswa"
	case "parent", "orang_tua", "orang tua":
		return "orangtua"
	}
	return s
}

type Student struct {
	ID      string `json:"id"`
	UserID  string `json:"userId,omitempty"`
	Nama    string `json:"nama"`
	NISN    string `json:"nisn,omitempty"`
	KelasID string `json:"kelasId,omitempty"`
}

func StudentFromRecord(r pick.Record) Student {
	return Student{
		ID:      pick.ID(r, IDPaths...),
		UserID:  pick.ID(r, UserIDPaths...),
		Nama:    pick.String(r, NamePaths...),
		NISN:    pick.String(r, NISNPaths...),
		KelasID: pick.ID(r, relmodel.KelasIDPaths...),
	}
}

func StudentsFromRaw(raw any) []Student {
	records := pick.Normalize(raw, IDPaths...)
	out := make([]Student, 0, len(records))
	for _, r := range records {
		out = append(out, StudentFromRecord(r))
	}
	return out
}

type Teacher struct {
	ID     string `json:"id"`
	UserID string `json:"userId,omitempty"`
	Nama   string `json:"nama"`
	NIP    string `json:"nip,omitempty"`
}

func TeacherFromRecord(r pick.Record) Teacher {
	return Teacher{
		ID:     pick.ID(r, IDPaths...),
		UserID: pick.ID(r, UserIDPaths...),
		Nama:   pick.String(r, NamePaths...),
		NIP:    pick.String(r, NIPPaths...),
	}
}

func TeachersFromRaw(raw any) []Teacher {
	records := pick.Normalize(raw, IDPaths...)
	out := make([]Teacher, 0, len(records))
	for _, r := range records {
		out = append(out, TeacherFromRecord(r))
	}
	return out
}

// FindTeacher: profil guru milik akun. Id profil dicocokkan dulu, baru user id.
func FindTeacher(list []Teacher, id, userID string) (Teacher, bool) {
	if id != "" {
		for _, t := range list {
			if t.ID == id {
				return t, true
			}
		}
	}
	if userID != "" {
		for _, t := range list {
			if t.UserID == userID {
				return t, true
			}
		}
	}
	return Teacher{}, false
}

// MergedUser: akun + profil siswa/guru dalam satu baris tampilan.
type MergedUser struct {
	UserID    string `json:"userId"`
	Nama      string `json:"nama"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	StudentID string `json:"studentId,omitempty"`
	NISN      string `json:"nisn,omitempty"`
	TeacherID string `json:"teacherId,omitempty"`
	NIP       string `json:"nip,omitempty"`
	KelasID   string `json:"kelasId,omitempty"`
	KelasNama string `json:"kelasNama,omitempty"`
}
