// file: internals/features/school/relations/model/relation_model.go
package model

import (
	"strings"

	"sekolahku_dashboard/internals/helpers/pick"
)

/*
	=========================================================
	  Relasi guru–mapel–kelas (pivot)
	  Backend memakai banyak nama field berbeda untuk hal yang sama;
	  urutan kandidat di bawah = prioritas.
	=========================================================
*/

var (
	RelationIDPaths = []string{
		"id", "relationId", "relation_id", "teacherSubjectId", "teacher_subject_id",
		"teacherSubjectClassId", "teacher_subject_class_id", "pivot.id",
	}

	TeacherIDPaths = []string{
		"teacherId", "teacher_id", "guruId", "guru_id", "teacher.id", "guru.id",
		"pivot.teacherId", "pivot.teacher_id",
	}
	SubjectIDPaths = []string{
		"subjectId", "subject_id", "mapelId", "mapel_id", "subject.id", "mapel.id",
		"pivot.subjectId", "pivot.subject_id",
	}
	KelasIDPaths = []string{
		"kelasId", "kelas_id", "classId", "class_id", "kelas.id", "class.id",
		"pivot.kelasId", "pivot.kelas_id", "pivot.classId",
	}

	TeacherNamePaths = []string{
		"teacher.nama", "teacher.name", "guru.nama", "guru.name", "teacher.user.nama",
		"teacher.user.name", "teacherName", "teacher_name", "namaGuru", "guruNama",
	}
	SubjectNamePaths = []string{
		"subject.nama", "subject.name", "mapel.nama", "mapel.name", "subjectName",
		"subject_name", "namaMapel", "mapelNama",
	}
	KelasNamePaths = []string{
		"kelas.nama", "kelas.name", "class.nama", "class.name", "kelasName",
		"kelasNama", "kelas_name", "namaKelas", "className", "class_name",
	}

	// Nama pada list referensi (guru/mapel/kelas)
	RefNamePaths = []string{"nama", "name", "namaLengkap", "fullName", "full_name", "namaKelas", "user.nama", "user.name"}
	RefIDPaths   = []string{"id", "teacherId", "subjectId", "kelasId", "userId"}
)

// Placeholder saat nama tidak bisa di-resolve.
const (
	PlaceholderTeacher = "Guru"
	PlaceholderSubject = "Mapel"
	PlaceholderKelas   = "Kelas"
	LabelSeparator     = " • "
)

// Option adalah relasi yang sudah di-resolve, siap dipakai sebagai pilihan form
// maupun label jadwal.
type Option struct {
	ID          string      `json:"id"`
	Label       string      `json:"label"`
	TeacherID   string      `json:"teacherId"`
	SubjectID   string      `json:"subjectId"`
	KelasID     string      `json:"kelasId"`
	TeacherName string      `json:"teacherName"`
	SubjectName string      `json:"subjectName"`
	KelasName   string      `json:"kelasName"`
	Relation    pick.Record `json:"relation,omitempty"`
}

func (o Option) IsEmpty() bool {
	return o.ID == "" && o.TeacherID == "" && o.SubjectID == "" && o.KelasID == "" &&
		o.TeacherName == "" && o.SubjectName == "" && o.KelasName == ""
}

// BuildLabel: "Guru • Mapel • Kelas" dengan placeholder untuk nama kosong.
func BuildLabel(teacher, subject, kelas string) string {
	orDefault := func(s, def string) string {
		if strings.TrimSpace(s) == "" {
			return def
		}
		return strings.TrimSpace(s)
	}
	return strings.Join([]string{
		orDefault(teacher, PlaceholderTeacher),
		orDefault(subject, PlaceholderSubject),
		orDefault(kelas, PlaceholderKelas),
	}, LabelSeparator)
}

// Lookups: id → nama dari list referensi lengkap.
type Lookups struct {
	Teachers map[string]string
	Subjects map[string]string
	Classes  map[string]string
}

func NameMap(list []pick.Record) map[string]string {
	out := make(map[string]string, len(list))
	for _, r := range list {
		id := pick.ID(r, RefIDPaths...)
		if id == "" {
			continue
		}
		if name := pick.String(r, RefNamePaths...); name != "" {
			out[id] = name
		}
	}
	return out
}

func BuildLookups(teachers, subjects, classes []pick.Record) Lookups {
	return Lookups{
		Teachers: NameMap(teachers),
		Subjects: NameMap(subjects),
		Classes:  NameMap(classes),
	}
}

func (l Lookups) TeacherName(id string) string { return l.Teachers[id] }
func (l Lookups) SubjectName(id string) string { return l.Subjects[id] }
func (l Lookups) KelasName(id string) string   { return l.Classes[id] }
