// file: internals/features/school/grades/model/grade_model.go
package model

import (
	"strings"

	relmodel "sekolahku_dashboard/internals/features/school/relations/model"
	"sekolahku_dashboard/internals/helpers/pick"
)

/* =========================================================
   ENUM jenis penilaian
========================================================= */

type AssessmentType string

const (
	JenisUlanganHarian AssessmentType = "Ulangan Harian"
	JenisUTS           AssessmentType = "UTS"
	JenisUAS           AssessmentType = "UAS"
	JenisKuis          AssessmentType = "Kuis"
	JenisTugas         AssessmentType = "Tugas"
)

var AssessmentTypes = []AssessmentType{JenisUlanganHarian, JenisUTS, JenisUAS, JenisKuis, JenisTugas}

// ParseAssessmentType tidak peka huruf besar/kecil dan menerima "ulangan_harian".
func ParseAssessmentType(s string) (AssessmentType, bool) {
	norm := strings.TrimSpace(strings.ReplaceAll(s, "_", " "))
	for _, a := range AssessmentTypes {
		if strings.EqualFold(norm, string(a)) {
			return a, true
		}
	}
	return "", false
}

// IsExam: UTS/UAS hanya boleh satu per siswa per mapel.
func (a AssessmentType) IsExam() bool { return a == JenisUTS || a == JenisUAS }

/* =========================================================
   Grade
========================================================= */

var (
	IDPaths               = []string{"id", "gradeId", "nilaiId", "grade_id"}
	StudentIDPaths        = []string{"studentId", "student_id", "siswaId", "siswa_id", "student.id", "siswa.id"}
	StudentNamePaths      = []string{"student.nama", "student.name", "siswa.nama", "siswa.name", "studentName", "namaSiswa"}
	SemesterIDPaths       = []string{"semesterId", "semester_id", "semester.id"}
	EmbeddedSemesterPaths = []string{"semester", "semesterData", "semester_data"}
	JenisPaths            = []string{"jenis", "jenisNilai", "jenis_nilai", "assessmentType", "type"}
	NilaiPaths            = []string{"nilai", "score", "value"}
	TanggalPaths          = []string{"tanggal", "date", "tanggalPenilaian", "createdAt", "created_at"}
	VerifiedPaths         = []string{"isVerified", "is_verified", "verified", "terverifikasi", "verifikasi"}
	NotesPaths            = []string{"catatan", "keterangan", "topik", "notes"}
)

type Grade struct {
	ID          string         `json:"id,omitempty"`
	StudentID   string         `json:"studentId"`
	StudentName string         `json:"studentName,omitempty"`
	SubjectID   string         `json:"subjectId"`
	SubjectName string         `json:"subjectName,omitempty"`
	TeacherID   string         `json:"teacherId,omitempty"`
	KelasID     string         `json:"kelasId,omitempty"`
	SemesterID  string         `json:"semesterId,omitempty"`
	Jenis       AssessmentType `json:"jenis"`
	Nilai       float64        `json:"nilai"`
	Tanggal     string         `json:"tanggal,omitempty"`
	Catatan     string         `json:"catatan,omitempty"`
	IsVerified  bool           `json:"isVerified"`

	// payload semester yang ikut dikirim backend (fallback metadata)
	Semester pick.Record `json:"-"`
}

// FromRecord: record tanpa nilai numerik dianggap rusak.
func FromRecord(r pick.Record) (Grade, bool) {
	nilai, ok := pick.Number(r, NilaiPaths...)
	if !ok {
		return Grade{}, false
	}
	g := Grade{
		ID:          pick.ID(r, IDPaths...),
		StudentID:   pick.ID(r, StudentIDPaths...),
		StudentName: pick.String(r, StudentNamePaths...),
		SubjectID:   pick.ID(r, relmodel.SubjectIDPaths...),
		SubjectName: pick.String(r, relmodel.SubjectNamePaths...),
		TeacherID:   pick.ID(r, relmodel.TeacherIDPaths...),
		KelasID:     pick.ID(r, relmodel.KelasIDPaths...),
		SemesterID:  pick.ID(r, SemesterIDPaths...),
		Nilai:       nilai,
		Tanggal:     pick.String(r, TanggalPaths...),
		Catatan:     pick.String(r, NotesPaths...),
		IsVerified:  pick.Bool(r, VerifiedPaths...),
	}
	if j, ok := ParseAssessmentType(pick.String(r, JenisPaths...)); ok {
		g.Jenis = j
	} else {
		g.Jenis = AssessmentType(pick.String(r, JenisPaths...))
	}
	if sem, ok := pick.Object(r, EmbeddedSemesterPaths...); ok {
		g.Semester = sem
		if g.SemesterID == "" {
			g.SemesterID = pick.ID(sem, "id")
		}
	}
	return g, true
}

// FromRaw: normalisasi response list nilai.
func FromRaw(raw any) []Grade {
	records := pick.Normalize(raw)
	out := make([]Grade, 0, len(records))
	for _, r := range records {
		if g, ok := FromRecord(r); ok {
			out = append(out, g)
		}
	}
	return out
}
