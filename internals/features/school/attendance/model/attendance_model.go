// file: internals/features/school/attendance/model/attendance_model.go
package model

import (
	"strings"

	relmodel "sekolahku_dashboard/internals/features/school/relations/model"
	"sekolahku_dashboard/internals/helpers/pick"
)

type Status string

const (
	StatusHadir Status = "hadir"
	StatusSakit Status = "sakit"
	StatusIzin  Status = "izin"
	StatusAlfa  Status = "alfa"
)

var Statuses = []Status{StatusHadir, StatusSakit, StatusIzin, StatusAlfa}

// ParseStatus menerima kode singkat H/S/I/A dan ejaan "alpa"/"alpha".
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hadir", "h", "present":
		return StatusHadir, true
	case "sakit", "s", "sick":
		return StatusSakit, true
	case "izin", "ijin", "i", "excused":
		return StatusIzin, true
	case "alfa", "alpa", "alpha", "a", "absent":
		return StatusAlfa, true
	}
	return "", false
}

var (
	IDPaths         = []string{"id", "attendanceId", "absensiId", "attendance_id"}
	StudentIDPaths  = []string{"studentId", "student_id", "siswaId", "siswa_id", "student.id", "siswa.id"}
	StudentNamePath = []string{"student.nama", "student.name", "siswa.nama", "siswa.name", "studentName", "namaSiswa"}
	SemesterIDPaths = []string{"semesterId", "semester_id", "semester.id"}
	StatusPaths     = []string{"status", "kehadiran", "keterangan_status"}
	TanggalPaths    = []string{"tanggal", "date", "tanggalAbsensi", "createdAt"}
	NotesPaths      = []string{"keterangan", "catatan", "notes"}
)

type Attendance struct {
	ID          string `json:"id,omitempty"`
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName,omitempty"`
	SubjectID   string `json:"subjectId,omitempty"`
	SubjectName string `json:"subjectName,omitempty"`
	KelasID     string `json:"kelasId,omitempty"`
	TeacherID   string `json:"teacherId,omitempty"`
	SemesterID  string `json:"semesterId,omitempty"`
	Status      Status `json:"status"`
	Tanggal     string `json:"tanggal,omitempty"`
	Keterangan  string `json:"keterangan,omitempty"`
}

func FromRecord(r pick.Record) Attendance {
	a := Attendance{
		ID:          pick.ID(r, IDPaths...),
		StudentID:   pick.ID(r, StudentIDPaths...),
		StudentName: pick.String(r, StudentNamePath...),
		SubjectID:   pick.ID(r, relmodel.SubjectIDPaths...),
		SubjectName: pick.String(r, relmodel.SubjectNamePaths...),
		KelasID:     pick.ID(r, relmodel.KelasIDPaths...),
		TeacherID:   pick.ID(r, relmodel.TeacherIDPaths...),
		SemesterID:  pick.ID(r, SemesterIDPaths...),
		Tanggal:     pick.String(r, TanggalPaths...),
		Keterangan:  pick.String(r, NotesPaths...),
	}
	raw := pick.String(r, StatusPaths...)
	if st, ok := ParseStatus(raw); ok {
		a.Status = st
	} else {
		a.Status = Status(strings.ToLower(raw))
	}
	return a
}

func FromRaw(raw any) []Attendance {
	records := pick.Normalize(raw)
	out := make([]Attendance, 0, len(records))
	for _, r := range records {
		out = append(out, FromRecord(r))
	}
	return out
}
