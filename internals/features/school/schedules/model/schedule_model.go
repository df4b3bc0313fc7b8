// file: internals/features/school/schedules/model/schedule_model.go
package model

import (
	"strconv"
	"strings"

	relmodel "sekolahku_dashboard/internals/features/school/relations/model"
	"sekolahku_dashboard/internals/helpers/pick"
)

/* =========================================================
   Hari
========================================================= */

const (
	Senin  = "Senin"
	Selasa = "Selasa"
	Rabu   = "Rabu"
	Kamis  = "Kamis"
	Jumat  = "Jumat"
	Sabtu  = "Sabtu"
	Minggu = "Minggu"
)

var Days = []string{Senin, Selasa, Rabu, Kamis, Jumat, Sabtu, Minggu}

// ParseHari: case-insensitive, "Jum'at" diterima sebagai Jumat.
func ParseHari(s string) (string, bool) {
	norm := strings.ReplaceAll(strings.TrimSpace(s), "'", "")
	for _, d := range Days {
		if strings.EqualFold(norm, d) {
			return d, true
		}
	}
	return "", false
}

// DayIndex untuk pengurutan; hari tak dikenal di akhir.
func DayIndex(hari string) int {
	for i, d := range Days {
		if strings.EqualFold(d, hari) {
			return i
		}
	}
	return len(Days)
}

// Minutes membaca "HH:MM" (atau "H:MM", "HH:MM:SS") menjadi menit sejak 00:00.
func Minutes(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

/* =========================================================
   Schedule
========================================================= */

var (
	IDPaths          = []string{"id", "scheduleId", "jadwalId", "schedule_id"}
	SemesterIDPaths  = []string{"semesterId", "semester_id", "semester.id"}
	HariPaths        = []string{"hari", "day", "dayOfWeek", "day_of_week"}
	JamMulaiPaths    = []string{"jamMulai", "jam_mulai", "startTime", "start_time", "waktuMulai"}
	JamSelesaiPaths  = []string{"jamSelesai", "jam_selesai", "endTime", "end_time", "waktuSelesai"}
	RuanganPaths     = []string{"ruangan", "ruang", "room"}
	WaliKelasIDPaths = []string{"waliKelasId", "wali_kelas_id", "homeroomTeacherId", "walikelas.id"}
	CatatanPaths     = []string{"catatan", "keterangan", "notes"}
)

type Schedule struct {
	ID          string `json:"id"`
	KelasID     string `json:"kelasId,omitempty"`
	RelationID  string `json:"relationId,omitempty"`
	TeacherID   string `json:"teacherId,omitempty"`
	SubjectID   string `json:"subjectId,omitempty"`
	SemesterID  string `json:"semesterId,omitempty"`
	Hari        string `json:"hari"`
	JamMulai    string `json:"jamMulai"`
	JamSelesai  string `json:"jamSelesai"`
	Ruangan     string `json:"ruangan,omitempty"`
	WaliKelasID string `json:"waliKelasId,omitempty"`
	Catatan     string `json:"catatan,omitempty"`

	Raw pick.Record `json:"-"`
}

// RelationIDPaths tanpa "id": "id" milik jadwal itu sendiri.
var RelationIDPaths = []string{
	"relationId", "relation_id", "teacherSubjectId", "teacher_subject_id",
	"teacherSubjectClassId", "teacher_subject_class_id",
}

func FromRecord(r pick.Record) Schedule {
	s := Schedule{
		ID:          pick.ID(r, IDPaths...),
		KelasID:     pick.ID(r, relmodel.KelasIDPaths...),
		RelationID:  pick.ID(r, RelationIDPaths...),
		TeacherID:   pick.ID(r, relmodel.TeacherIDPaths...),
		SubjectID:   pick.ID(r, relmodel.SubjectIDPaths...),
		SemesterID:  pick.ID(r, SemesterIDPaths...),
		Hari:        pick.String(r, HariPaths...),
		JamMulai:    pick.String(r, JamMulaiPaths...),
		JamSelesai:  pick.String(r, JamSelesaiPaths...),
		Ruangan:     pick.String(r, RuanganPaths...),
		WaliKelasID: pick.ID(r, WaliKelasIDPaths...),
		Catatan:     pick.String(r, CatatanPaths...),
		Raw:         r,
	}
	if d, ok := ParseHari(s.Hari); ok {
		s.Hari = d
	}
	return s
}

// FromRaw: jadwal tanpa id dibuang.
func FromRaw(raw any) []Schedule {
	records := pick.Normalize(raw, IDPaths...)
	out := make([]Schedule, 0, len(records))
	for _, r := range records {
		out = append(out, FromRecord(r))
	}
	return out
}
