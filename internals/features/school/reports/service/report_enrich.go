package service

import (
	"strings"

	attmodel "sekolahku_dashboard/internals/features/school/attendance/model"
	attservice "sekolahku_dashboard/internals/features/school/attendance/service"
	grademodel "sekolahku_dashboard/internals/features/school/grades/model"
	gradeservice "sekolahku_dashboard/internals/features/school/grades/service"
	"sekolahku_dashboard/internals/features/school/reports/model"
	semmodel "sekolahku_dashboard/internals/features/school/semesters/model"
	"sekolahku_dashboard/internals/helpers/pick"
)

func semesterFields(m *semmodel.Metadata) map[string]any {
	if m == nil {
		return nil
	}
	out := map[string]any{
		model.KeySemesterID:      m.ID,
		model.KeyTahunAjaran:     m.TahunAjaran,
		model.KeySemesterLabel:   "",
		model.KeyTanggalMulai:    m.TanggalMulai,
		model.KeyTanggalSelesai:  m.TanggalSelesai,
		model.KeyCatatanSemester: m.Catatan,
	}
	if !m.Semester.IsZero() {
		if m.Semester.Number != 0 {
			out[model.KeySemester] = m.Semester.Number
		} else {
			out[model.KeySemester] = m.Semester.Raw
		}
		out[model.KeySemesterLabel] = m.TermLabel()
	}
	if m.TanggalMulai != "" && m.TanggalSelesai != "" {
		out[model.KeyPeriode] = m.DateRange()
	}
	if m.JumlahHariBelajar != nil {
		out[model.KeyJumlahHariBelajar] = *m.JumlahHariBelajar
	}
	return out
}

var enrichKeys = []string{
	model.KeySemesterID, model.KeyTahunAjaran, model.KeySemester, model.KeySemesterLabel,
	model.KeyPeriode, model.KeyTanggalMulai, model.KeyTanggalSelesai,
	model.KeyJumlahHariBelajar, model.KeyCatatanSemester,
}

func present(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// Enrich melengkapi payload laporan dengan metadata semester.
// Urutan: nilai di payload, lalu metadata hasil resolve, lalu metadata
// yang menempel di record (embedded). Payload asli tidak diubah.
func Enrich(payload pick.Record, resolved, embedded *semmodel.Metadata) pick.Record {
	out := make(pick.Record, len(payload)+len(enrichKeys))
	for k, v := range payload {
		out[k] = v
	}
	sources := []map[string]any{semesterFields(resolved), semesterFields(embedded)}
	for _, k := range enrichKeys {
		if present(out[k]) {
			continue
		}
		for _, src := range sources {
			if v, ok := src[k]; ok && present(v) {
				out[k] = v
				break
			}
		}
	}
	return out
}

/* =========================================================
   Payload dari data dashboard
========================================================= */

type StudentInfo struct {
	ID        string
	Nama      string
	NISN      string
	KelasID   string
	KelasName string
}

type Input struct {
	School     string
	Student    StudentInfo
	Grades     []grademodel.Grade
	Attendance []attmodel.Attendance
	// Extra ikut disalin apa adanya (mis. catatan wali kelas)
	Extra pick.Record
}

// NewPayload membangun payload datar (map/slice JSON) dari data bertipe.
func NewPayload(in Input) pick.Record {
	grades := make([]any, 0, len(in.Grades))
	for _, g := range in.Grades {
		grades = append(grades, map[string]any{
			"id":          g.ID,
			"subjectId":   g.SubjectID,
			"subjectName": g.SubjectName,
			"jenis":       string(g.Jenis),
			"nilai":       g.Nilai,
			"tanggal":     g.Tanggal,
			"isVerified":  g.IsVerified,
		})
	}
	averages := make([]any, 0)
	for _, a := range gradeservice.AverageBySubject(in.Grades) {
		averages = append(averages, map[string]any{
			"subjectId":   a.SubjectID,
			"subjectName": a.SubjectName,
			"average":     a.Average,
			"count":       a.Count,
		})
	}
	sum := attservice.Summarize(in.Attendance)

	out := pick.Record{}
	for k, v := range in.Extra {
		out[k] = v
	}
	if in.School != "" {
		out[model.KeySchool] = in.School
	}
	out[model.KeyStudent] = map[string]any{
		"id":        in.Student.ID,
		"nama":      in.Student.Nama,
		"nisn":      in.Student.NISN,
		"kelasId":   in.Student.KelasID,
		"kelasNama": in.Student.KelasName,
	}
	out[model.KeyGrades] = grades
	out[model.KeySubjectAverages] = averages
	out[model.KeyAverageGrade] = gradeservice.Average(in.Grades)
	out[model.KeyAttendance] = map[string]any{
		"hadir":      sum.Hadir,
		"sakit":      sum.Sakit,
		"izin":       sum.Izin,
		"alfa":       sum.Alfa,
		"total":      sum.Total,
		"percentage": sum.Percentage,
	}
	return out
}

// EmbeddedSemester: metadata semester yang ikut di record nilai pertama
// yang membawanya.
func EmbeddedSemester(grades []grademodel.Grade) *semmodel.Metadata {
	for _, g := range grades {
		if len(g.Semester) > 0 {
			m := semmodel.FromRecord(g.Semester)
			return &m
		}
	}
	return nil
}
