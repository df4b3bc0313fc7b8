package service

import (
	"math"

	"sekolahku_dashboard/internals/features/school/attendance/model"
)

// Summary: rekap kehadiran. Status di luar enum tetap dihitung di Total.
type Summary struct {
	Hadir      int `json:"hadir"`
	Sakit      int `json:"sakit"`
	Izin       int `json:"izin"`
	Alfa       int `json:"alfa"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

func Summarize(list []model.Attendance) Summary {
	var s Summary
	for _, a := range list {
		switch a.Status {
		case model.StatusHadir:
			s.Hadir++
		case model.StatusSakit:
			s.Sakit++
		case model.StatusIzin:
			s.Izin++
		case model.StatusAlfa:
			s.Alfa++
		}
		s.Total++
	}
	s.Percentage = Percentage(s.Hadir, s.Total)
	return s
}

// Percentage = round(hadir/total*100), 0 jika belum ada data.
func Percentage(hadir, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(hadir) / float64(total) * 100))
}

func FilterByStudent(list []model.Attendance, studentID string) []model.Attendance {
	out := make([]model.Attendance, 0)
	for _, a := range list {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out
}

// WithSubjectNames mengisi nama mapel yang kosong.
func WithSubjectNames(list []model.Attendance, names map[string]string) []model.Attendance {
	out := make([]model.Attendance, len(list))
	for i, a := range list {
		if a.SubjectName == "" {
			a.SubjectName = names[a.SubjectID]
		}
		out[i] = a
	}
	return out
}

func WithStudentNames(list []model.Attendance, names map[string]string) []model.Attendance {
	out := make([]model.Attendance, len(list))
	for i, a := range list {
		if a.StudentName == "" {
			a.StudentName = names[a.StudentID]
		}
		out[i] = a
	}
	return out
}
