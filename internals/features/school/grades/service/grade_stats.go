package service

import (
	"math"
	"sort"

	"sekolahku_dashboard/internals/features/school/grades/model"
)

func round1(f float64) float64 { return math.Round(f*10) / 10 }

// Average: rata-rata nilai, satu angka di belakang koma; 0 jika kosong.
func Average(grades []model.Grade) float64 {
	if len(grades) == 0 {
		return 0
	}
	total := 0.0
	for _, g := range grades {
		total += g.Nilai
	}
	return round1(total / float64(len(grades)))
}

type SubjectAverage struct {
	SubjectID   string  `json:"subjectId"`
	SubjectName string  `json:"subjectName"`
	Average     float64 `json:"average"`
	Count       int     `json:"count"`
}

// AverageBySubject diurutkan berdasarkan nama mapel lalu id.
func AverageBySubject(grades []model.Grade) []SubjectAverage {
	type acc struct {
		name  string
		total float64
		n     int
	}
	byID := map[string]*acc{}
	for _, g := range grades {
		a, ok := byID[g.SubjectID]
		if !ok {
			a = &acc{name: g.SubjectName}
			byID[g.SubjectID] = a
		}
		if a.name == "" {
			a.name = g.SubjectName
		}
		a.total += g.Nilai
		a.n++
	}

	out := make([]SubjectAverage, 0, len(byID))
	for id, a := range byID {
		out = append(out, SubjectAverage{
			SubjectID:   id,
			SubjectName: a.name,
			Average:     round1(a.total / float64(a.n)),
			Count:       a.n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SubjectName != out[j].SubjectName {
			return out[i].SubjectName < out[j].SubjectName
		}
		return out[i].SubjectID < out[j].SubjectID
	})
	return out
}

// CountUnverified: nilai yang belum diverifikasi walikelas.
func CountUnverified(grades []model.Grade) int {
	n := 0
	for _, g := range grades {
		if !g.IsVerified {
			n++
		}
	}
	return n
}

// FilterByStudent mengembalikan slice baru.
func FilterByStudent(grades []model.Grade, studentID string) []model.Grade {
	out := make([]model.Grade, 0)
	for _, g := range grades {
		if g.StudentID == studentID {
			out = append(out, g)
		}
	}
	return out
}

// WithSubjectNames mengisi nama mapel yang kosong dari map id → nama.
func WithSubjectNames(grades []model.Grade, names map[string]string) []model.Grade {
	out := make([]model.Grade, len(grades))
	for i, g := range grades {
		if g.SubjectName == "" {
			g.SubjectName = names[g.SubjectID]
		}
		out[i] = g
	}
	return out
}

// WithStudentNames mengisi nama siswa yang kosong.
func WithStudentNames(grades []model.Grade, names map[string]string) []model.Grade {
	out := make([]model.Grade, len(grades))
	for i, g := range grades {
		if g.StudentName == "" {
			g.StudentName = names[g.StudentID]
		}
		out[i] = g
	}
	return out
}
