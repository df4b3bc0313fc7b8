package service

import (
	"sort"

	relmodel "sekolahku_dashboard/internals/features/school/relations/model"
	relservice "sekolahku_dashboard/internals/features/school/relations/service"
	"sekolahku_dashboard/internals/features/school/schedules/model"
)

// Row: jadwal + info guru/mapel/kelas hasil resolve.
type Row struct {
	model.Schedule
	TeacherName string `json:"teacherName"`
	SubjectName string `json:"subjectName"`
	KelasName   string `json:"kelasName"`
	Label       string `json:"label"`
}

type Filter struct {
	KelasID string
	Hari    string
}

// BuildRows: resolve relasi dulu (kelas bisa hanya ada di relasi), lalu filter
// kelas/hari dan urutkan per hari dan jam mulai.
func BuildRows(list []model.Schedule, byID map[string]relmodel.Option, lk relmodel.Lookups, f Filter) []Row {
	rows := make([]Row, 0, len(list))
	for _, s := range list {
		if f.Hari != "" && s.Hari != f.Hari {
			continue
		}
		row := Row{Schedule: s}
		if info := relservice.ResolveTeacherSubjectInfo(s.Raw, byID, lk); info != nil {
			row.TeacherName = info.TeacherName
			row.SubjectName = info.SubjectName
			row.KelasName = info.KelasName
			row.Label = info.Label
			if row.KelasID == "" {
				row.KelasID = info.KelasID
			}
			if row.TeacherID == "" {
				row.TeacherID = info.TeacherID
			}
			if row.SubjectID == "" {
				row.SubjectID = info.SubjectID
			}
		}
		if f.KelasID != "" && row.KelasID != f.KelasID {
			continue
		}
		if row.KelasName == "" {
			row.KelasName = lk.KelasName(row.KelasID)
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		di, dj := model.DayIndex(rows[i].Hari), model.DayIndex(rows[j].Hari)
		if di != dj {
			return di < dj
		}
		mi, _ := model.Minutes(rows[i].JamMulai)
		mj, _ := model.Minutes(rows[j].JamMulai)
		return mi < mj
	})
	return rows
}
