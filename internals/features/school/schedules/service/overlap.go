package service

import (
	"sekolahku_dashboard/internals/features/school/schedules/model"
)

// Overlaps: hari sama dan rentang [mulai, selesai) beririsan.
func Overlaps(a, b model.Schedule) bool {
	if a.Hari == "" || a.Hari != b.Hari {
		return false
	}
	as, ok1 := model.Minutes(a.JamMulai)
	ae, ok2 := model.Minutes(a.JamSelesai)
	bs, ok3 := model.Minutes(b.JamMulai)
	be, ok4 := model.Minutes(b.JamSelesai)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}
	return as < be && bs < ae
}

// FindConflicts: jadwal lain di semester yang sama yang bentrok pada kelas
// atau guru yang sama. Scope kelas didahulukan.
func FindConflicts(existing []model.Schedule, candidate model.Schedule) (string, []model.Schedule) {
	var byKelas, byGuru []model.Schedule
	for _, s := range existing {
		if candidate.ID != "" && s.ID == candidate.ID {
			continue
		}
		if candidate.SemesterID != "" && s.SemesterID != "" && s.SemesterID != candidate.SemesterID {
			continue
		}
		if !Overlaps(s, candidate) {
			continue
		}
		switch {
		case candidate.KelasID != "" && s.KelasID == candidate.KelasID:
			byKelas = append(byKelas, s)
		case candidate.TeacherID != "" && s.TeacherID == candidate.TeacherID:
			byGuru = append(byGuru, s)
		}
	}
	if len(byKelas) > 0 {
		return ScopeKelas, byKelas
	}
	if len(byGuru) > 0 {
		return ScopeGuru, byGuru
	}
	return "", nil
}
