// file: internals/features/school/schedules/dto/schedule_dto.go
package dto

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"sekolahku_dashboard/internals/features/school/schedules/model"
	helper "sekolahku_dashboard/internals/helpers"
	"sekolahku_dashboard/internals/helpers/pick"
)

// ScheduleForm: relasi guru-mapel-kelas diutamakan; guru+mapel mentah sebagai cadangan.
type ScheduleForm struct {
	ID          string `json:"id,omitempty"`
	KelasID     string `json:"kelasId"     validate:"required"`
	RelationID  string `json:"relationId"`
	TeacherID   string `json:"teacherId"   validate:"required_without=RelationID"`
	SubjectID   string `json:"subjectId"   validate:"required_without=RelationID"`
	SemesterID  string `json:"semesterId"  validate:"required"`
	Hari        string `json:"hari"        validate:"required,oneof=Senin Selasa Rabu Kamis Jumat Sabtu Minggu"`
	JamMulai    string `json:"jamMulai"    validate:"required,jam"`
	JamSelesai  string `json:"jamSelesai"  validate:"required,jam"`
	Ruangan     string `json:"ruangan"     validate:"omitempty,max=50"`
	WaliKelasID string `json:"waliKelasId"`
	Catatan     string `json:"catatan"     validate:"omitempty,max=500"`
}

func DecodeScheduleForm(body []byte) (*ScheduleForm, error) {
	var raw map[string]any
	if err := sonic.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, helper.NewFieldError("_", "payload tidak valid")
	}
	return ScheduleFormFromRecord(raw), nil
}

func ScheduleFormFromRecord(r pick.Record) *ScheduleForm {
	return &ScheduleForm{
		ID:          pick.ID(r, "id"),
		KelasID:     pick.ID(r, "kelasId"),
		RelationID:  pick.ID(r, "relationId", "teacherSubjectId"),
		TeacherID:   pick.ID(r, "teacherId"),
		SubjectID:   pick.ID(r, "subjectId"),
		SemesterID:  pick.ID(r, "semesterId"),
		Hari:        pick.String(r, "hari"),
		JamMulai:    pick.String(r, "jamMulai"),
		JamSelesai:  pick.String(r, "jamSelesai"),
		Ruangan:     pick.String(r, "ruangan"),
		WaliKelasID: pick.ID(r, "waliKelasId"),
		Catatan:     pick.String(r, "catatan"),
	}
}

func (f *ScheduleForm) DefaultSemester(id string) {
	if strings.TrimSpace(f.SemesterID) == "" {
		f.SemesterID = id
	}
}

func (f *ScheduleForm) Normalize() {
	f.KelasID = strings.TrimSpace(f.KelasID)
	f.RelationID = strings.TrimSpace(f.RelationID)
	f.TeacherID = strings.TrimSpace(f.TeacherID)
	f.SubjectID = strings.TrimSpace(f.SubjectID)
	f.SemesterID = strings.TrimSpace(f.SemesterID)
	f.JamMulai = strings.TrimSpace(f.JamMulai)
	f.JamSelesai = strings.TrimSpace(f.JamSelesai)
	f.Ruangan = strings.TrimSpace(f.Ruangan)
	f.Catatan = strings.TrimSpace(f.Catatan)
	if d, ok := model.ParseHari(f.Hari); ok {
		f.Hari = d
	}
}

// Validate: tag validator lalu jam selesai harus setelah jam mulai.
func (f *ScheduleForm) Validate(v *validator.Validate) error {
	f.Normalize()
	if err := v.Struct(f); err != nil {
		return err
	}
	start, _ := model.Minutes(f.JamMulai)
	end, _ := model.Minutes(f.JamSelesai)
	if end <= start {
		return helper.NewFieldError("jamSelesai", "jam selesai harus setelah jam mulai")
	}
	return nil
}

func (f *ScheduleForm) ToPayload() map[string]any {
	out := map[string]any{
		"kelasId":    f.KelasID,
		"semesterId": f.SemesterID,
		"hari":       f.Hari,
		"jamMulai":   f.JamMulai,
		"jamSelesai": f.JamSelesai,
	}
	if f.RelationID != "" {
		out["relationId"] = f.RelationID
	}
	if f.TeacherID != "" {
		out["teacherId"] = f.TeacherID
	}
	if f.SubjectID != "" {
		out["subjectId"] = f.SubjectID
	}
	if f.Ruangan != "" {
		out["ruangan"] = f.Ruangan
	}
	if f.WaliKelasID != "" {
		out["waliKelasId"] = f.WaliKelasID
	}
	if f.Catatan != "" {
		out["catatan"] = f.Catatan
	}
	return out
}
