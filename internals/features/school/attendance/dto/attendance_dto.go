// file: internals/features/school/attendance/dto/attendance_dto.go
package dto

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"sekolahku_dashboard/internals/features/school/attendance/model"
	helper "sekolahku_dashboard/internals/helpers"
	"sekolahku_dashboard/internals/helpers/pick"
)

type AttendanceForm struct {
	ID         string `json:"id,omitempty"`
	StudentID  string `json:"studentId"  validate:"required"`
	SubjectID  string `json:"subjectId"  validate:"required"`
	KelasID    string `json:"kelasId"    validate:"required"`
	SemesterID string `json:"semesterId" validate:"required"`
	Status     string `json:"status"     validate:"required,oneof=hadir sakit izin alfa"`
	Tanggal    string `json:"tanggal"    validate:"required,datetime=2006-01-02"`
	Keterangan string `json:"keterangan" validate:"omitempty,max=255"`
}

// DecodeAttendanceForm: id boleh angka, status boleh kode H/S/I/A.
func DecodeAttendanceForm(body []byte) (*AttendanceForm, error) {
	var raw map[string]any
	if err := sonic.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, helper.NewFieldError("_", "payload tidak valid")
	}
	return AttendanceFormFromRecord(raw), nil
}

func AttendanceFormFromRecord(r pick.Record) *AttendanceForm {
	return &AttendanceForm{
		ID:         pick.ID(r, "id"),
		StudentID:  pick.ID(r, "studentId"),
		SubjectID:  pick.ID(r, "subjectId"),
		KelasID:    pick.ID(r, "kelasId"),
		SemesterID: pick.ID(r, "semesterId"),
		Status:     pick.String(r, "status"),
		Tanggal:    pick.String(r, "tanggal"),
		Keterangan: pick.String(r, "keterangan"),
	}
}

func (f *AttendanceForm) DefaultSemester(id string) {
	if strings.TrimSpace(f.SemesterID) == "" {
		f.SemesterID = id
	}
}

func (f *AttendanceForm) Normalize() {
	f.StudentID = strings.TrimSpace(f.StudentID)
	f.SubjectID = strings.TrimSpace(f.SubjectID)
	f.KelasID = strings.TrimSpace(f.KelasID)
	f.SemesterID = strings.TrimSpace(f.SemesterID)
	f.Tanggal = strings.TrimSpace(f.Tanggal)
	f.Keterangan = strings.TrimSpace(f.Keterangan)
	if st, ok := model.ParseStatus(f.Status); ok {
		f.Status = string(st)
	}
}

func (f *AttendanceForm) Validate(v *validator.Validate) error {
	f.Normalize()
	return v.Struct(f)
}

func (f *AttendanceForm) ToPayload(teacherID string) map[string]any {
	out := map[string]any{
		"studentId":  f.StudentID,
		"subjectId":  f.SubjectID,
		"kelasId":    f.KelasID,
		"semesterId": f.SemesterID,
		"status":     f.Status,
		"tanggal":    f.Tanggal,
	}
	if teacherID != "" {
		out["teacherId"] = teacherID
	}
	if f.Keterangan != "" {
		out["keterangan"] = f.Keterangan
	}
	return out
}
