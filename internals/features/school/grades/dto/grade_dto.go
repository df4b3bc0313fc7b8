// file: internals/features/school/grades/dto/grade_dto.go
package dto

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"sekolahku_dashboard/internals/features/school/grades/model"
	helper "sekolahku_dashboard/internals/helpers"
	"sekolahku_dashboard/internals/helpers/pick"
)

/* =========================================================
   Field bersama semua jenis penilaian
========================================================= */

type GradeFields struct {
	ID         string   `json:"id,omitempty"`
	StudentID  string   `json:"studentId"  validate:"required"`
	SubjectID  string   `json:"subjectId"  validate:"required"`
	KelasID    string   `json:"kelasId"    validate:"required"`
	SemesterID string   `json:"semesterId" validate:"required"`
	Nilai      *float64 `json:"nilai"      validate:"required,gte=0,lte=100,integerlike"`
	Tanggal    string   `json:"tanggal"    validate:"required,datetime=2006-01-02"`
	Catatan    string   `json:"catatan"    validate:"omitempty,max=500"`
}

func (f *GradeFields) normalize() {
	f.StudentID = strings.TrimSpace(f.StudentID)
	f.SubjectID = strings.TrimSpace(f.SubjectID)
	f.KelasID = strings.TrimSpace(f.KelasID)
	f.SemesterID = strings.TrimSpace(f.SemesterID)
	f.Tanggal = strings.TrimSpace(f.Tanggal)
	f.Catatan = strings.TrimSpace(f.Catatan)
}

// DefaultSemester: form tanpa semester memakai semester yang sedang dipilih.
func (f *GradeFields) DefaultSemester(id string) {
	if strings.TrimSpace(f.SemesterID) == "" {
		f.SemesterID = id
	}
}

func (f GradeFields) payload(jenis model.AssessmentType, teacherID string) map[string]any {
	out := map[string]any{
		"studentId":  f.StudentID,
		"subjectId":  f.SubjectID,
		"kelasId":    f.KelasID,
		"semesterId": f.SemesterID,
		"jenis":      string(jenis),
		"tanggal":    f.Tanggal,
	}
	if f.Nilai != nil {
		out["nilai"] = *f.Nilai
	}
	if teacherID != "" {
		out["teacherId"] = teacherID
	}
	if f.Catatan != "" {
		out["catatan"] = f.Catatan
	}
	return out
}

/* =========================================================
   GradeForm: tagged union per jenis penilaian
========================================================= */

type GradeForm interface {
	Kind() model.AssessmentType
	Common() GradeFields
	DefaultSemester(id string)
	Validate(v *validator.Validate) error
	ToPayload(teacherID string) map[string]any
}

// ExamGradeForm: UTS / UAS. Unik per siswa per mapel.
type ExamGradeForm struct {
	GradeFields
	Jenis model.AssessmentType `json:"jenis" validate:"required,oneof=UTS UAS"`
}

func (f *ExamGradeForm) Kind() model.AssessmentType { return f.Jenis }
func (f *ExamGradeForm) Common() GradeFields        { return f.GradeFields }

func (f *ExamGradeForm) Validate(v *validator.Validate) error {
	f.normalize()
	return v.Struct(f)
}

func (f *ExamGradeForm) ToPayload(teacherID string) map[string]any {
	return f.payload(f.Jenis, teacherID)
}

// DailyGradeForm: Ulangan Harian / Kuis / Tugas, boleh berulang dan punya topik.
type DailyGradeForm struct {
	GradeFields
	Jenis model.AssessmentType `json:"jenis" validate:"required"`
	Topik string               `json:"topik" validate:"omitempty,max=200"`
}

func (f *DailyGradeForm) Kind() model.AssessmentType { return f.Jenis }
func (f *DailyGradeForm) Common() GradeFields        { return f.GradeFields }

func (f *DailyGradeForm) Validate(v *validator.Validate) error {
	f.normalize()
	f.Topik = strings.TrimSpace(f.Topik)
	if err := v.Struct(f); err != nil {
		return err
	}
	if f.Jenis.IsExam() {
		return helper.NewFieldError("jenis", "pilihan tidak valid")
	}
	return nil
}

func (f *DailyGradeForm) ToPayload(teacherID string) map[string]any {
	out := f.payload(f.Jenis, teacherID)
	if f.Topik != "" {
		out["topik"] = f.Topik
	}
	return out
}

// DecodeGradeForm membaca field "jenis" lalu mengisi varian yang sesuai.
// Id boleh dikirim sebagai angka atau string; nilai boleh "90".
func DecodeGradeForm(body []byte) (GradeForm, error) {
	var raw map[string]any
	if err := sonic.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, helper.NewFieldError("_", "payload tidak valid")
	}
	return GradeFormFromRecord(raw)
}

func GradeFormFromRecord(r pick.Record) (GradeForm, error) {
	jenisRaw := pick.String(r, "jenis")
	if jenisRaw == "" {
		return nil, helper.NewFieldError("jenis", "wajib diisi")
	}
	jenis, ok := model.ParseAssessmentType(jenisRaw)
	if !ok {
		return nil, helper.NewFieldError("jenis", "pilihan tidak valid")
	}

	fields := GradeFields{
		ID:         pick.ID(r, "id"),
		StudentID:  pick.ID(r, "studentId"),
		SubjectID:  pick.ID(r, "subjectId"),
		KelasID:    pick.ID(r, "kelasId"),
		SemesterID: pick.ID(r, "semesterId"),
		Tanggal:    pick.String(r, "tanggal"),
		Catatan:    pick.String(r, "catatan"),
	}
	// string kosong = belum diisi
	if v, ok := pick.Value(r, "nilai"); ok && strings.TrimSpace(pick.Stringify(v)) != "" {
		n, ok := pick.ToNumber(v)
		if !ok {
			return nil, helper.NewFieldError("nilai", "harus berupa angka")
		}
		fields.Nilai = &n
	}

	if jenis.IsExam() {
		return &ExamGradeForm{GradeFields: fields, Jenis: jenis}, nil
	}
	return &DailyGradeForm{GradeFields: fields, Jenis: jenis, Topik: pick.String(r, "topik")}, nil
}

// EnsureUniqueExam: tolak UTS/UAS kedua untuk pasangan siswa+mapel yang sama.
// Dipanggil hanya saat membuat nilai baru.
func EnsureUniqueExam(form GradeForm, existing []model.Grade) error {
	if !form.Kind().IsExam() {
		return nil
	}
	c := form.Common()
	for _, g := range existing {
		if g.Jenis == form.Kind() && g.StudentID == c.StudentID && g.SubjectID == c.SubjectID {
			return helper.NewFieldError("jenis", "nilai "+string(form.Kind())+" untuk siswa dan mapel ini sudah ada")
		}
	}
	return nil
}

/* =========================================================
   Verifikasi nilai (walikelas)
========================================================= */

type VerifyGradeDTO struct {
	IsVerified *bool `json:"isVerified" validate:"required"`
}
