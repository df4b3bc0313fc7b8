// file: internals/features/school/semesters/dto/semester_dto.go
package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"sekolahku_dashboard/internals/features/school/semesters/model"
	helper "sekolahku_dashboard/internals/helpers"
)

// =======================
// Request DTO (admin)
// =======================

type SemesterCreateDTO struct {
	TahunAjaran       string `json:"tahunAjaran"       validate:"required,tahunajaran"`
	Semester          int    `json:"semester"          validate:"required,oneof=1 2"`
	TanggalMulai      string `json:"tanggalMulai"      validate:"required,datetime=2006-01-02"`
	TanggalSelesai    string `json:"tanggalSelesai"    validate:"required,datetime=2006-01-02"`
	JumlahHariBelajar *int   `json:"jumlahHariBelajar" validate:"omitempty,min=0,max=366"`
	Catatan           string `json:"catatan"           validate:"omitempty,max=500"`
	// pointer: bedakan "tidak dikirim" vs "false"
	IsActive *bool `json:"isActive,omitempty"`
}

type SemesterUpdateDTO struct {
	TahunAjaran       *string `json:"tahunAjaran,omitempty"       validate:"omitempty,tahunajaran"`
	Semester          *int    `json:"semester,omitempty"          validate:"omitempty,oneof=1 2"`
	TanggalMulai      *string `json:"tanggalMulai,omitempty"      validate:"omitempty,datetime=2006-01-02"`
	TanggalSelesai    *string `json:"tanggalSelesai,omitempty"    validate:"omitempty,datetime=2006-01-02"`
	JumlahHariBelajar *int    `json:"jumlahHariBelajar,omitempty" validate:"omitempty,min=0,max=366"`
	Catatan           *string `json:"catatan,omitempty"           validate:"omitempty,max=500"`
	IsActive          *bool   `json:"isActive,omitempty"`
}

// =======================
// Helpers
// =======================

func (p *SemesterCreateDTO) Normalize() {
	p.TahunAjaran = strings.TrimSpace(p.TahunAjaran)
	p.TanggalMulai = strings.TrimSpace(p.TanggalMulai)
	p.TanggalSelesai = strings.TrimSpace(p.TanggalSelesai)
	p.Catatan = strings.TrimSpace(p.Catatan)
}

// Validate: tag validator + tanggal selesai >= tanggal mulai.
func (p *SemesterCreateDTO) Validate(v *validator.Validate) error {
	p.Normalize()
	if err := v.Struct(p); err != nil {
		return err
	}
	return checkRange(p.TanggalMulai, p.TanggalSelesai)
}

func (p *SemesterCreateDTO) WantsActive() bool {
	return p.IsActive != nil && *p.IsActive
}

func (p *SemesterCreateDTO) ToPayload() map[string]any {
	out := map[string]any{
		"tahunAjaran":    p.TahunAjaran,
		"semester":       p.Semester,
		"tanggalMulai":   p.TanggalMulai,
		"tanggalSelesai": p.TanggalSelesai,
		"isActive":       p.WantsActive(),
	}
	if p.JumlahHariBelajar != nil {
		out["jumlahHariBelajar"] = *p.JumlahHariBelajar
	}
	if p.Catatan != "" {
		out["catatan"] = p.Catatan
	}
	return out
}

// Validate untuk patch: rentang tanggal dicek terhadap data lama.
func (u *SemesterUpdateDTO) Validate(v *validator.Validate, current model.Metadata) error {
	if err := v.Struct(u); err != nil {
		return err
	}
	start, end := current.TanggalMulai, current.TanggalSelesai
	if u.TanggalMulai != nil {
		start = strings.TrimSpace(*u.TanggalMulai)
	}
	if u.TanggalSelesai != nil {
		end = strings.TrimSpace(*u.TanggalSelesai)
	}
	if start == "" || end == "" {
		return nil
	}
	return checkRange(start, end)
}

func (u *SemesterUpdateDTO) ToPayload() map[string]any {
	out := map[string]any{}
	if u.TahunAjaran != nil {
		out["tahunAjaran"] = strings.TrimSpace(*u.TahunAjaran)
	}
	if u.Semester != nil {
		out["semester"] = *u.Semester
	}
	if u.TanggalMulai != nil {
		out["tanggalMulai"] = strings.TrimSpace(*u.TanggalMulai)
	}
	if u.TanggalSelesai != nil {
		out["tanggalSelesai"] = strings.TrimSpace(*u.TanggalSelesai)
	}
	if u.JumlahHariBelajar != nil {
		out["jumlahHariBelajar"] = *u.JumlahHariBelajar
	}
	if u.Catatan != nil {
		out["catatan"] = strings.TrimSpace(*u.Catatan)
	}
	if u.IsActive != nil {
		out["isActive"] = *u.IsActive
	}
	return out
}

func checkRange(start, end string) error {
	s, okS := model.ParseDate(start)
	e, okE := model.ParseDate(end)
	if okS && okE && e.Before(s) {
		return helper.NewFieldError("tanggalSelesai", "tanggal selesai harus >= tanggal mulai")
	}
	return nil
}
