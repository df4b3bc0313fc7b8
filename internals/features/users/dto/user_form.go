// file: internals/features/users/dto/user_form.go
package dto

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"sekolahku_dashboard/internals/constants"
	"sekolahku_dashboard/internals/features/users/model"
	helper "sekolahku_dashboard/internals/helpers"
	"sekolahku_dashboard/internals/helpers/pick"
)

/* =======================================================
   Field akun (semua role)
   ======================================================= */

type AccountFields struct {
	ID    string `json:"id,omitempty"`
	Nama  string `json:"nama"  validate:"required,min=3,max=100"`
	Email string `json:"email" validate:"required,email,max=255"`
}

func (a *AccountFields) normalize() {
	a.Nama = strings.TrimSpace(a.Nama)
	a.Email = strings.TrimSpace(strings.ToLower(a.Email))
}

func (a AccountFields) payload(role string) map[string]any {
	return map[string]any{
		"nama":  a.Nama,
		"email": a.Email,
		"role":  role,
	}
}

/* =======================================================
   UserForm: tagged union per role
   ======================================================= */

// UserForm: tiap varian hanya membawa field wajib role-nya sendiri.
type UserForm interface {
	Role() string
	Account() AccountFields
	Validate(v *validator.Validate) error
	UserPayload() map[string]any
	// Profile: resource profil ("students"/"teachers") + payload; "" kalau tidak ada.
	Profile(userID string) (resource string, payload map[string]any)
	// HomeroomKelasID: kelas yang dipegang (hanya walikelas).
	HomeroomKelasID() string
}

type AdminForm struct {
	AccountFields
}

func (f *AdminForm) Role() string                { return constants.RoleAdmin }
func (f *AdminForm) Account() AccountFields      { return f.AccountFields }
func (f *AdminForm) UserPayload() map[string]any { return f.payload(f.Role()) }
func (f *AdminForm) HomeroomKelasID() string     { return "" }

func (f *AdminForm) Validate(v *validator.Validate) error {
	f.normalize()
	return v.Struct(f)
}

func (f *AdminForm) Profile(string) (string, map[string]any) { return "", nil }

// TeacherForm: guru mapel, wajib NIP.
type TeacherForm struct {
	AccountFields
	NIP string `json:"nip" validate:"required,numeric,min=8,max=20"`
}

func (f *TeacherForm) Role() string                { return constants.RoleTeacher }
func (f *TeacherForm) Account() AccountFields      { return f.AccountFields }
func (f *TeacherForm) UserPayload() map[string]any { return f.payload(f.Role()) }
func (f *TeacherForm) HomeroomKelasID() string     { return "" }

func (f *TeacherForm) Validate(v *validator.Validate) error {
	f.normalize()
	f.NIP = strings.TrimSpace(f.NIP)
	return v.Struct(f)
}

func (f *TeacherForm) Profile(userID string) (string, map[string]any) {
	return constants.ResourceTeachers, map[string]any{"userId": userID, "nama": f.Nama, "nip": f.NIP}
}

// HomeroomForm: guru yang sekaligus wali satu kelas.
type HomeroomForm struct {
	AccountFields
	NIP     string `json:"nip"     validate:"required,numeric,min=8,max=20"`
	KelasID string `json:"kelasId" validate:"required"`
}

func (f *HomeroomForm) Role() string                { return constants.RoleHomeroom }
func (f *HomeroomForm) Account() AccountFields      { return f.AccountFields }
func (f *HomeroomForm) UserPayload() map[string]any { return f.payload(f.Role()) }
func (f *HomeroomForm) HomeroomKelasID() string     { return f.KelasID }

func (f *HomeroomForm) Validate(v *validator.Validate) error {
	f.normalize()
	f.NIP = strings.TrimSpace(f.NIP)
	f.KelasID = strings.TrimSpace(f.KelasID)
	return v.Struct(f)
}

func (f *HomeroomForm) Profile(userID string) (string, map[string]any) {
	return constants.ResourceTeachers, map[string]any{"userId": userID, "nama": f.Nama, "nip": f.NIP}
}

// StudentForm: siswa, wajib NISN 10 digit dan kelas.
type StudentForm struct {
	AccountFields
	NISN    string `json:"nisn"    validate:"required,numeric,len=10"`
	KelasID string `json:"kelasId" validate:"required"`
}

func (f *StudentForm) Role() string                { return constants.RoleStudent }
func (f *StudentForm) Account() AccountFields      { return f.AccountFields }
func (f *StudentForm) UserPayload() map[string]any { return f.payload(f.Role()) }
func (f *StudentForm) HomeroomKelasID() string     { return "" }

func (f *StudentForm) Validate(v *validator.Validate) error {
	f.normalize()
	f.NISN = strings.TrimSpace(f.NISN)
	f.KelasID = strings.TrimSpace(f.KelasID)
	return v.Struct(f)
}

func (f *StudentForm) Profile(userID string) (string, map[string]any) {
	return constants.ResourceStudents, map[string]any{
		"userId": userID, "nama": f.Nama, "nisn": f.NISN, "kelasId": f.KelasID,
	}
}

/* =======================================================
   Decode
   ======================================================= */

func DecodeUserForm(body []byte) (UserForm, error) {
	var raw map[string]any
	if err := sonic.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, helper.NewFieldError("_", "payload tidak valid")
	}
	return UserFormFromRecord(raw)
}

// UserFormFromRecord memilih varian dari field "role".
func UserFormFromRecord(r pick.Record) (UserForm, error) {
	roleRaw := pick.String(r, "role")
	if roleRaw == "" {
		return nil, helper.NewFieldError("role", "wajib diisi")
	}
	acc := AccountFields{
		ID:    pick.ID(r, "id"),
		Nama:  pick.String(r, "nama", "name"),
		Email: pick.String(r, "email"),
	}
	switch model.NormalizeRole(roleRaw) {
	case constants.RoleAdmin:
		return &AdminForm{AccountFields: acc}, nil
	case constants.RoleTeacher:
		return &TeacherForm{AccountFields: acc, NIP: pick.String(r, "nip")}, nil
	case constants.RoleHomeroom:
		return &HomeroomForm{AccountFields: acc, NIP: pick.String(r, "nip"), KelasID: pick.ID(r, "kelasId")}, nil
	case constants.RoleStudent:
		return &StudentForm{AccountFields: acc, NISN: pick.String(r, "nisn"), KelasID: pick.ID(r, "kelasId")}, nil
	}
	return nil, helper.NewFieldError("role", "pilihan tidak valid")
}
