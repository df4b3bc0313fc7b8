package constants

import "fmt"

// Role yang dikenal dashboard. Walikelas adalah guru yang memegang satu kelas.
const (
	RoleAdmin    = "admin"
	RoleTeacher  = "guru"
	RoleHomeroom = "walikelas"
	RoleStudent  = "siswa"
	RoleParent   = "orangtua"
)

// Template pesan error role
const (
	ErrOnlyTeachersCanAccess = "❌ Hanya guru atau walikelas yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess   = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyHomeroomCanAccess = "❌ Hanya walikelas yang boleh mengakses fitur %s."
	ErrOnlyStudentsCanAccess = "❌ Hanya siswa atau orang tua yang boleh mengakses fitur %s."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorHomeroom(feature string) string {
	return fmt.Sprintf(ErrOnlyHomeroomCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleTeacher,
		RoleHomeroom,
		RoleStudent,
		RoleParent,
	}

	TeacherRoles = []string{
		RoleTeacher,
		RoleHomeroom,
	}

	HomeroomOnly = []string{
		RoleHomeroom,
	}

	StudentRoles = []string{
		RoleStudent,
		RoleParent,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

// HasRole: cek role ada di daftar yang diizinkan.
func HasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
