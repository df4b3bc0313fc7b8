package constants

// Nama resource REST di backend.
const (
	ResourceSemesters       = "semesters"
	ResourceClasses         = "classes"
	ResourceSubjects        = "subjects"
	ResourceUsers           = "users"
	ResourceStudents        = "students"
	ResourceTeachers        = "teachers"
	ResourceTeacherSubjects = "teacher-subjects"
	ResourceSchedules       = "schedules"
	ResourceGrades          = "grades"
	ResourceAttendance      = "attendance"
)

// Key penyimpanan lokal (mode fallback), satu per jenis entitas.
var StoreKeys = map[string]string{
	ResourceSemesters:       "sekolahku_semesters",
	ResourceClasses:         "sekolahku_classes",
	ResourceSubjects:        "sekolahku_subjects",
	ResourceUsers:           "sekolahku_users",
	ResourceStudents:        "sekolahku_students",
	ResourceTeachers:        "sekolahku_teachers",
	ResourceTeacherSubjects: "sekolahku_teacher_subjects",
	ResourceSchedules:       "sekolahku_schedules",
	ResourceGrades:          "sekolahku_grades",
	ResourceAttendance:      "sekolahku_attendance",
}

// StoreKey mengembalikan key penyimpanan untuk resource; "" jika tidak dikenal.
func StoreKey(resource string) string {
	return StoreKeys[resource]
}
