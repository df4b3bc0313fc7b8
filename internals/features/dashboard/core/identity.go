// file: internals/features/dashboard/core/identity.go
package core

import (
	"errors"
	"strings"
)

// Identity: user yang sedang login, diisi middleware auth.
//
// ProfileID = id siswa (role siswa/orangtua) atau id guru (guru/walikelas);
// kalau kosong dipakai UserID.
type Identity struct {
	UserID    string `json:"userId"`
	Role      string `json:"role"`
	Name      string `json:"name,omitempty"`
	ProfileID string `json:"profileId,omitempty"`
	KelasID   string `json:"kelasId,omitempty"`
	Token     string `json:"-"`
}

func (i Identity) IsZero() bool { return strings.TrimSpace(i.UserID) == "" }

// Subject: id yang dipakai sebagai filter data (studentId / teacherId).
func (i Identity) Subject() string {
	if p := strings.TrimSpace(i.ProfileID); p != "" {
		return p
	}
	return strings.TrimSpace(i.UserID)
}

// Jenis data yang berubah, dikirim ke OnDataChange.
const (
	KindGrades     = "grades"
	KindAttendance = "attendance"
	KindSchedules  = "schedules"
	KindSemesters  = "semesters"
	KindUsers      = "users"
	KindClasses    = "classes"
)

// DataChangeFunc dipanggil setelah mutasi sukses supaya komponen lain ikut reload.
type DataChangeFunc func(kind string)

func (f DataChangeFunc) Notify(kind string) {
	if f != nil {
		f(kind)
	}
}

// ErrNoIdentity: dashboard hanya dimuat untuk user yang sudah dikenal.
var ErrNoIdentity = errors.New("identitas user belum tersedia")
