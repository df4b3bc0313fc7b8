package service

import (
	"strings"

	relmodel "sekolahku_dashboard/internals/features/school/relations/model"
	"sekolahku_dashboard/internals/features/school/schedules/model"
	"sekolahku_dashboard/internals/helpers/pick"
)

const (
	ScopeKelas = "kelas"
	ScopeGuru  = "guru"
)

// Conflict: satu entri bentrok dari details.conflicts.
type Conflict struct {
	Hari        string `json:"hari"`
	JamMulai    string `json:"jamMulai"`
	JamSelesai  string `json:"jamSelesai"`
	KelasName   string `json:"kelasNama,omitempty"`
	TeacherName string `json:"guruNama,omitempty"`
	SubjectName string `json:"mapelNama,omitempty"`
}

func ConflictFromRecord(r pick.Record) Conflict {
	c := Conflict{
		Hari:        pick.String(r, model.HariPaths...),
		JamMulai:    pick.String(r, model.JamMulaiPaths...),
		JamSelesai:  pick.String(r, model.JamSelesaiPaths...),
		KelasName:   pick.String(r, relmodel.KelasNamePaths...),
		TeacherName: pick.String(r, relmodel.TeacherNamePaths...),
		SubjectName: pick.String(r, relmodel.SubjectNamePaths...),
	}
	if d, ok := model.ParseHari(c.Hari); ok {
		c.Hari = d
	}
	return c
}

// Line: "Senin • 08:00 - 09:00 • Kelas X IPA 1 • Guru ... • Mapel ...".
func (c Conflict) Line() string {
	parts := make([]string, 0, 5)
	if c.Hari != "" {
		parts = append(parts, c.Hari)
	}
	switch {
	case c.JamMulai != "" && c.JamSelesai != "":
		parts = append(parts, c.JamMulai+" - "+c.JamSelesai)
	case c.JamMulai != "":
		parts = append(parts, c.JamMulai)
	case c.JamSelesai != "":
		parts = append(parts, c.JamSelesai)
	}
	if c.KelasName != "" {
		parts = append(parts, "Kelas "+c.KelasName)
	}
	if c.TeacherName != "" {
		parts = append(parts, "Guru "+c.TeacherName)
	}
	if c.SubjectName != "" {
		parts = append(parts, "Mapel "+c.SubjectName)
	}
	return strings.Join(parts, relmodel.LabelSeparator)
}

type Banner struct {
	Scope   string   `json:"scope,omitempty"`
	Title   string   `json:"title"`
	Entries []string `json:"entries"`
}

func bannerTitle(scope string) string {
	switch strings.ToLower(scope) {
	case ScopeKelas:
		return "Jadwal bentrok dengan jadwal lain di kelas yang sama"
	case ScopeGuru:
		return "Guru sudah mengajar di jam tersebut"
	default:
		return "Jadwal bentrok dengan jadwal lain"
	}
}

// BuildBanner menerima details.conflicts dalam bentuk apa pun (array/map/objek).
func BuildBanner(scope string, conflicts any) Banner {
	b := Banner{Scope: scope, Title: bannerTitle(scope), Entries: []string{}}
	for _, r := range pick.Normalize(conflicts) {
		if line := ConflictFromRecord(r).Line(); line != "" {
			b.Entries = append(b.Entries, line)
		}
	}
	return b
}
