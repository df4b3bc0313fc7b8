// file: internals/features/school/semesters/model/semester_model.go
package model

import (
	"encoding/json"
	"math"
	"strings"

	"sekolahku_dashboard/internals/helpers/pick"
)

/* =========================================================
   Alias field semester (urutan = prioritas)
========================================================= */

var (
	IDPaths        = []string{"id", "semesterId", "semester_id"}
	YearPaths      = []string{"tahunAjaran", "tahun", "academicYear", "year", "tahun_ajaran"}
	TermPaths      = []string{"semester", "semesterNumber", "term", "semester_number"}
	StartDatePaths = []string{"tanggalMulai", "startDate", "start_date", "tglMulai", "tanggal_mulai"}
	EndDatePaths   = []string{"tanggalSelesai", "endDate", "end_date", "tglSelesai", "tanggal_selesai"}
	StudyDayPaths  = []string{"jumlahHariBelajar", "hariBelajar", "studyDays", "totalHariBelajar", "jumlah_hari_belajar"}
	NotesPaths     = []string{"catatan", "notes", "keterangan"}
	ActivePaths    = []string{"isActive", "is_active", "aktif"}
)

/* =========================================================
   Term: nomor semester (1 = Ganjil, 2 = Genap)
========================================================= */

// Term menyimpan nomor semester. Jika backend mengirim nilai non-numerik,
// Number = 0 dan Raw berisi nilai aslinya.
type Term struct {
	Number int
	Raw    string
}

func TermFromValue(v any) Term {
	raw := pick.Stringify(v)
	if f, ok := pick.ToNumber(v); ok && f == math.Trunc(f) {
		return Term{Number: int(f), Raw: raw}
	}
	return Term{Raw: raw}
}

func (t Term) IsZero() bool { return t.Number == 0 && t.Raw == "" }

func (t Term) Label() string {
	switch t.Number {
	case 1:
		return "Semester Ganjil"
	case 2:
		return "Semester Genap"
	}
	if t.Number != 0 {
		return "Semester " + pick.Stringify(t.Number)
	}
	return strings.TrimSpace("Semester " + t.Raw)
}

func (t Term) MarshalJSON() ([]byte, error) {
	switch {
	case t.Number != 0:
		return json.Marshal(t.Number)
	case t.Raw != "":
		return json.Marshal(t.Raw)
	default:
		return []byte("null"), nil
	}
}

func (t *Term) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*t = TermFromValue(v)
	return nil
}

/* =========================================================
   Metadata: bentuk kanonik semester
========================================================= */

type Metadata struct {
	ID                string `json:"id,omitempty"`
	TahunAjaran       string `json:"tahunAjaran"`
	Semester          Term   `json:"semester"`
	TanggalMulai      string `json:"tanggalMulai,omitempty"`
	TanggalSelesai    string `json:"tanggalSelesai,omitempty"`
	JumlahHariBelajar *int   `json:"jumlahHariBelajar,omitempty"`
	Catatan           string `json:"catatan,omitempty"`
	IsActive          bool   `json:"isActive"`
}

// FromRecord menormalkan record semester mentah. Selalu berhasil;
// record tanpa field yang dikenal menghasilkan Metadata kosong.
func FromRecord(r pick.Record) Metadata {
	m := Metadata{
		ID:             pick.ID(r, IDPaths...),
		TahunAjaran:    pick.String(r, YearPaths...),
		TanggalMulai:   pick.String(r, StartDatePaths...),
		TanggalSelesai: pick.String(r, EndDatePaths...),
		Catatan:        pick.String(r, NotesPaths...),
		IsActive:       pick.Bool(r, ActivePaths...),
	}
	if v, ok := pick.Value(r, TermPaths...); ok {
		// field "semester" kadang berisi objek semester utuh, bukan nomor
		if nested, isObj := v.(map[string]any); isObj {
			m.Semester = TermFromValue(pick.String(nested, TermPaths...))
		} else {
			m.Semester = TermFromValue(v)
		}
	}
	if n, ok := pick.Int(r, StudyDayPaths...); ok {
		m.JumlahHariBelajar = &n
	}
	return m
}

// FromRecords: hanya record yang punya id.
func FromRecords(list []pick.Record) []Metadata {
	out := make([]Metadata, 0, len(list))
	for _, r := range list {
		m := FromRecord(r)
		if m.ID == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (m Metadata) TermLabel() string { return m.Semester.Label() }

// Label: "2024/2025 - Semester Ganjil", opsional diberi " (Aktif)".
func (m Metadata) Label(withActive bool) string {
	parts := make([]string, 0, 2)
	if y := strings.TrimSpace(m.TahunAjaran); y != "" {
		parts = append(parts, y)
	}
	parts = append(parts, m.TermLabel())
	label := strings.Join(parts, " - ")
	if withActive && m.IsActive {
		label += " (Aktif)"
	}
	return label
}

// DateRange: kedua tanggal wajib ada, kalau tidak tampilkan placeholder.
func (m Metadata) DateRange() string {
	if strings.TrimSpace(m.TanggalMulai) == "" || strings.TrimSpace(m.TanggalSelesai) == "" {
		return DatePlaceholder
	}
	return FormatDate(m.TanggalMulai) + " - " + FormatDate(m.TanggalSelesai)
}

// View dipakai response API: metadata + label siap tampil.
type View struct {
	Metadata
	Label     string `json:"label"`
	DateRange string `json:"periode"`
}

func (m Metadata) View() View {
	return View{Metadata: m, Label: m.Label(true), DateRange: m.DateRange()}
}
