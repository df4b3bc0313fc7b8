// file: internals/features/school/reports/model/report_model.go
package model

// Row: satu baris label : nilai (identitas, blok semester).
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Table struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Widths  []float64  `json:"-"`
	Rows    [][]string `json:"rows"`
	Empty   string     `json:"empty,omitempty"`
}

// Document: deskripsi dokumen cetak, lepas dari format output.
type Document struct {
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle,omitempty"`
	Identity []Row   `json:"identity"`
	Semester []Row   `json:"semester"`
	Tables   []Table `json:"tables"`
	Summary  []Row   `json:"summary"`
	Footer   string  `json:"footer,omitempty"`
}

// Output: hasil cetak dari Printer.
type Output struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"-"`
}

// Key payload laporan datar yang dibaca BuildDocument.
const (
	KeySchool            = "sekolah"
	KeyStudent           = "student"
	KeyGrades            = "grades"
	KeySubjectAverages   = "subjectAverages"
	KeyAttendance        = "attendance"
	KeyAverageGrade      = "averageGrade"
	KeySemesterID        = "semesterId"
	KeyTahunAjaran       = "tahunAjaran"
	KeySemester          = "semester"
	KeySemesterLabel     = "semesterLabel"
	KeyPeriode           = "periode"
	KeyTanggalMulai      = "tanggalMulai"
	KeyTanggalSelesai    = "tanggalSelesai"
	KeyJumlahHariBelajar = "jumlahHariBelajar"
	KeyCatatanSemester   = "catatanSemester"
	KeyGeneratedAt       = "generatedAt"
)
