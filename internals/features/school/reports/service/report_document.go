package service

import (
	"strconv"

	"sekolahku_dashboard/internals/features/school/reports/model"
	semmodel "sekolahku_dashboard/internals/features/school/semesters/model"
	"sekolahku_dashboard/internals/helpers/pick"
)

const placeholder = semmodel.DatePlaceholder

func orDash(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// BuildDocument: fungsi murni payload laporan → deskripsi dokumen.
func BuildDocument(r pick.Record) model.Document {
	doc := model.Document{
		Title:    "Laporan Hasil Belajar Siswa",
		Subtitle: pick.String(r, model.KeySchool),
	}

	doc.Identity = []model.Row{
		{Label: "Nama", Value: orDash(pick.String(r, "student.nama", "student.name", "studentName"))},
		{Label: "NISN", Value: orDash(pick.String(r, "student.nisn", "nisn"))},
		{Label: "Kelas", Value: orDash(pick.String(r, "student.kelasNama", "kelasNama", "kelas"))},
	}

	periode := pick.String(r, model.KeyPeriode)
	if periode == "" {
		periode = semmodel.Metadata{
			TanggalMulai:   pick.String(r, model.KeyTanggalMulai),
			TanggalSelesai: pick.String(r, model.KeyTanggalSelesai),
		}.DateRange()
	}
	semLabel := pick.String(r, model.KeySemesterLabel)
	if semLabel == "" {
		if v, ok := pick.Value(r, model.KeySemester); ok {
			semLabel = semmodel.TermFromValue(v).Label()
		}
	}
	doc.Semester = []model.Row{
		{Label: "Tahun Ajaran", Value: orDash(pick.String(r, model.KeyTahunAjaran))},
		{Label: "Semester", Value: orDash(semLabel)},
		{Label: "Periode", Value: periode},
		{Label: "Hari Belajar", Value: orDash(pick.String(r, model.KeyJumlahHariBelajar))},
	}
	if note := pick.String(r, model.KeyCatatanSemester); note != "" {
		doc.Semester = append(doc.Semester, model.Row{Label: "Catatan", Value: note})
	}

	grades := model.Table{
		Title:   "Nilai",
		Headers: []string{"No", "Mata Pelajaran", "Jenis", "Nilai", "Tanggal"},
		Widths:  []float64{12, 68, 35, 25, 40},
		Rows:    [][]string{},
		Empty:   "Belum ada nilai pada semester ini.",
	}
	for i, g := range pick.Normalize(r[model.KeyGrades]) {
		grades.Rows = append(grades.Rows, []string{
			strconv.Itoa(i + 1),
			orDash(pick.String(g, "subjectName", "mapel", "subjectId")),
			orDash(pick.String(g, "jenis")),
			orDash(pick.String(g, "nilai")),
			semmodel.FormatDate(pick.String(g, "tanggal")),
		})
	}
	doc.Tables = append(doc.Tables, grades)

	if avgs := pick.Normalize(r[model.KeySubjectAverages]); len(avgs) > 0 {
		t := model.Table{
			Title:   "Rata-rata per Mata Pelajaran",
			Headers: []string{"Mata Pelajaran", "Rata-rata", "Jumlah Nilai"},
			Widths:  []float64{100, 40, 40},
			Rows:    [][]string{},
		}
		for _, a := range avgs {
			t.Rows = append(t.Rows, []string{
				orDash(pick.String(a, "subjectName", "subjectId")),
				pick.String(a, "average"),
				pick.String(a, "count"),
			})
		}
		doc.Tables = append(doc.Tables, t)
	}

	att, _ := pick.Object(r, model.KeyAttendance)
	doc.Tables = append(doc.Tables, model.Table{
		Title:   "Kehadiran",
		Headers: []string{"Hadir", "Sakit", "Izin", "Alfa", "Persentase"},
		Widths:  []float64{36, 36, 36, 36, 36},
		Rows: [][]string{{
			countOf(att, "hadir"), countOf(att, "sakit"), countOf(att, "izin"), countOf(att, "alfa"),
			countOf(att, "percentage") + "%",
		}},
	})

	doc.Summary = []model.Row{
		{Label: "Rata-rata Nilai", Value: orDash(pick.String(r, model.KeyAverageGrade))},
	}
	if gen := pick.String(r, model.KeyGeneratedAt); gen != "" {
		doc.Footer = "Dicetak pada " + semmodel.FormatDate(gen)
	}
	return doc
}

func countOf(r pick.Record, key string) string {
	if s := pick.String(r, key); s != "" {
		return s
	}
	return "0"
}
