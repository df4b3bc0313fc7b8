package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attmodel "sekolahku_dashboard/internals/features/school/attendance/model"
	grademodel "sekolahku_dashboard/internals/features/school/grades/model"
	"sekolahku_dashboard/internals/features/school/reports/model"
	semmodel "sekolahku_dashboard/internals/features/school/semesters/model"
	"sekolahku_dashboard/internals/helpers/pick"
)

func days(n int) *int { return &n }

func TestEnrich_PayloadThenResolvedThenEmbedded(t *testing.T) {
	payload := pick.Record{"tahunAjaran": "2023/2024", "catatanSemester": "  "}
	resolved := &semmodel.Metadata{
		ID: "1", TahunAjaran: "2024/2025", Semester: semmodel.Term{Number: 1},
		TanggalMulai: "2024-07-15",
	}
	embedded := &semmodel.Metadata{
		ID: "9", TanggalSelesai: "2024-12-20", JumlahHariBelajar: days(110), Catatan: "Ada libur",
	}

	out := Enrich(payload, resolved, embedded)
	assert.Equal(t, "2023/2024", out["tahunAjaran"])
	assert.Equal(t, "1", out["semesterId"])
	assert.Equal(t, 1, out["semester"])
	assert.Equal(t, "Semester Ganjil", out["semesterLabel"])
	assert.Equal(t, "2024-07-15", out["tanggalMulai"])
	assert.Equal(t, "2024-12-20", out["tanggalSelesai"])
	assert.Equal(t, 110, out["jumlahHariBelajar"])
	assert.Equal(t, "Ada libur", out["catatanSemester"])
	// periode hanya terisi jika satu sumber punya kedua tanggal
	assert.NotContains(t, out, "periode")

	assert.Len(t, payload, 2)
}

func TestEnrich_NilSources(t *testing.T) {
	out := Enrich(pick.Record{"x": 1}, nil, nil)
	assert.Equal(t, pick.Record{"x": 1}, out)
}

func samplePayload() pick.Record {
	p := NewPayload(Input{
		School:  "SMA Negeri 1",
		Student: StudentInfo{ID: "1", Nama: "Andi Pratama", NISN: "0051234567", KelasName: "X IPA 1"},
		Grades: []grademodel.Grade{
			{ID: "g1", SubjectID: "10", SubjectName: "Matematika", Jenis: grademodel.JenisUTS, Nilai: 90, Tanggal: "2024-09-10"},
			{ID: "g2", SubjectID: "10", SubjectName: "Matematika", Jenis: grademodel.JenisKuis, Nilai: 81},
		},
		Attendance: []attmodel.Attendance{
			{Status: attmodel.StatusHadir}, {Status: attmodel.StatusHadir},
			{Status: attmodel.StatusHadir}, {Status: attmodel.StatusSakit},
		},
	})
	return Enrich(p, &semmodel.Metadata{
		ID: "1", TahunAjaran: "2024/2025", Semester: semmodel.Term{Number: 1},
		TanggalMulai: "2024-07-15", TanggalSelesai: "2024-12-20",
	}, nil)
}

func TestBuildDocument(t *testing.T) {
	doc := BuildDocument(samplePayload())

	assert.Equal(t, "SMA Negeri 1", doc.Subtitle)
	assert.Equal(t, model.Row{Label: "Nama", Value: "Andi Pratama"}, doc.Identity[0])
	assert.Equal(t, model.Row{Label: "Kelas", Value: "X IPA 1"}, doc.Identity[2])

	assert.Equal(t, model.Row{Label: "Semester", Value: "Semester Ganjil"}, doc.Semester[1])
	assert.Equal(t, model.Row{Label: "Periode", Value: "15 Juli 2024 - 20 Desember 2024"}, doc.Semester[2])
	assert.Equal(t, model.Row{Label: "Hari Belajar", Value: "-"}, doc.Semester[3])

	require.Len(t, doc.Tables, 3)
	assert.Equal(t, []string{"1", "Matematika", "UTS", "90", "10 September 2024"}, doc.Tables[0].Rows[0])
	assert.Equal(t, []string{"Matematika", "85.5", "2"}, doc.Tables[1].Rows[0])
	assert.Equal(t, []string{"3", "1", "0", "0", "75%"}, doc.Tables[2].Rows[0])
	assert.Equal(t, "85.5", doc.Summary[0].Value)
}

func TestBuildDocument_EmptyPayload(t *testing.T) {
	doc := BuildDocument(pick.Record{})
	assert.Equal(t, "-", doc.Identity[0].Value)
	assert.Equal(t, "-", doc.Semester[2].Value)
	require.Len(t, doc.Tables, 2)
	assert.Empty(t, doc.Tables[0].Rows)
	assert.Equal(t, []string{"0", "0", "0", "0", "0%"}, doc.Tables[1].Rows[0])
}

func TestPDFPrinter(t *testing.T) {
	out, err := NewPDFPrinter().Print(context.Background(), samplePayload())
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", out.ContentType)
	assert.Equal(t, "rapor-andi-pratama-1.pdf", out.Filename)
	assert.True(t, bytes.HasPrefix(out.Data, []byte("%PDF")))
}

func TestMemoryPrinter(t *testing.T) {
	p := NewMemoryPrinter()
	out, err := p.Print(context.Background(), samplePayload())
	require.NoError(t, err)
	assert.Equal(t, "application/json", out.ContentType)
	assert.Contains(t, string(out.Data), "Laporan Hasil Belajar Siswa")
	require.Len(t, p.Printed(), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Print(ctx, pick.Record{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, p.Printed(), 1)
}
