package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/jung-kurt/gofpdf"

	"sekolahku_dashboard/internals/features/school/reports/model"
	"sekolahku_dashboard/internals/helpers/pick"
)

// Printer: sink cetak laporan. Menerima payload datar yang sudah di-enrich.
type Printer interface {
	Print(ctx context.Context, report pick.Record) (*model.Output, error)
}

func reportFilename(r pick.Record, ext string) string {
	name := pick.FirstNonEmpty(pick.String(r, "student.nama", "student.name"), "siswa")
	name = strings.ToLower(strings.Join(strings.Fields(name), "-"))
	if sem := pick.String(r, model.KeySemesterID); sem != "" {
		return fmt.Sprintf("rapor-%s-%s.%s", name, sem, ext)
	}
	return fmt.Sprintf("rapor-%s.%s", name, ext)
}

/* =========================================================
   PDFPrinter (gofpdf)
========================================================= */

type PDFPrinter struct{}

func NewPDFPrinter() *PDFPrinter { return &PDFPrinter{} }

func (p *PDFPrinter) Print(ctx context.Context, report pick.Record) (*model.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := RenderPDF(BuildDocument(report))
	if err != nil {
		return nil, err
	}
	return &model.Output{
		Filename:    reportFilename(report, "pdf"),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

// RenderPDF menggambar Document ke A4 portrait.
func RenderPDF(doc model.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 9, tr(doc.Title), "", 1, "C", false, 0, "")
	if doc.Subtitle != "" {
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 6, tr(doc.Subtitle), "", 1, "C", false, 0, "")
	}
	pdf.SetDrawColor(40, 145, 108)
	pdf.SetLineWidth(0.5)
	pdf.Line(15, pdf.GetY()+2, 195, pdf.GetY()+2)
	pdf.Ln(6)

	rows := func(title string, list []model.Row) {
		if len(list) == 0 {
			return
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, tr(title))
		pdf.Ln(6)
		for _, r := range list {
			pdf.SetFont("Arial", "", 10)
			pdf.Cell(40, 6, tr(r.Label+":"))
			pdf.SetFont("Arial", "B", 10)
			pdf.Cell(0, 6, tr(r.Value))
			pdf.Ln(5)
		}
		pdf.Ln(4)
	}
	rows("IDENTITAS SISWA", doc.Identity)
	rows("SEMESTER", doc.Semester)

	for _, t := range doc.Tables {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, tr(strings.ToUpper(t.Title)))
		pdf.Ln(7)

		widths := t.Widths
		if len(widths) != len(t.Headers) {
			widths = make([]float64, len(t.Headers))
			for i := range widths {
				widths[i] = 180 / float64(len(t.Headers))
			}
		}

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(40, 145, 108)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range t.Headers {
			ln := 0
			if i == len(t.Headers)-1 {
				ln = 1
			}
			pdf.CellFormat(widths[i], 8, tr(h), "1", ln, "C", true, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)

		pdf.SetFont("Arial", "", 9)
		pdf.SetFillColor(245, 245, 245)
		if len(t.Rows) == 0 && t.Empty != "" {
			pdf.SetFont("Arial", "I", 9)
			pdf.CellFormat(0, 7, tr(t.Empty), "1", 1, "C", false, 0, "")
		}
		for n, row := range t.Rows {
			fill := n%2 == 0
			for i := range t.Headers {
				cell := ""
				if i < len(row) {
					cell = row[i]
				}
				ln := 0
				if i == len(t.Headers)-1 {
					ln = 1
				}
				align := "C"
				if i == 1 && len(t.Headers) > 3 {
					align = "L"
				}
				pdf.CellFormat(widths[i], 7, tr(cell), "1", ln, align, fill, 0, "")
			}
		}
		pdf.Ln(5)
	}

	rows("RINGKASAN", doc.Summary)

	if doc.Footer != "" {
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(100, 100, 100)
		pdf.Cell(0, 5, tr(doc.Footer))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

/* =========================================================
   MemoryPrinter: menyimpan dokumen (JSON) untuk preview & test
========================================================= */

type MemoryPrinter struct {
	mu      sync.Mutex
	reports []pick.Record
}

func NewMemoryPrinter() *MemoryPrinter { return &MemoryPrinter{} }

func (p *MemoryPrinter) Print(ctx context.Context, report pick.Record) (*model.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := sonic.Marshal(BuildDocument(report))
	if err != nil {
		return nil, fmt.Errorf("encode dokumen: %w", err)
	}
	p.mu.Lock()
	p.reports = append(p.reports, report)
	p.mu.Unlock()
	return &model.Output{
		Filename:    reportFilename(report, "json"),
		ContentType: "application/json",
		Data:        data,
	}, nil
}

// Printed mengembalikan salinan payload yang sudah dicetak.
func (p *MemoryPrinter) Printed() []pick.Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]pick.Record, len(p.reports))
	copy(out, p.reports)
	return out
}
