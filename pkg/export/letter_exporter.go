package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// LetterField is one labelled line in a letter body.
type LetterField struct {
	Label string
	Value string
}

// Letter describes a single-page official document.
type Letter struct {
	Heading    []string
	Title      string
	Fields     []LetterField
	Paragraphs []string
	Footer     string
}

// LetterExporter renders Letter documents as PDF bytes.
type LetterExporter struct{}

// NewLetterExporter constructs a letter exporter.
func NewLetterExporter() *LetterExporter {
	return &LetterExporter{}
}

// Render produces the PDF for a letter.
func (e *LetterExporter) Render(letter Letter) ([]byte, error) {
	if letter.Title == "" {
		return nil, fmt.Errorf("letter requires a title")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	for _, line := range letter.Heading {
		pdf.CellFormat(0, 8, line, "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "B", 12)
	}
	pdf.Ln(2)
	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 9, letter.Title, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	for _, field := range letter.Fields {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(55, 8, field.Label, "", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 8, field.Value, "", "", false)
	}

	if len(letter.Paragraphs) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "", 11)
		for _, para := range letter.Paragraphs {
			pdf.MultiCell(0, 6, para, "", "", false)
			pdf.Ln(3)
		}
	}

	if letter.Footer != "" {
		pdf.Ln(8)
		pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, letter.Footer, "", "C", false)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render letter pdf: %w", err)
	}
	return buf.Bytes(), nil
}
