package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/goliatone/go-surveyform/pkg/engine"
)

// PDFOptions parameterises the generated summary document.
type PDFOptions struct {
	// Reference is the submission identifier printed under the title.
	Reference string
	// GeneratedAt stamps the document; the zero value falls back to now.
	GeneratedAt time.Time
}

// PDF renders the record as a printable A4 summary: title, timestamp and
// reference, then every tuple grouped by section with record markers for
// repeated groups.
func PDF(rec engine.Record, opts PDFOptions) ([]byte, error) {
	generated := opts.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 20)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.MultiCell(0, 8, tr(rec.Title+" - Summary Report"), "", "L", false)
	doc.Ln(2)

	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 5, tr(fmt.Sprintf("Generated: %s", generated.Format("2006-01-02 15:04"))), "", 1, "L", false, 0, "")
	if opts.Reference != "" {
		doc.CellFormat(0, 5, tr(fmt.Sprintf("Reference: %s", opts.Reference)), "", 1, "L", false, 0, "")
	}
	doc.Ln(4)

	section := ""
	record := 0
	for _, t := range rec.Tuples {
		if t.Section != section {
			section = t.Section
			record = 0
			doc.Ln(2)
			doc.SetFont("Helvetica", "B", 12)
			doc.CellFormat(0, 7, tr(section), "", 1, "L", false, 0, "")
			x, y := doc.GetXY()
			doc.Line(x, y, 200, y)
			doc.Ln(2)
			doc.SetFont("Helvetica", "", 9)
		}
		if t.Record != record {
			record = t.Record
			if record > 1 {
				doc.SetFont("Helvetica", "I", 9)
				doc.CellFormat(0, 5, tr(fmt.Sprintf("Record #%d", record)), "", 1, "L", false, 0, "")
				doc.SetFont("Helvetica", "", 9)
			}
		}
		value := t.Value
		if value == "" {
			value = "(not provided)"
		}
		doc.MultiCell(0, 5, tr(fmt.Sprintf("  %s: %s", t.FieldKey, value)), "", "L", false)
	}

	doc.Ln(6)
	x, y := doc.GetXY()
	doc.Line(x, y, 200, y)
	doc.Ln(2)
	doc.SetFont("Helvetica", "I", 8)
	doc.CellFormat(0, 4, tr("This document was generated automatically from survey responses."), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 4, tr(fmt.Sprintf("Generated on: %s", generated.Format("2006-01-02 at 15:04"))), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
