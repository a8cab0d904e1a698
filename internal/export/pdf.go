package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// PDF writes an A4 document with the title and one Line per row,
// breaking pages automatically.
type PDF struct{}

func (PDF) Extension() string { return "pdf" }

func (PDF) Encode(w io.Writer, rows []Row) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(Title, true)
	pdf.AddPage()

	// Core fonts are cp1252; translate so accented pattern names survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, Title, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.CellFormat(0, 7, tr(Line(r)), "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf export: %w", err)
	}
	return nil
}
