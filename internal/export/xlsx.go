package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Events"

// XLSX writes a single-sheet workbook: header row, then one row per event.
type XLSX struct{}

func (XLSX) Extension() string { return "xlsx" }

func (XLSX) Encode(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("xlsx export: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("xlsx export: header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx export: %w", err)
		}
		values := []interface{}{r.Index, r.Code, r.Date, r.Time, r.Pattern}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("xlsx export: row %d: %w", r.Index, err)
		}
	}

	if err := f.SetColWidth(sheetName, "E", "E", 60); err != nil {
		return fmt.Errorf("xlsx export: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx export: %w", err)
	}
	return nil
}
