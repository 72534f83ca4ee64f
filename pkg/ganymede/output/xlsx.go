package output

import (
	"fmt"
	"io"
	"unicode/utf16"

	"github.com/xuri/excelize/v2"

	"github.com/ganymede-tools/ganymede/pkg/ganymede/models"
)

// CellsSheet is the worksheet holding one row per cell.
const CellsSheet = "cells"

var xlsxHeader = []interface{}{"index", "type", "id", "source"}

// WriteXLSX writes the cells as a workbook with a single "cells" sheet.
// Row 1 is a header; each following row holds index, type, id and the
// cell text (string sources and fragment lists as text, anything else as JSON).
// A source longer than excelize.TotalCellChars UTF-16 units is an error,
// since a worksheet cell cannot hold it.
func WriteXLSX(w io.Writer, nb *models.NotebookData) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1".
	if err := f.SetSheetName(f.GetSheetName(0), CellsSheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(CellsSheet, "A1", &xlsxHeader); err != nil {
		return err
	}

	for i, cell := range nb.Cells {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		text := cell.Source.Text()
		if n := utf16Len(text); n > excelize.TotalCellChars {
			return fmt.Errorf("cell %d: source is %d UTF-16 units long, xlsx cells hold at most %d",
				cell.Index, n, excelize.TotalCellChars)
		}
		row := []interface{}{cell.Index, cell.Type, cell.ID, text}
		if err := f.SetSheetRow(CellsSheet, cellName, &row); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

// utf16Len counts s the way worksheet cell limits are measured.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
