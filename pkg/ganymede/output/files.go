package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ganymede-tools/ganymede/pkg/ganymede/models"
)

// CellFileName returns the per-cell file name for a cell index.
func CellFileName(index int) string {
	return fmt.Sprintf("cell_%04d.json", index)
}

// WriteCellFiles writes one JSON file per cell into dir.
func WriteCellFiles(nb *models.NotebookData, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i := range nb.Cells {
		cell := &nb.Cells[i]
		jsonData, err := CellToJSON(cell, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, CellFileName(cell.Index))
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}
