// Package output serializes inspection results.
package output

import (
	"bytes"
	"encoding/json"

	"github.com/ganymede-tools/ganymede/pkg/ganymede/models"
)

// ToJSON serializes notebook data to JSON.
func ToJSON(nb *models.NotebookData, pretty bool) ([]byte, error) {
	return marshal(nb, pretty)
}

// CellToJSON serializes a single cell to JSON.
func CellToJSON(cell *models.Cell, pretty bool) ([]byte, error) {
	return marshal(cell, pretty)
}

// SourcesToJSON serializes the cell sources as a JSON array, in order.
func SourcesToJSON(nb *models.NotebookData, pretty bool) ([]byte, error) {
	return marshal(nb.Sources(), pretty)
}

// marshal encodes v without HTML escaping, so '<', '>' and '&' in
// sources are written as they appear in the notebook.
func marshal(v interface{}, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
