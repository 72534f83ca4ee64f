// Package models defines data structures for notebook inspection.
package models

// Cell represents a single notebook cell.
type Cell struct {
	// Index is the cell position in the source document (1-based).
	// It is preserved when cells are filtered out.
	Index int `json:"index" yaml:"index"`
	// Type is the cell_type value (verbose mode only).
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	// ID is the nbformat 4.5 cell id (verbose mode only).
	ID string `json:"id,omitempty" yaml:"id,omitempty"`
	// Source is the cell source exactly as stored in the document.
	Source CellSource `json:"source" yaml:"source"`
}
