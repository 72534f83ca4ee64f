// Package ganymede provides Jupyter notebook inspection functionality.
package ganymede

import (
	"fmt"

	"github.com/ganymede-tools/ganymede/pkg/ganymede/models"
)

// Mode represents the inspection mode.
type Mode string

const (
	// ModeSource emits each cell's index and source only.
	ModeSource Mode = "source"
	// ModeVerbose also reports cell type, cell id, nbformat version and kernel language.
	ModeVerbose Mode = "verbose"
)

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSource, ModeVerbose:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid mode: %s (must be source or verbose)", s)
	}
}

// Options configures inspection behavior.
type Options struct {
	// Mode specifies the inspection mode (source, verbose).
	Mode Mode
	// CellTypes keeps only cells whose cell_type is listed. Empty keeps all cells.
	CellTypes []string
	// Range keeps only cells whose index falls inside it. Nil keeps all cells.
	Range *models.CellRange
}

// DefaultOptions returns default inspection options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeSource,
	}
}

// ShouldIncludeMetadata returns whether cell and notebook metadata is reported.
func (o Options) ShouldIncludeMetadata() bool {
	return o.Mode == ModeVerbose
}

// keepCell reports whether a cell passes the type and range filters.
func (o Options) keepCell(c models.Cell) bool {
	if o.Range != nil && !o.Range.Contains(c.Index) {
		return false
	}
	if len(o.CellTypes) == 0 {
		return true
	}
	for _, t := range o.CellTypes {
		if t == c.Type {
			return true
		}
	}
	return false
}
