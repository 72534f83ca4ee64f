package models

// NotebookData represents a notebook-level container with its cells.
type NotebookData struct {
	// Name is the notebook file name (no path), or "-" for stdin.
	Name string `json:"name" yaml:"name"`
	// NBFormat is the nbformat major version (verbose mode only).
	NBFormat int `json:"nbformat,omitempty" yaml:"nbformat,omitempty"`
	// NBFormatMinor is the nbformat minor version (verbose mode only).
	NBFormatMinor int `json:"nbformat_minor,omitempty" yaml:"nbformat_minor,omitempty"`
	// Language is the kernel language (verbose mode only).
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	// Cells holds the cells in document order.
	Cells []Cell `json:"cells" yaml:"cells"`
}

// Sources returns the source of every cell, in order.
func (n *NotebookData) Sources() []CellSource {
	sources := make([]CellSource, len(n.Cells))
	for i, c := range n.Cells {
		sources[i] = c.Source
	}
	return sources
}
