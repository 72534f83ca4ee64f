package models

import "fmt"

// CellRange represents inclusive cell index bounds.
type CellRange struct {
	// Start is the first cell index (1-based).
	Start int `json:"start"`
	// End is the last cell index (1-based, inclusive). Zero means no upper bound.
	End int `json:"end,omitempty"`
}

// Contains reports whether the 1-based index falls inside the range.
func (r CellRange) Contains(index int) bool {
	if index < r.Start {
		return false
	}
	return r.End == 0 || index <= r.End
}

func (r CellRange) String() string {
	if r.End == 0 {
		return fmt.Sprintf("%d:", r.Start)
	}
	return fmt.Sprintf("%d:%d", r.Start, r.End)
}
