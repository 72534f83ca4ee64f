package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ganymede-tools/ganymede/pkg/ganymede/models"
)

// ParseCellRange parses a cell selection.
// Accepted forms (1-based, inclusive): "N", "N:M", "N:" and ":M".
func ParseCellRange(s string) (*models.CellRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty cell range")
	}

	startStr, endStr, hasColon := strings.Cut(s, ":")
	if !hasColon {
		n, err := parseIndex(startStr)
		if err != nil {
			return nil, fmt.Errorf("cell range %q: %w", s, err)
		}
		return &models.CellRange{Start: n, End: n}, nil
	}

	r := &models.CellRange{Start: 1}
	if startStr = strings.TrimSpace(startStr); startStr != "" {
		n, err := parseIndex(startStr)
		if err != nil {
			return nil, fmt.Errorf("cell range %q: %w", s, err)
		}
		r.Start = n
	}
	if endStr = strings.TrimSpace(endStr); endStr != "" {
		n, err := parseIndex(endStr)
		if err != nil {
			return nil, fmt.Errorf("cell range %q: %w", s, err)
		}
		r.End = n
	}

	if r.End != 0 && r.Start > r.End {
		return nil, fmt.Errorf("cell range %q: start is after end", s)
	}
	return r, nil
}

// parseIndex parses a positive 1-based index.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("index %d out of range (cells start at 1)", n)
	}
	return n, nil
}
