// Package parser provides notebook document parsing utilities.
package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ganymede-tools/ganymede/pkg/ganymede/models"
)

// ErrMalformed indicates the document is not well-formed JSON.
var ErrMalformed = errors.New("malformed notebook json")

// ShapeError reports a well-formed document that lacks the expected
// cells/source structure.
type ShapeError struct {
	// Field is the JSON path of the offending value, e.g. "cells[2].source".
	Field  string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// CellsKey is the root key holding the cell list.
const CellsKey = "cells"

// ParseOptions selects which optional cell attributes are read.
type ParseOptions struct {
	// IncludeMetadata populates cell type, id, nbformat and language.
	IncludeMetadata bool
	// IncludeTypes populates cell type only (used for type filtering).
	IncludeTypes bool
}

// ParseNotebook parses a notebook document.
// It returns an ErrMalformed-wrapped error for syntax problems and a
// *ShapeError when the cells/source structure is missing.
func ParseNotebook(data []byte, opts ParseOptions) (*models.NotebookData, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &ShapeError{Field: "$", Reason: "root must be an object, got " + typeErr.Value}
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if root == nil {
		return nil, &ShapeError{Field: "$", Reason: "root must be an object, got null"}
	}

	cellsRaw, ok := root[CellsKey]
	if !ok {
		return nil, &ShapeError{Field: CellsKey, Reason: "missing key"}
	}
	cells, err := parseCellList(cellsRaw, opts)
	if err != nil {
		return nil, err
	}

	nb := &models.NotebookData{Cells: cells}
	if opts.IncludeMetadata {
		readNotebookMetadata(root, nb)
	}
	return nb, nil
}

func parseCellList(raw json.RawMessage, opts ParseOptions) ([]models.Cell, error) {
	var items []json.RawMessage
	if isNull(raw) || json.Unmarshal(raw, &items) != nil {
		return nil, &ShapeError{Field: CellsKey, Reason: "must be an array"}
	}

	result := make([]models.Cell, 0, len(items))
	for i, item := range items {
		field := fmt.Sprintf("%s[%d]", CellsKey, i)

		var cellMap map[string]json.RawMessage
		if isNull(item) || json.Unmarshal(item, &cellMap) != nil {
			return nil, &ShapeError{Field: field, Reason: "must be an object"}
		}

		source, ok := cellMap["source"]
		if !ok {
			return nil, &ShapeError{Field: field + ".source", Reason: "missing key"}
		}

		cell := models.Cell{
			Index:  i + 1, // 1-based cell index
			Source: models.NewCellSource(source),
		}
		if opts.IncludeMetadata || opts.IncludeTypes {
			cell.Type = optionalString(cellMap, "cell_type")
		}
		if opts.IncludeMetadata {
			cell.ID = optionalString(cellMap, "id")
		}
		result = append(result, cell)
	}

	return result, nil
}

// readNotebookMetadata fills version and language fields.
// Values with an unexpected shape are skipped.
func readNotebookMetadata(root map[string]json.RawMessage, nb *models.NotebookData) {
	nb.NBFormat = optionalInt(root, "nbformat")
	nb.NBFormatMinor = optionalInt(root, "nbformat_minor")

	metaRaw, ok := root["metadata"]
	if !ok {
		return
	}
	var meta struct {
		LanguageInfo struct {
			Name string `json:"name"`
		} `json:"language_info"`
		KernelSpec struct {
			Language string `json:"language"`
		} `json:"kernelspec"`
	}
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		return
	}
	nb.Language = meta.LanguageInfo.Name
	if nb.Language == "" {
		nb.Language = meta.KernelSpec.Language
	}
}

func optionalString(m map[string]json.RawMessage, key string) string {
	raw, ok := m[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func optionalInt(m map[string]json.RawMessage, key string) int {
	raw, ok := m[key]
	if !ok {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	return n
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
