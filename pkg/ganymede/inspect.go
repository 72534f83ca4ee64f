package ganymede

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/ganymede-tools/ganymede/pkg/ganymede/models"
	"github.com/ganymede-tools/ganymede/pkg/ganymede/parser"
)

// StdinName is the notebook name used for standard input.
const StdinName = "-"

// Inspect loads a notebook file and returns its cells in document order.
// Each cell's Source is the source value exactly as stored in the file.
func Inspect(path string, opts Options) (*models.NotebookData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	nb, err := inspect(f, path, opts)
	if err != nil {
		return nil, err
	}
	nb.Name = filepath.Base(path)
	return nb, nil
}

// InspectReader inspects a notebook read from r.
// The name is used in errors and as the notebook name.
func InspectReader(r io.Reader, name string, opts Options) (*models.NotebookData, error) {
	nb, err := inspect(r, name, opts)
	if err != nil {
		return nil, err
	}
	nb.Name = name
	return nb, nil
}

func inspect(r io.Reader, name string, opts Options) (*models.NotebookData, error) {
	data, err := parser.ReadText(r)
	if err != nil {
		if errors.Is(err, parser.ErrInvalidText) {
			return nil, &ParseError{Path: name, Err: err}
		}
		return nil, &IOError{Path: name, Err: err}
	}

	nb, err := parser.ParseNotebook(data, parser.ParseOptions{
		IncludeMetadata: opts.ShouldIncludeMetadata(),
		IncludeTypes:    len(opts.CellTypes) > 0,
	})
	if err != nil {
		return nil, classifyParseError(name, data, err)
	}

	if opts.Range != nil || len(opts.CellTypes) > 0 {
		kept := nb.Cells[:0]
		for _, c := range nb.Cells {
			if opts.keepCell(c) {
				kept = append(kept, c)
			}
		}
		nb.Cells = kept
	}

	// Types were read for filtering only.
	if !opts.ShouldIncludeMetadata() {
		for i := range nb.Cells {
			nb.Cells[i].Type = ""
		}
	}

	return nb, nil
}

func classifyParseError(name string, data []byte, err error) error {
	var shapeErr *parser.ShapeError
	if errors.As(err, &shapeErr) {
		return &SchemaError{Path: name, Field: shapeErr.Field, Err: err}
	}

	parseErr := &ParseError{Path: name, Err: err}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		parseErr.Offset = syntaxErr.Offset
		parseErr.Line, parseErr.Column = position(data, syntaxErr.Offset)
	}
	return parseErr
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, column int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line = bytes.Count(prefix, []byte("\n")) + 1
	column = int(offset) - (bytes.LastIndexByte(prefix, '\n') + 1)
	if column == 0 {
		column = 1
	}
	return line, column
}
