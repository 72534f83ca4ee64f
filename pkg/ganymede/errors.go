package ganymede

import (
	"errors"
	"fmt"
)

// Exit codes returned by ExitCode.
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitIO     = 2
	ExitParse  = 3
	ExitSchema = 4
)

// IOError indicates the notebook could not be opened or read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cannot read notebook %q: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError indicates the notebook is not well-formed JSON text.
type ParseError struct {
	Path string
	// Offset is the byte offset reported by the JSON decoder (0 if unknown).
	Offset int64
	// Line and Column locate Offset (1-based, 0 if unknown).
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed notebook %q at line %d, column %d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("malformed notebook %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError indicates the notebook lacks the expected cells/source shape.
type SchemaError struct {
	Path string
	// Field is the JSON path of the offending value, e.g. "cells[2].source".
	Field string
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unexpected notebook shape in %q: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var ioErr *IOError
	var parseErr *ParseError
	var schemaErr *SchemaError
	switch {
	case errors.As(err, &ioErr):
		return ExitIO
	case errors.As(err, &parseErr):
		return ExitParse
	case errors.As(err, &schemaErr):
		return ExitSchema
	default:
		return ExitFailed
	}
}
