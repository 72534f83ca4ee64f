package ganymede

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ganymede-tools/ganymede/pkg/ganymede/models"
)

const sampleNotebook = `{
 "cells": [
  {"cell_type": "markdown", "id": "intro", "metadata": {}, "source": ["# Model\n", "Trains a regressor."]},
  {"cell_type": "code", "id": "load", "execution_count": 1, "metadata": {}, "outputs": [], "source": "import pandas as pd\n"},
  {"cell_type": "code", "id": "fit", "execution_count": 2, "metadata": {}, "outputs": [], "source": ["model.fit(X, y)\n", "model.score(X, y)"]},
  {"cell_type": "raw", "id": "notes", "metadata": {}, "source": ""}
 ],
 "metadata": {"language_info": {"name": "python"}},
 "nbformat": 4,
 "nbformat_minor": 5
}`

func writeNotebook(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ipynb")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func sourceValues(t *testing.T, nb *models.NotebookData) []interface{} {
	t.Helper()
	values := make([]interface{}, 0, len(nb.Cells))
	for _, s := range nb.Sources() {
		v, err := s.Value()
		require.NoError(t, err)
		values = append(values, v)
	}
	return values
}

func TestInspectEndToEnd(t *testing.T) {
	path := writeNotebook(t, `{"cells": [{"source": "print(1)"}, {"source": ["a", "b"]}]}`)

	nb, err := Inspect(path, DefaultOptions())
	require.NoError(t, err)

	expected := []interface{}{"print(1)", []interface{}{"a", "b"}}
	if diff := cmp.Diff(expected, sourceValues(t, nb)); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "test.ipynb", nb.Name)
}

func TestInspectPreservesOrderAndCount(t *testing.T) {
	path := writeNotebook(t, sampleNotebook)

	nb, err := Inspect(path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, nb.Cells, 4)

	for i, c := range nb.Cells {
		assert.Equal(t, i+1, c.Index)
		assert.Empty(t, c.Type, "source mode must not report cell types")
		assert.Empty(t, c.ID)
	}

	expected := []interface{}{
		[]interface{}{"# Model\n", "Trains a regressor."},
		"import pandas as pd\n",
		[]interface{}{"model.fit(X, y)\n", "model.score(X, y)"},
		"",
	}
	if diff := cmp.Diff(expected, sourceValues(t, nb)); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}
	assert.Zero(t, nb.NBFormat)
	assert.Empty(t, nb.Language)
}

func TestInspectStringSourceUnchanged(t *testing.T) {
	path := writeNotebook(t, `{"cells": [{"source": "  x = 1\t\n\n"}]}`)

	nb, err := Inspect(path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, nb.Cells, 1)

	assert.Equal(t, "  x = 1\t\n\n", nb.Cells[0].Source.Text())
	assert.Equal(t, `"  x = 1\t\n\n"`, string(nb.Cells[0].Source.Raw()))
}

func TestInspectVerbose(t *testing.T) {
	path := writeNotebook(t, sampleNotebook)

	nb, err := Inspect(path, Options{Mode: ModeVerbose})
	require.NoError(t, err)

	assert.Equal(t, 4, nb.NBFormat)
	assert.Equal(t, 5, nb.NBFormatMinor)
	assert.Equal(t, "python", nb.Language)

	types := make([]string, len(nb.Cells))
	ids := make([]string, len(nb.Cells))
	for i, c := range nb.Cells {
		types[i] = c.Type
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"markdown", "code", "code", "raw"}, types)
	assert.Equal(t, []string{"intro", "load", "fit", "notes"}, ids)
}

func TestInspectFilters(t *testing.T) {
	path := writeNotebook(t, sampleNotebook)

	tests := []struct {
		name    string
		opts    Options
		indexes []int
	}{
		{"code cells", Options{CellTypes: []string{"code"}}, []int{2, 3}},
		{"markdown and raw", Options{CellTypes: []string{"markdown", "raw"}}, []int{1, 4}},
		{"range", Options{Range: &models.CellRange{Start: 2, End: 3}}, []int{2, 3}},
		{"open range", Options{Range: &models.CellRange{Start: 3}}, []int{3, 4}},
		{"range and type", Options{Range: &models.CellRange{Start: 3}, CellTypes: []string{"code"}}, []int{3}},
		{"unknown type", Options{CellTypes: []string{"heading"}}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nb, err := Inspect(path, tt.opts)
			require.NoError(t, err)

			indexes := make([]int, 0, len(nb.Cells))
			for _, c := range nb.Cells {
				indexes = append(indexes, c.Index)
				assert.Empty(t, c.Type, "types are read for filtering only")
			}
			assert.Equal(t, tt.indexes, indexes)
		})
	}
}

func TestInspectMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.ipynb")

	nb, err := Inspect(path, DefaultOptions())
	assert.Nil(t, nb)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, path, ioErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, ExitIO, ExitCode(err))
}

func TestInspectDirectory(t *testing.T) {
	nb, err := Inspect(t.TempDir(), DefaultOptions())
	assert.Nil(t, nb)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
}

func TestInspectTruncatedJSON(t *testing.T) {
	path := writeNotebook(t, `{"cells": [`)

	nb, err := Inspect(path, DefaultOptions())
	assert.Nil(t, nb)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, int64(11), parseErr.Offset)
	assert.Equal(t, 1, parseErr.Line)
	assert.Equal(t, ExitParse, ExitCode(err))
}

func TestInspectParseErrorPosition(t *testing.T) {
	path := writeNotebook(t, "{\n  \"cells\": [\n    {\"source\": x}\n  ]\n}")

	_, err := Inspect(path, DefaultOptions())

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 3, parseErr.Line)
	assert.Equal(t, 16, parseErr.Column)
	assert.Contains(t, err.Error(), "line 3, column 16")
}

func TestInspectInvalidText(t *testing.T) {
	path := writeNotebook(t, "{\"cells\": [{\"source\": \"\xff\"}]}")

	_, err := Inspect(path, DefaultOptions())

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, ExitParse, ExitCode(err))
}

func TestInspectByteOrderMark(t *testing.T) {
	path := writeNotebook(t, "\xEF\xBB\xBF"+`{"cells": [{"source": "ok"}]}`)

	nb, err := Inspect(path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, nb.Cells, 1)
	assert.Equal(t, "ok", nb.Cells[0].Source.Text())
}

func TestInspectSchemaErrors(t *testing.T) {
	tests := []struct {
		content string
		field   string
	}{
		{`{}`, "cells"},
		{`[1, 2]`, "$"},
		{`{"cells": "none"}`, "cells"},
		{`{"cells": [{"source": "a"}, {"outputs": []}]}`, "cells[1].source"},
	}

	for _, tt := range tests {
		path := writeNotebook(t, tt.content)

		nb, err := Inspect(path, DefaultOptions())
		assert.Nil(t, nb)

		var schemaErr *SchemaError
		if assert.ErrorAs(t, err, &schemaErr, "content %s", tt.content) {
			assert.Equal(t, tt.field, schemaErr.Field)
		}
		assert.Equal(t, ExitSchema, ExitCode(err))
	}
}

func TestInspectReader(t *testing.T) {
	nb, err := InspectReader(strings.NewReader(`{"cells": [{"source": "a"}]}`), StdinName, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, StdinName, nb.Name)
	require.Len(t, nb.Cells, 1)

	_, err = InspectReader(strings.NewReader(`{}`), StdinName, DefaultOptions())
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, StdinName, schemaErr.Path)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitFailed, ExitCode(errors.New("boom")))
	assert.Equal(t, ExitIO, ExitCode(&IOError{Path: "x", Err: fs.ErrPermission}))
	assert.Equal(t, ExitSchema, ExitCode(errors.Join(errors.New("ctx"), &SchemaError{Err: errors.New("x")})))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("verbose")
	require.NoError(t, err)
	assert.Equal(t, ModeVerbose, m)

	_, err = ParseMode("standard")
	assert.Error(t, err)
}
