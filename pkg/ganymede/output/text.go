package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"

	"github.com/ganymede-tools/ganymede/pkg/ganymede/models"
)

// TextOptions configures plain text output.
type TextOptions struct {
	// Header is printed on the first line when non-empty.
	Header string
	// Render passes markdown cells through a terminal markdown renderer.
	// Cell types are only known in verbose mode.
	Render bool
	// WordWrap is the render width (default 80).
	WordWrap int
}

// WriteText prints each cell source on its own, in order.
// A string source prints unchanged; any other value prints as compact JSON.
func WriteText(w io.Writer, nb *models.NotebookData, opts TextOptions) error {
	if opts.Header != "" {
		if _, err := fmt.Fprintln(w, opts.Header); err != nil {
			return err
		}
	}

	var renderer *glamour.TermRenderer
	if opts.Render {
		wrap := opts.WordWrap
		if wrap <= 0 {
			wrap = 80
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("notty"),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return fmt.Errorf("markdown renderer: %w", err)
		}
		renderer = r
	}

	for _, cell := range nb.Cells {
		text, err := cellText(cell, renderer)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}

func cellText(cell models.Cell, renderer *glamour.TermRenderer) (string, error) {
	if renderer != nil && cell.Type == "markdown" {
		out, err := renderer.Render(cell.Source.Text())
		if err != nil {
			return "", fmt.Errorf("render cell %d: %w", cell.Index, err)
		}
		return out, nil
	}

	if cell.Source.IsText() {
		return cell.Source.Text(), nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, cell.Source.Raw()); err != nil {
		return string(cell.Source.Raw()), nil
	}
	return buf.String(), nil
}
