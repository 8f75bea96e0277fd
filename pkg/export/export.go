// Package export writes an already-fetched, already-filtered row set to a
// spreadsheet. It never re-fetches; the controller's current rows are the
// single input.
package export

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx/v3"
)

// Column maps one spreadsheet column onto a row type.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Write renders rows into a single-sheet .xlsx document on w.
func Write[T any](w io.Writer, sheet string, rows []T, cols []Column[T]) error {
	if len(cols) == 0 {
		return fmt.Errorf("export: no columns for sheet %q", sheet)
	}

	file := xlsx.NewFile()
	sh, err := file.AddSheet(sheet)
	if err != nil {
		return fmt.Errorf("export: add sheet: %w", err)
	}

	header := sh.AddRow()
	for _, col := range cols {
		header.AddCell().Value = col.Header
	}

	for _, row := range rows {
		r := sh.AddRow()
		for _, col := range cols {
			r.AddCell().Value = col.Value(row)
		}
	}

	return file.Write(w)
}

// Table renders the same column set as a plain header/rows pair, for
// terminal output.
func Table[T any](rows []T, cols []Column[T]) ([]string, [][]string) {
	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = col.Header
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(cols))
		for j, col := range cols {
			cells[j] = col.Value(row)
		}
		out[i] = cells
	}
	return headers, out
}
