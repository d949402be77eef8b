// Package csvio decodes uploaded CSV files into cleaned tabular form:
// trimmed cells, normalized headers, blank rows and blank columns dropped.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Table is a decoded CSV file: one header row plus data rows. Rows are
// padded to the header width so positional access never goes out of range.
type Table struct {
	Header []string
	Rows   [][]string
}

// Read decodes a CSV stream into a Table. Blank lines are skipped, rows
// whose every cell is blank are dropped, and columns that carry neither a
// header nor any value are removed.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // scraper exports have ragged rows
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decoding csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv is empty")
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = CleanHeader(h)
	}

	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]string, len(header))
		empty := true
		for i := range header {
			if i < len(record) {
				row[i] = CleanCell(record[i])
			}
			if row[i] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}

	return dropBlankColumns(&Table{Header: header, Rows: rows}), nil
}

// dropBlankColumns removes columns with no header and no values.
func dropBlankColumns(t *Table) *Table {
	keep := make([]int, 0, len(t.Header))
	for i, h := range t.Header {
		if h != "" {
			keep = append(keep, i)
			continue
		}
		for _, row := range t.Rows {
			if row[i] != "" {
				keep = append(keep, i)
				break
			}
		}
	}
	if len(keep) == len(t.Header) {
		return t
	}

	header := make([]string, len(keep))
	for j, i := range keep {
		header[j] = t.Header[i]
	}
	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		projected := make([]string, len(keep))
		for j, i := range keep {
			projected[j] = row[i]
		}
		rows[r] = projected
	}
	return &Table{Header: header, Rows: rows}
}

// Index returns a column-name to position map for the header.
func (t *Table) Index() map[string]int {
	idx := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		idx[h] = i
	}
	return idx
}

// CleanHeader normalizes a header cell: strips the UTF-8 BOM, Excel's
// formula-literal wrapper (="value"), and surrounding whitespace. Case is
// preserved; the scraper's camelCase names are meaningful.
func CleanHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.TrimSpace(h)
	if strings.HasPrefix(h, `="`) && strings.HasSuffix(h, `"`) && len(h) > 3 {
		h = h[2 : len(h)-1]
	}
	return strings.TrimSpace(h)
}

// CleanCell trims a data cell; whitespace-only cells become empty.
func CleanCell(c string) string {
	return strings.TrimSpace(c)
}
