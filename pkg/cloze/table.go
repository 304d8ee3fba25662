package cloze

import (
	"errors"
	"fmt"
	"strings"
)

// Table renders an HTML table where some cells are replaced by fields the
// student must fill in. Nil cells that are not hidden render as "-".
type Table struct {
	Columns []string
	Rows    []Row
}

type Row struct {
	Cells []any
	// Hidden names the columns whose values are asked for.
	Hidden []string
}

func (t Table) Render() (string, error) {
	if len(t.Columns) == 0 {
		return "", &ValidationError{Field: "columns", Message: "at least one column is required"}
	}
	index := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		index[c] = i
	}

	var b strings.Builder
	b.WriteString("<table><tr>")
	for _, c := range t.Columns {
		b.WriteString("<th>" + escapeText(c) + "</th>")
	}
	b.WriteString("</tr>")
	for ri, row := range t.Rows {
		if len(row.Cells) != len(t.Columns) {
			return "", &ValidationError{
				Field:   fmt.Sprintf("rows[%d]", ri),
				Message: fmt.Sprintf("has %d cells, want %d", len(row.Cells), len(t.Columns)),
			}
		}
		hidden := make(map[int]bool, len(row.Hidden))
		for _, h := range row.Hidden {
			i, ok := index[h]
			if !ok {
				return "", &ValidationError{
					Field:   fmt.Sprintf("rows[%d].hidden", ri),
					Message: fmt.Sprintf("unknown column %q", h),
				}
			}
			hidden[i] = true
		}
		b.WriteString("<tr>\n")
		for ci, cell := range row.Cells {
			b.WriteString("\t<td>")
			s, err := renderCell(cell, hidden[ci])
			if err != nil {
				var uf *UnsupportedFieldError
				if errors.As(err, &uf) {
					uf.Column = t.Columns[ci]
				}
				return "", fmt.Errorf("rows[%d]: %w", ri, err)
			}
			b.WriteString(s)
			b.WriteString("</td>\n")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>")
	return b.String(), nil
}

func renderCell(v any, hidden bool) (string, error) {
	if !hidden {
		if v == nil {
			return "-", nil
		}
		return escapeText(Text(v)), nil
	}
	f, err := FieldFor(v)
	if err != nil {
		return "", err
	}
	return f.Render()
}
