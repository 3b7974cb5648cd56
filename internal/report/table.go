package report

import (
	"strings"
)

// Align is a column alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Table is a plain text table with dynamic column widths. Widths are
// measured on the raw cell text; decorators (colour codes, swatches) are
// applied after padding so they never skew the layout.
type Table struct {
	headers    []string
	rows       [][]string
	padding    int
	align      map[int]Align
	decorators map[int]func(string) string
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:    headers,
		rows:       make([][]string, 0),
		padding:    2,
		align:      make(map[int]Align),
		decorators: make(map[int]func(string) string),
	}
}

// SetAlign sets the alignment of a column.
func (t *Table) SetAlign(col int, a Align) {
	t.align[col] = a
}

// SetDecorator wraps every data cell of a column after it has been padded.
// The function receives the raw cell text and returns the text to print in
// its place; any extra width it adds is not accounted for.
func (t *Table) SetDecorator(col int, fn func(string) string) {
	t.decorators[col] = fn
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	normalised := make([]string, len(t.headers))
	copy(normalised, row)
	t.rows = append(t.rows, normalised)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	gap := strings.Repeat(" ", t.padding)
	var sb strings.Builder

	parts := make([]string, len(t.headers))
	for i, h := range t.headers {
		parts[i] = t.pad(i, h, widths[i])
	}
	sb.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
	sb.WriteString("\n")

	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	sb.WriteString(strings.Join(parts, gap))
	sb.WriteString("\n")

	for _, row := range t.rows {
		for i, cell := range row {
			padded := t.pad(i, cell, widths[i])
			if fn, ok := t.decorators[i]; ok {
				padded = strings.Replace(padded, cell, fn(cell), 1)
			}
			parts[i] = padded
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (t *Table) pad(col int, s string, width int) string {
	if len(s) >= width {
		return s
	}
	fill := strings.Repeat(" ", width-len(s))
	if t.align[col] == AlignRight {
		return fill + s
	}
	return s + fill
}
