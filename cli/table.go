package cli

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// table renders left-aligned columns. Widths are measured on the plain cell
// text so that styling does not shift the alignment.
type table struct {
	header []string
	rows   [][]string
}

func newTable(header ...string) *table {
	return &table{header: header}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) widths() []int {
	widths := make([]int, len(t.header))
	for i, h := range t.header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}
	return widths
}

// render writes the table. header styles the header cells and cell styles a
// body cell given its column.
func (t *table) render(w io.Writer, header func(string) string, cell func(col int, text string) string) {
	widths := t.widths()

	writeRow := func(cells []string, style func(col int, text string) string) {
		var line strings.Builder
		for i, c := range cells {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				line.WriteString("  ")
			}
			text := style(i, c)
			line.WriteString(text)
			if i < len(cells)-1 {
				line.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(c)))
			}
		}
		line.WriteByte('\n')
		_, _ = io.WriteString(w, line.String())
	}

	writeRow(t.header, func(_ int, text string) string { return header(text) })
	for _, row := range t.rows {
		writeRow(row, cell)
	}
}
