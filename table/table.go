// Package table renders query results as left-justified, space padded text columns.
package table

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Padding is the number of spaces added after the widest cell of every column.
const Padding = 2

// Line breaks inside a cell are rendered as spaces so every row stays on one line.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func flatten(cell string) string {
	return lineBreaks.Replace(cell)
}

// Widths returns the display width of every header column: the longest of the header and
// every row cell in that column. Cells past the last header are ignored.
func Widths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))

	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(flatten(h))
	}

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}

			widths[i] = max(widths[i], utf8.RuneCountInString(flatten(cell)))
		}
	}

	return widths
}

// Lines renders the header line followed by one line per row, in input order.
// Short rows only render the cells they have.
func Lines(headers []string, rows [][]string) []string {
	widths := Widths(headers, rows)

	result := make([]string, 0, len(rows)+1)
	result = append(result, renderLine(headers, widths))

	for _, row := range rows {
		result = append(result, renderLine(row, widths))
	}

	return result
}

// Render returns Lines joined with newlines, including a trailing one.
func Render(headers []string, rows [][]string) string {
	return strings.Join(Lines(headers, rows), "\n") + "\n"
}

func renderLine(cells []string, widths []int) string {
	var sb strings.Builder

	for i, cell := range cells {
		if i >= len(widths) {
			break
		}

		fmt.Fprintf(&sb, "%-*s", widths[i]+Padding, flatten(cell))
	}

	return sb.String()
}
