package table_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dasdy/pizzastore/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestWidths(t *testing.T) {
	t.Run("header drives width when cells are shorter", func(t *testing.T) {
		widths := table.Widths([]string{"description"}, [][]string{{"ok"}})

		assert.Equal(t, []int{11}, widths)
	})

	t.Run("longest cell drives width", func(t *testing.T) {
		widths := table.Widths(
			[]string{"name", "price"},
			[][]string{{"Margherita", "9.50"}, {"Pepperoni", "11"}})

		assert.Equal(t, []int{10, 5}, widths)
	})

	t.Run("cells past the headers are ignored", func(t *testing.T) {
		widths := table.Widths([]string{"a"}, [][]string{{"b", "very long extra cell"}})

		assert.Equal(t, []int{1}, widths)
	})
}

func TestRender(t *testing.T) {
	headers := []string{"name", "price"}
	rows := [][]string{{"Margherita", "9.50"}, {"Pepperoni", "11"}}

	t.Run("renders the pizza menu", func(t *testing.T) {
		out := table.Render(headers, rows)

		assert.Equal(t,
			"name        price  \n"+
				"Margherita  9.50   \n"+
				"Pepperoni   11     \n",
			out)
	})

	t.Run("produces one line per row plus the header", func(t *testing.T) {
		cases := [][][]string{
			nil,
			{{"a"}},
			{{"a", "b"}, {"c"}, {}},
			rows,
		}

		for _, r := range cases {
			lines := splitLines(table.Render(headers, r))
			assert.Len(t, lines, 1+len(r))
		}
	})

	t.Run("pads every column to its width plus two", func(t *testing.T) {
		widths := table.Widths(headers, rows)
		lines := table.Lines(headers, rows)

		all := append([][]string{headers}, rows...)
		for n, line := range lines {
			offset := 0
			for i, cell := range all[n] {
				segment := []rune(line)[offset : offset+widths[i]+table.Padding]
				assert.Equal(t, cell, strings.TrimRight(string(segment), " "))
				offset += widths[i] + table.Padding
			}
			assert.Equal(t, offset, utf8.RuneCountInString(line))
		}
	})

	t.Run("is a pure function", func(t *testing.T) {
		assert.Equal(t, table.Render(headers, rows), table.Render(headers, rows))
	})

	t.Run("keeps input order", func(t *testing.T) {
		lines := table.Lines([]string{"n"}, [][]string{{"z"}, {"a"}, {"m"}})

		require.Len(t, lines, 4)
		assert.Equal(t, []string{"n  ", "z  ", "a  ", "m  "}, lines)
	})

	t.Run("short rows render only present cells", func(t *testing.T) {
		lines := table.Lines(headers, [][]string{{"Calzone"}, {}})

		assert.Equal(t, []string{"name     price  ", "Calzone  ", ""}, lines)
	})

	t.Run("empty rows yield the header line only", func(t *testing.T) {
		assert.Equal(t, "name  price  \n", table.Render(headers, nil))
	})

	t.Run("empty headers yield one blank line", func(t *testing.T) {
		out := table.Render(nil, [][]string{})

		assert.Equal(t, "\n", out)
		assert.Len(t, splitLines(out), 1)
	})

	t.Run("counts runes rather than bytes", func(t *testing.T) {
		lines := table.Lines([]string{"item"}, [][]string{{"Crème"}})

		assert.Equal(t, "Crème  ", lines[1])
		assert.Equal(t, "item   ", lines[0])
	})

	t.Run("line breaks inside cells stay on one line", func(t *testing.T) {
		out := table.Render(
			[]string{"name", "description"},
			[][]string{{"Soda", "thin\ncrust"}, {"Knots", "a\r\nb"}},
		)

		lines := splitLines(out)
		require.Len(t, lines, 3)
		assert.Equal(t, "Soda   thin crust   ", lines[1])
		assert.Equal(t, "Knots  a b          ", lines[2])
	})
}
