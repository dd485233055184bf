package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Cell is one table cell: its text plus the style applied to the text
// (never to the padding, so alignment survives styling). A nil style
// renders plain.
type Cell struct {
	Text  string
	Style *color.Color
}

// Table renders rows into a column-aligned, word-wrapped text table.
// Cells wrap to new lines instead of truncating; every column of every
// visual line occupies exactly its configured width.
type Table struct {
	Headers []string
	Widths  []int
	Styles  *Styles
}

// Wrap word-wraps text to width, greedily packing words and
// hard-splitting words longer than the column. An empty cell yields
// exactly one empty line, never zero.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		wl := utf8.RuneCountInString(word)
		cl := utf8.RuneCountInString(current)
		switch {
		case current == "" && wl <= width:
			current = word
		case current != "" && cl+1+wl <= width:
			current += " " + word
		default:
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			r := []rune(word)
			for len(r) > width {
				lines = append(lines, string(r[:width]))
				r = r[width:]
			}
			current = string(r)
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// Render writes the table: header, separator rule, then each row
// line-by-line with a rule after it. The row's rendered height is the
// maximum wrapped line count across its cells; shorter cells pad with
// blanks so neighbors stay vertically synchronized.
func (t *Table) Render(w io.Writer, rows [][]Cell) {
	styles := t.Styles
	if styles == nil {
		styles = NewStyles(false)
	}

	total := 0
	for _, cw := range t.Widths {
		total += cw
	}
	rule := strings.Repeat("-", total+3*(len(t.Widths)-1))

	padded := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		padded[i] = h + strings.Repeat(" ", t.Widths[i]-utf8.RuneCountInString(h))
	}
	fmt.Fprintf(w, "\n %s\n", styles.Bold.Sprint(strings.Join(padded, " | ")))
	fmt.Fprintln(w, " "+rule)

	for _, row := range rows {
		wrapped := make([][]string, len(row))
		height := 0
		for i, cell := range row {
			wrapped[i] = Wrap(cell.Text, t.Widths[i])
			if len(wrapped[i]) > height {
				height = len(wrapped[i])
			}
		}

		for line := 0; line < height; line++ {
			fmt.Fprint(w, " ")
			for i := range row {
				content := ""
				if line < len(wrapped[i]) {
					content = wrapped[i][line]
				}
				style := row[i].Style
				if style == nil {
					style = styles.Plain
				}
				padding := strings.Repeat(" ", t.Widths[i]-utf8.RuneCountInString(content))
				fmt.Fprint(w, style.Sprint(content)+padding)
				if i < len(row)-1 {
					fmt.Fprint(w, " "+styles.Grey.Sprint("|")+" ")
				}
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, styles.Grey.Sprint(" "+rule))
	}
}
