package render

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapReflowsWithoutCharacterLoss(t *testing.T) {
	text := "Advanced Topics in Distributed Ledger Technologies"
	lines := Wrap(text, 12)

	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, utf8.RuneCountInString(line), 12)
	}
	// Joining the fragments reconstructs the text with only whitespace reflow.
	assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(lines, " ")))
}

func TestWrapHardSplitsOversizedWords(t *testing.T) {
	word := "Pneumonoultramicroscopic"
	lines := Wrap(word, 10)

	for _, line := range lines {
		assert.LessOrEqual(t, utf8.RuneCountInString(line), 10)
	}
	assert.Equal(t, word, strings.Join(lines, ""))
}

func TestWrapEmptyCellYieldsOneBlankLine(t *testing.T) {
	assert.Equal(t, []string{""}, Wrap("", 10))
	assert.Equal(t, []string{""}, Wrap("   ", 10))
}

func TestWrapShortTextSingleLine(t *testing.T) {
	assert.Equal(t, []string{"B-04"}, Wrap("B-04", 10))
}

func TestRenderUniformLineWidth(t *testing.T) {
	var buf bytes.Buffer
	table := Table{
		Headers: []string{"ROOM", "MODULE"},
		Widths:  []int{10, 20},
		Styles:  NewStyles(false),
	}
	table.Render(&buf, [][]Cell{
		{{Text: "B-04"}, {Text: "A module name long enough to wrap across lines"}},
		{{Text: "Auditorium 2"}, {Text: ""}},
	})

	want := 1 + 10 + 20 + 3 // leading space + widths + " | "
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if line == "" || strings.Contains(line, "---") {
			continue
		}
		assert.Equal(t, want, utf8.RuneCountInString(line), "line %q", line)
	}
}

func TestRenderRowHeightFollowsTallestCell(t *testing.T) {
	var buf bytes.Buffer
	table := Table{
		Headers: []string{"A", "B"},
		Widths:  []int{5, 8},
		Styles:  NewStyles(false),
	}
	table.Render(&buf, [][]Cell{
		{{Text: "x"}, {Text: "one two three four"}},
	})

	lines := strings.Split(buf.String(), "\n")
	var dataLines []string
	for _, line := range lines {
		if line == "" || strings.Contains(line, "---") || strings.Contains(line, "A") {
			continue
		}
		dataLines = append(dataLines, line)
	}
	// "one two three four" wraps to three 8-wide lines; the short cell
	// pads with blanks alongside.
	require.Len(t, dataLines, 3)
	assert.True(t, strings.HasPrefix(dataLines[0], " x     | "))
	assert.True(t, strings.HasPrefix(dataLines[1], "       | "))
}

func TestRenderStylesTextNotPadding(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(true)
	table := Table{
		Headers: []string{"ROOM"},
		Widths:  []int{8},
		Styles:  styles,
	}
	table.Render(&buf, [][]Cell{
		{{Text: "B-04", Style: styles.Green}},
	})

	// The reset code lands directly after the text; padding stays bare so
	// column alignment is independent of styling.
	assert.Contains(t, buf.String(), "B-04\x1b[0m    ")
}

func TestRenderSeparatorAfterHeaderAndEveryRow(t *testing.T) {
	var buf bytes.Buffer
	table := Table{
		Headers: []string{"A"},
		Widths:  []int{4},
		Styles:  NewStyles(false),
	}
	table.Render(&buf, [][]Cell{
		{{Text: "one"}},
		{{Text: "two"}},
	})

	assert.Equal(t, 3, strings.Count(buf.String(), strings.Repeat("-", 4)))
}
