package tui

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/creatorlimen/wordnaija/internal/model"
)

const cellWidth = 3

func renderGrid(grid model.GridState) string {
	lines := make([]string, 0, len(grid.Cells))
	for _, row := range grid.Cells {
		var b strings.Builder
		for _, cell := range row {
			b.WriteString(renderCell(cell))
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return strings.Join(lines, "\n")
}

func renderCell(cell model.Cell) string {
	switch {
	case !cell.IsPartOfTargetWord:
		return strings.Repeat(" ", cellWidth)
	case cell.Filled:
		return filledStyle.Render(centerCell(string(cell.Letter)))
	default:
		return emptyStyle.Render(centerCell("·"))
	}
}

// centerCell pads s to the cell width, leaving wide runes flush left.
func centerCell(s string) string {
	w := runewidth.StringWidth(s)
	if w >= cellWidth {
		return s
	}
	left := (cellWidth - w) / 2
	return runewidth.FillRight(strings.Repeat(" ", left)+s, cellWidth)
}

func renderWheel(wheel []model.Letter, selection *model.SelectionPath) string {
	selected := map[int]struct{}{}
	if selection != nil {
		for _, idx := range selection.Indices {
			selected[idx] = struct{}{}
		}
	}
	parts := make([]string, 0, len(wheel))
	for _, letter := range wheel {
		label := string(letter.Char)
		if letter.Index < 9 {
			label = strconv.Itoa(letter.Index+1) + ":" + label
		}
		if _, ok := selected[letter.Index]; ok {
			parts = append(parts, selectedStyle.Render(label))
			continue
		}
		parts = append(parts, wheelStyle.Render(label))
	}
	return strings.Join(parts, "  ")
}

// wrapText breaks text on spaces so no line is wider than width. Words wider
// than width are placed on their own line.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}
	var lines []string
	line := words[0]
	lineWidth := runewidth.StringWidth(line)
	for _, word := range words[1:] {
		w := runewidth.StringWidth(word)
		if lineWidth+1+w > width {
			lines = append(lines, line)
			line, lineWidth = word, w
			continue
		}
		line += " " + word
		lineWidth += 1 + w
	}
	return append(lines, line)
}
