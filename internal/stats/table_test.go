package stats

import (
	"bytes"
	"testing"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Title", "Words", "Grid"}
	rows := [][]string{
		{"Kitchen", "4", "3x6"},
		{"Rainy Season", "6", "5x5"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Title        Words Grid" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Kitchen          4 3x6 " {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Rainy Season     6 5x5 " {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"W", "N"}, [][]string{{"日本", "1"}, {"ab", "2"}}, nil)
	if lines[1] != "日本 1" || lines[2] != "ab   2" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestRenderTableTrimsTrailingSpace(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderTable(&buf, []string{"A", "B"}, [][]string{{"long", ""}}, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := buf.String(); got != "A    B\nlong\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}
