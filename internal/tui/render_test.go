package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/typedrill/internal/model"
)

func TestRenderLineCursor(t *testing.T) {
	line := model.NewLine([]rune("ab"))
	line[0].SetTyped('a')

	got := renderLine(line, 0, 1, model.HighlightNothing, nil)
	want := charStyle(line[0], 0).Render("a") + charStyle(line[1], 0).Underline(true).Render("b")
	if got != want {
		t.Fatalf("expected cursor underline on second rune\nwant %q\ngot  %q", want, got)
	}
}

func TestRenderLineKeepsTargetOnMistype(t *testing.T) {
	line := model.NewLine([]rune("ab"))
	line[0].SetTyped('a')
	line[1].SetTyped('x')

	got := renderLine(line, 0, -1, model.HighlightNothing, nil)
	want := charStyle(line[0], 0).Render("a") + charStyle(line[1], 0).Render("b")
	if got != want {
		t.Fatalf("expected target shown for mistyped rune\nwant %q\ngot  %q", want, got)
	}
	if strings.Contains(got, "x") {
		t.Fatalf("typed rune should not be rendered: %q", got)
	}
}

func TestRenderLineWhitespaceMarkers(t *testing.T) {
	line := model.NewLine([]rune("a b\n"))
	got := renderLine(line, 1, -1, model.HighlightNothing, nil)
	if !strings.Contains(got, "·") || !strings.Contains(got, "¶") {
		t.Fatalf("expected visible space and newline markers: %q", got)
	}
}

func TestRenderLineWordHighlight(t *testing.T) {
	line := model.NewLine([]rune("one two"))
	got := renderLine(line, 0, 0, model.HighlightWord, &span{start: 0, end: 3})

	var want strings.Builder
	for i, c := range line {
		text := string(c.Target)
		switch {
		case i < 3:
			want.WriteString(highlightStyle.Render(text))
		case c.Target == ' ':
			want.WriteString(charStyle(c, 0).Render("·"))
		default:
			want.WriteString(charStyle(c, 0).Render(text))
		}
	}
	if got != want.String() {
		t.Fatalf("unexpected word highlight\nwant %q\ngot  %q", want.String(), got)
	}
}

func TestRenderLineCharacterHighlight(t *testing.T) {
	line := model.NewLine([]rune("ab"))
	got := renderLine(line, 0, 1, model.HighlightCharacter, nil)
	want := charStyle(line[0], 0).Render("a") + highlightStyle.Render("b")
	if got != want {
		t.Fatalf("expected character highlight at cursor\nwant %q\ngot  %q", want, got)
	}
}

func TestPaletteDimsWithDistance(t *testing.T) {
	if paletteFor(0, 'a').untyped != slate50 {
		t.Fatalf("current line should be bright")
	}
	if paletteFor(0, ' ').untyped != slate400 {
		t.Fatalf("spaces on the current line should be dimmed")
	}
	if paletteFor(-1, 'a').correct != emerald700 {
		t.Fatalf("adjacent line should use the middle shade")
	}
	if paletteFor(2, 'a').incorrect != red900 {
		t.Fatalf("distant line should use the darkest shade")
	}
}

func TestCenterLine(t *testing.T) {
	line := model.NewLine([]rune("a b"))
	if got := lineCells(line); got != 3 {
		t.Fatalf("expected 3 cells, got %d", got)
	}
	if got := centerLine("xyz", 3, 9); got != "   xyz" {
		t.Fatalf("unexpected centering %q", got)
	}
	if got := centerLine("xyz", 3, 2); got != "xyz" {
		t.Fatalf("expected no padding when too wide, got %q", got)
	}
}
