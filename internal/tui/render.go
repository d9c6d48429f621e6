package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typedrill/internal/model"
	"github.com/verte-zerg/typedrill/internal/stats"
)

// Tailwind slate, emerald and red shades.
const (
	slate50    = lipgloss.Color("#F8FAFC")
	slate100   = lipgloss.Color("#F1F5F9")
	slate300   = lipgloss.Color("#CBD5E1")
	slate400   = lipgloss.Color("#94A3B8")
	slate500   = lipgloss.Color("#64748B")
	slate800   = lipgloss.Color("#1E293B")
	emerald400 = lipgloss.Color("#34D399")
	emerald700 = lipgloss.Color("#047857")
	emerald800 = lipgloss.Color("#065F46")
	red400     = lipgloss.Color("#F87171")
	red800     = lipgloss.Color("#991B1B")
	red900     = lipgloss.Color("#7F1D1D")
	yellow     = lipgloss.Color("#FACC15")
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(slate50)
	mutedStyle     = lipgloss.NewStyle().Foreground(slate500)
	messageStyle   = lipgloss.NewStyle().Bold(true).Foreground(slate50)
	highlightStyle = lipgloss.NewStyle().Foreground(yellow).Underline(true).Bold(true)
	menuLabelStyle = lipgloss.NewStyle().Bold(true).Background(slate800).Foreground(slate100).Padding(0, 1)
	menuValueStyle = lipgloss.NewStyle().Bold(true).Foreground(slate300)
	cardStyle      = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(slate500).
			Foreground(slate50).
			Width(14).
			Align(lipgloss.Center)
	chartStyle = lipgloss.NewStyle().Foreground(emerald400)
)

type palette struct {
	untyped   lipgloss.Color
	correct   lipgloss.Color
	incorrect lipgloss.Color
}

// paletteFor dims characters by their distance from the current line.
func paletteFor(dist int, target rune) palette {
	if dist < 0 {
		dist = -dist
	}
	switch {
	case dist == 0 && target != ' ':
		return palette{untyped: slate50, correct: emerald400, incorrect: red400}
	case dist <= 1:
		return palette{untyped: slate400, correct: emerald700, incorrect: red800}
	default:
		return palette{untyped: slate500, correct: emerald800, incorrect: red900}
	}
}

func charStyle(c model.Character, dist int) lipgloss.Style {
	p := paletteFor(dist, c.Target)
	switch c.State {
	case model.Correct:
		return lipgloss.NewStyle().Foreground(p.correct)
	case model.Incorrect:
		return lipgloss.NewStyle().Foreground(p.incorrect)
	default:
		return lipgloss.NewStyle().Foreground(p.untyped)
	}
}

// span marks the highlighted range [start, end) on one line.
type span struct {
	start int
	end   int
}

func (s *span) contains(i int) bool {
	return s != nil && i >= s.start && i < s.end
}

// renderLine styles one buffer line. dist is the offset from the current
// line, cursor is the cursor position on this line or -1.
func renderLine(line model.Line, dist, cursor int, highlight model.Highlight, word *span) string {
	var b strings.Builder
	for i, c := range line {
		text := stats.DisplayChar(c.Target)
		style := charStyle(c, dist)
		switch {
		case highlight == model.HighlightCharacter && i == cursor:
			style = highlightStyle
		case word.contains(i) && !isBlank(c.Target):
			style = highlightStyle
		case i == cursor:
			style = style.Underline(true)
		}
		b.WriteString(style.Render(text))
	}
	return b.String()
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t'
}

// lineCells is the display width of a rendered line.
func lineCells(line model.Line) int {
	total := 0
	for _, c := range line {
		total += runewidth.StringWidth(stats.DisplayChar(c.Target))
	}
	return total
}

// centerLine pads a styled line so that its cells sit in the middle of width.
func centerLine(styled string, cells, width int) string {
	pad := (width - cells) / 2
	if pad <= 0 {
		return styled
	}
	return strings.Repeat(" ", pad) + styled
}

func renderCard(title, value string) string {
	return cardStyle.Render(mutedStyle.Render(title) + "\n" + value)
}

func renderOption(label, key string, prev, cur, next string) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		menuLabelStyle.Render(label+" ("+key+")"),
		mutedStyle.Render(prev),
		menuValueStyle.Render(cur),
		mutedStyle.Render(next),
	)
}
