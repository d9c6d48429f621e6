package statsui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typedrill/internal/model"
)

func sampleTable() model.StatsTable {
	return model.StatsTable{
		'a': {RollingAvgMs: 100, TypedCount: 10, ErrorCount: 0, Score: 100},
		'b': {RollingAvgMs: 300, TypedCount: 10, ErrorCount: 5, Score: 600},
		' ': {RollingAvgMs: 80, TypedCount: 20, ErrorCount: 0, Score: 80},
	}
}

func TestNewModelRowsWeakestFirst(t *testing.T) {
	m := NewModel(sampleTable(), model.StatsConfig{})
	if len(m.rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(m.rows))
	}
	if m.rows[0].Char != 'b' || m.rows[2].Char != ' ' {
		t.Fatalf("unexpected order: %+v", m.rows)
	}
}

func TestNewModelTop(t *testing.T) {
	m := NewModel(sampleTable(), model.StatsConfig{Top: 1})
	if len(m.rows) != 1 || m.rows[0].Char != 'b' {
		t.Fatalf("expected only the weakest row, got %+v", m.rows)
	}
}

func TestCharFilterInput(t *testing.T) {
	m := NewModel(sampleTable(), model.StatsConfig{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	if !m.filtering {
		t.Fatalf("expected filter mode")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a, q")})
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatalf("typing q in the filter must not quit")
		}
	}
	if m.filtering {
		t.Fatalf("expected filter mode to close")
	}
	if m.cfg.Chars != "aq" {
		t.Fatalf("unexpected filter %q", m.cfg.Chars)
	}
	if len(m.rows) != 1 || m.rows[0].Char != 'a' {
		t.Fatalf("expected filtered rows, got %+v", m.rows)
	}
}

func TestCharFilterCancel(t *testing.T) {
	m := NewModel(sampleTable(), model.StatsConfig{Chars: "b"})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.cfg.Chars != "b" || len(m.rows) != 1 {
		t.Fatalf("cancel must keep the previous filter, got %q", m.cfg.Chars)
	}
}

func TestViewTabs(t *testing.T) {
	m := NewModel(sampleTable(), model.StatsConfig{Backend: "sqlite"})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	for _, want := range []string{"Overview", "Keystrokes", "40", "Weakest characters", "sqlite"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in overview:\n%s", want, view)
		}
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.active != tabCharTable {
		t.Fatalf("expected char table tab")
	}
	view = m.View()
	if !strings.Contains(view, "Avg ms") || !strings.Contains(view, "·") {
		t.Fatalf("expected char table with visible space:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.active != tabOverview {
		t.Fatalf("expected tabs to wrap around")
	}
}

func TestEmptyTable(t *testing.T) {
	m := NewModel(model.StatsTable{}, model.StatsConfig{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if !strings.Contains(m.View(), "No statistics recorded yet.") {
		t.Fatalf("expected empty message")
	}
}

func TestQuit(t *testing.T) {
	m := NewModel(sampleTable(), model.StatsConfig{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}

func TestParseChars(t *testing.T) {
	if got := string(parseChars(" a,b a\tc ")); got != "abc" {
		t.Fatalf("unexpected chars %q", got)
	}
	if got := parseChars(""); len(got) != 0 {
		t.Fatalf("expected no chars, got %q", string(got))
	}
}
