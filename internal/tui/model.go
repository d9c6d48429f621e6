// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typedrill/internal/engine"
	"github.com/verte-zerg/typedrill/internal/model"
	"github.com/verte-zerg/typedrill/internal/stats"
)

const (
	// MinWidth and MinHeight are the smallest usable terminal size.
	MinWidth  = 72
	MinHeight = 20

	linesBefore = 2
	linesAfter  = 2
	chartHeight = 8
)

// SessionFactory builds a session for cfg seeded with table.
type SessionFactory func(cfg model.Config, table model.StatsTable) (*engine.Session, error)

// Model implements the Bubble Tea typing UI.
type Model struct {
	config  model.Config
	factory SessionFactory
	logger  *slog.Logger

	session *engine.Session
	table   model.StatsTable
	keys    keyMap
	help    help.Model

	width  int
	height int
	err    error
}

// NewModel constructs a typing TUI model with its first session.
func NewModel(cfg model.Config, table model.StatsTable, factory SessionFactory, logger *slog.Logger) (*Model, error) {
	if table == nil {
		table = model.StatsTable{}
	}
	m := &Model{
		config:  cfg,
		factory: factory,
		logger:  logger,
		table:   table,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	if err := m.resetSession(); err != nil {
		return nil, err
	}
	return m, nil
}

// Stats returns the per-character table including the running session.
func (m *Model) Stats() model.StatsTable {
	return m.session.Stats()
}

// Config returns the settings as changed through the pause menu.
func (m *Model) Config() model.Config {
	return m.config
}

// Err reports a failure that ended the program.
func (m *Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch {
		case m.session.Done():
			return m.updateResults(msg)
		case m.session.Paused():
			return m.updatePaused(msg)
		default:
			for _, k := range toKeys(msg) {
				m.session.Apply(k)
			}
			if m.session.Done() {
				m.logSession("session completed")
			}
			return m, nil
		}
	default:
		return m, nil
	}
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Restart):
		return m, m.restart()
	case key.Matches(msg, m.keys.Quit), msg.Type == tea.KeyEsc:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updatePaused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Pause):
		m.session.Apply(engine.PressKey(engine.KeyEscape))
	case key.Matches(msg, m.keys.Restart):
		return m, m.restart()
	case key.Matches(msg, m.keys.Difficulty):
		m.config.Difficulty = m.config.Difficulty.Next()
		return m, m.restart()
	case key.Matches(msg, m.keys.Highlight):
		m.config.Highlight = m.config.Highlight.Next()
	case key.Matches(msg, m.keys.Words):
		m.config.Words = model.NextWordCount(m.config.Words)
		return m, m.restart()
	case key.Matches(msg, m.keys.Quit):
		if m.session.Started() {
			m.logSession("session abandoned")
		}
		return m, tea.Quit
	}
	return m, nil
}

// toKeys maps a terminal key to engine keys; pasted text yields one key per
// rune. Bubble Tea only reports presses.
func toKeys(msg tea.KeyMsg) []engine.Key {
	switch msg.Type {
	case tea.KeyEsc:
		return []engine.Key{engine.PressKey(engine.KeyEscape)}
	case tea.KeyEnter:
		return []engine.Key{engine.PressKey(engine.KeyEnter)}
	case tea.KeyBackspace:
		return []engine.Key{engine.PressKey(engine.KeyBackspace)}
	case tea.KeyTab:
		return []engine.Key{engine.RuneKey('\t')}
	case tea.KeySpace:
		return []engine.Key{engine.RuneKey(' ')}
	case tea.KeyRunes:
		if msg.Alt {
			break
		}
		keys := make([]engine.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, engine.RuneKey(r))
		}
		return keys
	}
	return []engine.Key{engine.PressKey(engine.KeyOther)}
}

func (m *Model) restart() tea.Cmd {
	if err := m.resetSession(); err != nil {
		m.err = err
		m.logger.Error("failed to restart session", "err", err)
		return tea.Quit
	}
	return nil
}

func (m *Model) resetSession() error {
	if m.session != nil {
		m.table = m.session.Stats()
	}
	session, err := m.factory(m.config, m.table)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	m.session = session
	m.logger.Debug("session reset",
		"difficulty", m.config.Difficulty.String(),
		"words", m.config.Words,
		"mode", m.config.Mode.String())
	return nil
}

func (m *Model) logSession(msg string) {
	m.logger.Info(msg,
		"wpm", fmt.Sprintf("%.1f", m.session.WPM()),
		"accuracy", fmt.Sprintf("%.1f", m.session.Accuracy()),
		"typed", m.session.TypedChars(),
		"errors", m.session.Errors(),
		"elapsed", m.session.Elapsed().String())
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width > 0 && (m.width < MinWidth || m.height < MinHeight) {
		return m.renderSizeWarning()
	}
	var body string
	if m.session.Done() {
		body = m.renderResults()
	} else {
		body = m.renderTyping()
	}
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) renderSizeWarning() string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		messageStyle.Render("Terminal too small"),
		mutedStyle.Render(fmt.Sprintf("need %dx%d, have %dx%d", MinWidth, MinHeight, m.width, m.height)),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

func (m *Model) renderTyping() string {
	sections := []string{
		titleStyle.Render("typedrill"),
		"",
		m.renderLines(),
		"",
		m.renderStatus(),
		"",
		m.renderMessage(),
	}
	if m.session.Paused() {
		sections = append(sections, "", m.renderMenu(), m.help.View(m.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

func (m *Model) renderLines() string {
	lines, current := m.session.Window(linesBefore, linesAfter)
	cursor := m.session.Cursor()

	var word *span
	wordOffset := -1
	if m.config.Highlight >= model.HighlightWord {
		start, end, offset := m.session.WordBounds(m.config.Highlight.WordsAhead())
		word = &span{start: start, end: end}
		wordOffset = offset
	}

	width := m.config.LineWidth
	rows := make([]string, 0, linesBefore+linesAfter+1)
	for i := current - linesBefore; i <= current+linesAfter; i++ {
		if i < 0 || i >= len(lines) {
			rows = append(rows, strings.Repeat(" ", width))
			continue
		}
		dist := i - current
		pos := -1
		if dist == 0 {
			pos = cursor.Pos
		}
		var lineWord *span
		if dist == wordOffset {
			lineWord = word
		}
		styled := renderLine(lines[i], dist, pos, m.config.Highlight, lineWord)
		rows = append(rows, centerLine(styled, lineCells(lines[i]), width))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(rows, "\n"))
}

func (m *Model) renderStatus() string {
	wpm := "-"
	if v := m.session.WPM(); v > 0 {
		wpm = fmt.Sprintf("%.0f", v)
	}
	accuracy := fmt.Sprintf("%.1f%%", m.session.Accuracy())
	return lipgloss.JoinHorizontal(lipgloss.Top,
		renderCard("WPM", wpm),
		renderCard("Accuracy", accuracy),
	)
}

func (m *Model) renderMessage() string {
	if m.session.Paused() {
		return lipgloss.JoinVertical(lipgloss.Center,
			messageStyle.Render("PAUSED"),
			"Press Esc to resume",
		)
	}
	return mutedStyle.Render("Press Esc to pause")
}

func (m *Model) renderMenu() string {
	words := func(n int) string {
		if n == 0 {
			return "endless"
		}
		return fmt.Sprintf("%d", n)
	}
	cfg := m.config
	return lipgloss.JoinHorizontal(lipgloss.Top,
		renderOption("Words", "w", words(model.PrevWordCount(cfg.Words)), words(cfg.Words), words(model.NextWordCount(cfg.Words))),
		"  ",
		renderOption("Difficulty", "c", cfg.Difficulty.Prev().String(), cfg.Difficulty.String(), cfg.Difficulty.Next().String()),
		"  ",
		renderOption("Highlight", "h", cfg.Highlight.Prev().String(), cfg.Highlight.String(), cfg.Highlight.Next().String()),
	)
}

func (m *Model) renderResults() string {
	events := m.session.Events()
	chartWidth := m.config.LineWidth
	if m.width > 0 && m.width-10 < chartWidth {
		chartWidth = m.width - 10
	}
	chart := stats.RenderWPMChart(
		stats.WPMCurve(events),
		stats.ErrorMarkers(events, stats.ErrorMarkerHeight),
		chartWidth, chartHeight, false,
	)
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		renderCard("WPM", fmt.Sprintf("%.0f", m.session.WPM())),
		renderCard("Errors", fmt.Sprintf("%d", m.session.Errors())),
		renderCard("Accuracy", fmt.Sprintf("%.1f%%", m.session.Accuracy())),
	)
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Results"),
		"",
		chartStyle.Render(chart),
		"",
		cards,
		"",
		m.help.View(resultsKeys{m.keys}),
	)
}
