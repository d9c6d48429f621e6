// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typedrill/internal/model"
	"github.com/verte-zerg/typedrill/internal/stats"
)

type tab int

const (
	tabOverview tab = iota
	tabCharTable
	tabCount
)

func (t tab) title() string {
	if t == tabCharTable {
		return "Char Table"
	}
	return "Overview"
}

const (
	barsShown  = 10
	barLabelW  = 24
	minModalW  = 40
	maxModalW  = 80
	modalInset = 6 // border and padding
)

const (
	gold      = lipgloss.Color("#C89A3A")
	grey900   = lipgloss.Color("#4A4A4A")
	grey600   = lipgloss.Color("#6E6E6E")
	grey500   = lipgloss.Color("#8C8C8C")
	grey400   = lipgloss.Color("#B0B0B0")
	grey300   = lipgloss.Color("#C0C0C0")
	offWhite  = lipgloss.Color("#F0F0F0")
	tableText = lipgloss.Color("#B8B8B8")
)

var (
	tabBase     = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder(), true)
	activeTab   = tabBase.Foreground(offWhite).Bold(true).BorderForeground(gold)
	inactiveTab = tabBase.Foreground(grey400).BorderForeground(grey900)
	dimStyle    = lipgloss.NewStyle().Foreground(grey600)
	metricBox   = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder(), true).BorderForeground(grey900)
	metricLabel = lipgloss.NewStyle().Foreground(grey500)
	metricValue = lipgloss.NewStyle().Foreground(offWhite).Bold(true)
	tableStyle  = lipgloss.NewStyle().Foreground(tableText)
	barStyle    = lipgloss.NewStyle().Foreground(gold)
	modalBox    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).BorderForeground(gold).Padding(1, 2)
)

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Filter key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→", "next tab")),
		Prev:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev tab")),
		Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter chars")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Top, k.Bottom, k.Filter, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Model implements the Bubble Tea stats UI over a loaded stats table.
type Model struct {
	table model.StatsTable
	cfg   model.StatsConfig
	rows  []stats.CharRow

	active   tab
	overview viewport.Model
	grid     table.Model
	keys     keyMap
	help     help.Model

	width  int
	height int

	filtering bool
	filter    textinput.Model
}

// NewModel constructs a stats UI model; rows are ordered weakest first.
func NewModel(tbl model.StatsTable, cfg model.StatsConfig) *Model {
	m := &Model{
		table:    tbl,
		cfg:      cfg,
		overview: viewport.New(0, 0),
		grid:     newGrid(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		filter:   newFilterInput(),
	}
	m.reload()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.switchTab(1)
		return m, tea.ClearScreen
	case key.Matches(msg, m.keys.Prev):
		m.switchTab(-1)
		return m, tea.ClearScreen
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.SetValue(string(parseChars(m.cfg.Chars)))
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.Top):
		if m.active == tabCharTable {
			m.grid.GotoTop()
		} else {
			m.overview.GotoTop()
		}
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		if m.active == tabCharTable {
			m.grid.GotoBottom()
		} else {
			m.overview.GotoBottom()
		}
		return m, nil
	}
	var cmd tea.Cmd
	if m.active == tabCharTable {
		m.grid, cmd = m.grid.Update(msg)
	} else {
		m.overview, cmd = m.overview.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyEnter:
		m.cfg.Chars = normalizeCharInput(m.filter.Value())
		m.filtering = false
		m.filter.Blur()
		m.reload()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if v := normalizeCharInput(m.filter.Value()); v != m.filter.Value() {
		m.filter.SetValue(v)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.filtering {
		return m.viewFilter()
	}
	headerH, bodyH := m.heights()
	return lipgloss.JoinVertical(lipgloss.Left,
		fit(m.viewHeader(), m.width, headerH),
		fit(m.viewBody(), m.width, bodyH),
		fit(m.help.View(m.keys), m.width, 1),
	)
}

func (m *Model) heights() (header, body int) {
	header = lipgloss.Height(activeTab.Render("X")) + 1
	body = m.height - header - 1
	if body < 1 {
		body = 1
	}
	return header, body
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	_, bodyH := m.heights()
	m.overview.Width = width
	m.overview.Height = bodyH
	m.grid.SetWidth(width)
	m.grid.SetHeight(max(1, bodyH-1))
	m.filter.Width = max(10, modalWidth(width)-modalInset-lipgloss.Width(m.filter.Prompt))
	m.overview.SetContent(renderOverview(m.table, m.rows, width))
}

func (m *Model) switchTab(delta int) {
	m.active = (m.active + tab(delta) + tabCount) % tabCount
	if m.active == tabCharTable {
		m.grid.Focus()
	} else {
		m.grid.Blur()
	}
}

// reload recomputes the rows for the current char filter and top limit.
func (m *Model) reload() {
	m.rows = stats.Rows(filterTable(m.table, parseChars(m.cfg.Chars)), m.cfg.Top)
	m.grid.SetRows(gridRows(m.rows))
	m.grid.GotoTop()
	m.overview.SetContent(renderOverview(m.table, m.rows, m.width))
}

func (m *Model) viewHeader() string {
	tabs := make([]string, 0, tabCount)
	for t := tabOverview; t < tabCount; t++ {
		style := inactiveTab
		if t == m.active {
			style = activeTab
		}
		tabs = append(tabs, style.Render(t.title()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n" +
		dimStyle.Render(runewidth.Truncate(m.filterSummary(), m.width, "…"))
}

func (m *Model) filterSummary() string {
	chars, top, backend := "all", "all", m.cfg.Backend
	if selected := parseChars(m.cfg.Chars); len(selected) > 0 {
		chars = string(selected)
	}
	if m.cfg.Top > 0 {
		top = fmt.Sprintf("%d", m.cfg.Top)
	}
	if backend == "" {
		backend = "toml"
	}
	return fmt.Sprintf("Store: %s  chars=%s  top=%s", backend, chars, top)
}

func (m *Model) viewBody() string {
	if m.active == tabOverview {
		return m.overview.View()
	}
	if len(m.rows) == 0 {
		return "No character stats found."
	}
	return tableStyle.Render(m.grid.View())
}

func (m *Model) viewFilter() string {
	content := strings.Join([]string{
		metricValue.Render("Filter Characters"),
		m.filter.View(),
		dimStyle.Render("Type characters (no commas). Spaces are ignored."),
		dimStyle.Render("Empty shows all. Enter to apply / Esc to cancel"),
	}, "\n")
	box := modalBox.Width(modalWidth(m.width)).Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func renderOverview(tbl model.StatsTable, rows []stats.CharRow, width int) string {
	if len(tbl) == 0 {
		return "No statistics recorded yet."
	}
	var typed, errs uint64
	for _, stat := range tbl {
		typed += stat.TypedCount
		errs += stat.ErrorCount
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		metricCard("Characters", fmt.Sprintf("%d", len(tbl))),
		metricCard("Keystrokes", fmt.Sprintf("%d", typed)),
		metricCard("Errors", fmt.Sprintf("%d", errs)),
		metricCard("Accuracy", fmt.Sprintf("%.1f%%", stats.Accuracy(int(typed), int(errs)))),
	)
	lines := append([]string{cards, "", metricLabel.Render("Weakest characters")}, weakBars(rows, width)...)
	return strings.Join(lines, "\n")
}

func metricCard(label, value string) string {
	return metricBox.Render(metricLabel.Render(label) + "\n" + metricValue.Render(value))
}

// weakBars draws one bar per row, scaled so the weakest row fills the width.
func weakBars(rows []stats.CharRow, width int) []string {
	if len(rows) == 0 {
		return []string{"No characters match the filter."}
	}
	if len(rows) > barsShown {
		rows = rows[:barsShown]
	}
	span := max(10, min(width, 100)-barLabelW)
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		n := 1
		if rows[0].Score > 0 {
			n = max(1, int(r.Score/rows[0].Score*float64(span)))
		}
		label := fmt.Sprintf("%-3s %7.1f %10.1f ", stats.DisplayChar(r.Char), r.Score, r.AvgMs)
		out = append(out, label+barStyle.Render(strings.Repeat("█", n)))
	}
	return out
}

func newGrid() table.Model {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(grey900).
		Foreground(grey300).
		Bold(true).
		Padding(0, 1, 0, 0)
	styles.Cell = styles.Cell.Padding(0, 1, 0, 0)
	styles.Selected = styles.Cell.Foreground(offWhite).Bold(true)

	return table.New(
		table.WithColumns([]table.Column{
			{Title: "Char", Width: 4},
			{Title: "Avg ms", Width: 8},
			{Title: "Typed", Width: 7},
			{Title: "Errors", Width: 7},
			{Title: "Accuracy", Width: 9},
			{Title: "Score", Width: 8},
		}),
		table.WithHeight(1),
		table.WithStyles(styles),
	)
}

func gridRows(rows []stats.CharRow) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row{
			stats.DisplayChar(r.Char),
			fmt.Sprintf("%.1f", r.AvgMs),
			fmt.Sprintf("%d", r.Typed),
			fmt.Sprintf("%d", r.Errors),
			fmt.Sprintf("%.1f%%", r.Accuracy),
			fmt.Sprintf("%.1f", r.Score),
		}
	}
	return out
}

func newFilterInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "Chars: "
	input.Placeholder = "asdfjkl;"
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

// filterTable keeps only the selected chars; an empty selection keeps all.
func filterTable(tbl model.StatsTable, chars []rune) model.StatsTable {
	if len(chars) == 0 {
		return tbl
	}
	out := make(model.StatsTable, len(chars))
	for _, ch := range chars {
		if stat, ok := tbl[ch]; ok {
			out[ch] = stat
		}
	}
	return out
}

// parseChars accepts "asdf" or "a,s,d,f"; whitespace is ignored and
// duplicates are dropped.
func parseChars(input string) []rune {
	seen := make(map[rune]bool)
	var out []rune
	for _, r := range normalizeCharInput(input) {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

func normalizeCharInput(input string) string {
	return strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)
}

func modalWidth(width int) int {
	return max(minModalW, min(width-4, maxModalW))
}

// fit clips or pads s to exactly width x height cells.
func fit(s string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).Height(height).
		MaxWidth(width).MaxHeight(height).
		Render(s)
}
