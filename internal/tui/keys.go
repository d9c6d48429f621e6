package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pause      key.Binding
	Restart    key.Binding
	Difficulty key.Binding
	Highlight  key.Binding
	Words      key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Pause:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "resume")),
		Restart:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Difficulty: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "difficulty")),
		Highlight:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "highlight")),
		Words:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "words")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Restart, k.Difficulty, k.Highlight, k.Words, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// resultsKeys is the subset shown on the results screen.
type resultsKeys struct {
	keyMap
}

func (k resultsKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Restart, k.Quit}
}

func (k resultsKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
