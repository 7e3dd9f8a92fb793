package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	left     key.Binding
	right    key.Binding
	enter    key.Binding
	year     key.Binding
	back     key.Binding
	historyB key.Binding
	retry    key.Binding
	top      key.Binding
	bottom   key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev section")),
		right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next section")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		year:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "change year")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		historyB: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),
		retry:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.year, k.retry, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right},
		{k.year, k.enter, k.back, k.historyB},
		{k.retry, k.quit},
	}
}
