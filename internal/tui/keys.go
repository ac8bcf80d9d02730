package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up            key.Binding
	Down          key.Binding
	Enter         key.Binding
	Back          key.Binding
	Select        key.Binding
	Label         key.Binding
	Star          key.Binding
	Unread        key.Binding
	Sync          key.Binding
	Tab           key.Binding
	SwitchAccount key.Binding
	Quit          key.Binding
}

var keys = keyMap{
	Up:            key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:          key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Enter:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Select:        key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	Label:         key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "labels")),
	Star:          key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "star")),
	Unread:        key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unread")),
	Sync:          key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sync")),
	Tab:           key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	SwitchAccount: key.NewBinding(key.WithKeys("@"), key.WithHelp("@", "account")),
	Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
