// File: internal/ui/tui/keys.go
package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Pick      key.Binding
	Upload    key.Binding
	Cancel    key.Binding
	Delete    key.Binding
	Copy      key.Binding
	Open      key.Binding
	Refresh   key.Binding
	Snippets  key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Pick:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "choose image")),
		Upload:    key.NewBinding(key.WithKeys("enter", "u"), key.WithHelp("enter", "upload")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
		Delete:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy url")),
		Open:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "open url")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Snippets:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "api snippets")),
		Back:      key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "back")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// bindings adapts a fixed set of bindings to help.KeyMap
type bindings struct {
	short []key.Binding
	full  [][]key.Binding
}

func (b bindings) ShortHelp() []key.Binding  { return b.short }
func (b bindings) FullHelp() [][]key.Binding { return b.full }

func (k keyMap) galleryHelp() bindings {
	return bindings{
		short: []key.Binding{k.Pick, k.Upload, k.Delete, k.Copy, k.Help, k.Quit},
		full: [][]key.Binding{
			{k.Up, k.Down, k.Refresh},
			{k.Pick, k.Upload, k.Cancel},
			{k.Delete, k.Copy, k.Open},
			{k.Snippets, k.Help, k.Quit},
		},
	}
}

func (k keyMap) pickerHelp() bindings {
	back := key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "close picker"))
	open := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select"))
	nav := key.NewBinding(key.WithKeys("h", "l"), key.WithHelp("h/l", "parent/open dir"))
	return bindings{short: []key.Binding{k.Up, k.Down, nav, open, back}}
}

func (k keyMap) snippetsHelp() bindings {
	copyCode := key.NewBinding(key.WithKeys("c", "enter"), key.WithHelp("c", "copy code"))
	return bindings{short: []key.Binding{k.Up, k.Down, copyCode, k.Back}}
}
