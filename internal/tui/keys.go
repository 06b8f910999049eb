package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit  key.Binding
	Undo    key.Binding
	Clear   key.Binding
	Shuffle key.Binding
	Hint    key.Binding
	Reset   key.Binding
	Sound   key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Undo:    key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫", "undo")),
		Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Shuffle: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "shuffle")),
		Hint:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "hint")),
		Reset:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		Sound:   key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "sound")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Undo, k.Shuffle, k.Hint, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Undo, k.Clear},
		{k.Shuffle, k.Hint, k.Reset},
		{k.Sound, k.Quit},
	}
}
