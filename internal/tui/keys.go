package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Top       key.Binding
	Bottom    key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Details   key.Binding
	Back      key.Binding
	Search    key.Binding
	NextStyle key.Binding
	PrevStyle key.Binding
	Reset     key.Binding
	Reload    key.Binding
	Numbers   key.Binding
	PrevImage key.Binding
	NextImage key.Binding
	Open      key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/↓", "down")),
		Top:       key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:    key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		PageUp:    key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdown", "page down")),
		Details:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Back:      key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextStyle: key.NewBinding(key.WithKeys("tab", "s"), key.WithHelp("tab", "next style")),
		PrevStyle: key.NewBinding(key.WithKeys("shift+tab", "S"), key.WithHelp("shift+tab", "previous style")),
		Reset:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset filters")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload catalog")),
		Numbers:   key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "numbering")),
		PrevImage: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous image")),
		NextImage: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next image")),
		Open:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy URL")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Search, k.NextStyle, k.Reset, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Search, k.NextStyle, k.PrevStyle, k.Reset, k.Numbers},
		{k.Details, k.Back, k.PrevImage, k.NextImage, k.Open, k.Copy},
		{k.Reload, k.Help, k.Quit},
	}
}
