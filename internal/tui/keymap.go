package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the chart view.
type KeyMap struct {
	// Palace selection
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding

	// Cursor
	NextKe   key.Binding
	PrevKe   key.Binding
	NextHour key.Binding
	PrevHour key.Binding
	NextDay  key.Binding
	PrevDay  key.Binding
	Now      key.Binding
	Undo     key.Binding

	// Actions
	Method  key.Binding
	View    key.Binding
	Detail  key.Binding
	Open    key.Binding
	Save    key.Binding
	History key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "west palace"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "east palace"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "south palace"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "north palace"),
		),
		NextKe: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "next 刻"),
		),
		PrevKe: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "previous 刻"),
		),
		NextHour: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next hour"),
		),
		PrevHour: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous hour"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "next day"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "previous day"),
		),
		Now: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "now"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Method: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "拆補/置閏"),
		),
		View: key.NewBinding(
			key.WithKeys("v", "tab"),
			key.WithHelp("v", "hour/minute/day"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "palace detail"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open solar term"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save chart"),
		),
		History: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "history"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.NextKe, k.PrevKe, k.NextHour, k.PrevHour},
		{k.NextDay, k.PrevDay, k.Now, k.Undo},
		{k.Method, k.View, k.Detail, k.Open},
		{k.Save, k.History, k.Help, k.Quit},
	}
}
