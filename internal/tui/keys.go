package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Recalc key.Binding
	AddRow key.Binding
	Remove key.Binding
	Select key.Binding
	EndNow key.Binding
	Sort   key.Binding
	Copy   key.Binding
	Export key.Binding
	Tab1   key.Binding
	Tab2   key.Binding
	Tab3   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Help   key.Binding
	Enter  key.Binding
	Back   key.Binding
	Up     key.Binding
	Down   key.Binding
	Quit   key.Binding
}

// Letters go to the text inputs, so every action sits on a control or
// function key.
var keys = keyMap{
	Recalc: key.NewBinding(
		key.WithKeys("f5"),
		key.WithHelp("f5", "recalculate"),
	),
	AddRow: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "add row"),
	),
	Remove: key.NewBinding(
		key.WithKeys("ctrl+d", "delete"),
		key.WithHelp("ctrl+d", "remove selected"),
	),
	Select: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "select row"),
	),
	EndNow: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "end = now"),
	),
	Sort: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "sort by start"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy summary"),
	),
	Export: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "export"),
	),
	Tab1: key.NewBinding(
		key.WithKeys("f2"),
		key.WithHelp("f2", "calculator"),
	),
	Tab2: key.NewBinding(
		key.WithKeys("f3"),
		key.WithHelp("f3", "chart"),
	),
	Tab3: key.NewBinding(
		key.WithKeys("f4"),
		key.WithHelp("f4", "settings"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Recalc, k.AddRow, k.Select, k.EndNow, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Recalc, k.AddRow, k.Remove, k.Select},
		{k.EndNow, k.Sort, k.Copy, k.Export},
		{k.Tab1, k.Tab2, k.Tab3, k.Help},
		{k.Next, k.Prev, k.Up, k.Down, k.Quit},
	}
}
