package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Mode    key.Binding
	Tab     key.Binding
	Bid     key.Binding
	Offer   key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Mode:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "switch mode")),
	Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch tab")),
	Bid:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "place bid")),
	Offer:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "make offer")),
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) pageHelp() []key.Binding {
	return []key.Binding{k.Mode, k.Tab, k.Bid, k.Offer, k.Quit}
}

func (k keyMap) dialogHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}
