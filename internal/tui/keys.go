package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/iw2rmb/quill/editor"
)

type KeyMap struct {
	QuickActions key.Binding
	Prompt       key.Binding
	Submit       key.Binding
	Retry        key.Binding
	Dismiss      key.Binding
	Save         key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		QuickActions: key.NewBinding(key.WithKeys("ctrl+g", "alt+a"), key.WithHelp("ctrl+g", "quick actions")),
		Prompt:       key.NewBinding(key.WithKeys("alt+i"), key.WithHelp("alt+i", "ask AI")),
		Submit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Retry:        key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "retry")),
		Dismiss:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss/cancel")),
		Save:         key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Help:         key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:         key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.QuickActions, k.Prompt, k.Save, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.QuickActions, k.Prompt, k.Submit, k.Retry, k.Dismiss},
		{k.Save, k.Help, k.Quit},
	}
}

// helpKeys merges the host and editor bindings for the help overlay.
type helpKeys struct {
	app    KeyMap
	editor editor.KeyMap
}

func (h helpKeys) ShortHelp() []key.Binding { return h.app.ShortHelp() }

func (h helpKeys) FullHelp() [][]key.Binding {
	return append(h.app.FullHelp(), h.editor.FullHelp()...)
}
