package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/quill/buffer"
)

// MenuItem is one row of the popup menu.
type MenuItem struct {
	ID       string
	Icon     string
	Label    string
	Detail   string
	Disabled bool
}

// MenuState describes the popup menu anchored to a document position.
//
// Tag is echoed back in MenuSelectMsg/MenuDismissMsg so the host can tell
// several menus apart.
type MenuState struct {
	Visible  bool
	Tag      string
	Title    string
	Anchor   buffer.Pos
	Items    []MenuItem
	Selected int
}

type MenuKeyMap struct {
	Accept  key.Binding
	Dismiss key.Binding
	Next    key.Binding
	Prev    key.Binding
}

func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Accept:  key.NewBinding(key.WithKeys("enter", "tab"), key.WithHelp("enter", "apply")),
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Next:    key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
		Prev:    key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "prev")),
	}
}

func (m Model) MenuState() MenuState {
	st := m.menu
	st.Items = append([]MenuItem(nil), m.menu.Items...)
	return st
}

func (m Model) MenuVisible() bool { return m.menu.Visible }

// OpenMenu shows the popup. A menu with no items stays hidden.
func (m Model) OpenMenu(st MenuState) Model {
	st.Items = append([]MenuItem(nil), st.Items...)
	st.Visible = len(st.Items) > 0
	if st.Visible {
		st.Selected = clampInt(st.Selected, 0, len(st.Items)-1)
	}
	m.menu = st
	return m
}

func (m Model) CloseMenu() Model {
	m.menu = MenuState{}
	return m
}

// updateMenuKey handles keys while the menu is open. The menu is modal:
// unhandled keys are swallowed.
func (m Model) updateMenuKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	km := m.cfg.MenuKeyMap
	n := len(m.menu.Items)
	switch {
	case key.Matches(msg, km.Dismiss):
		return m.dismissMenu()
	case key.Matches(msg, km.Next):
		m.menu.Selected = (m.menu.Selected + 1) % n
	case key.Matches(msg, km.Prev):
		m.menu.Selected = (m.menu.Selected - 1 + n) % n
	case key.Matches(msg, km.Accept):
		return m.acceptMenu(m.menu.Selected)
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9':
		if i := int(msg.Runes[0] - '1'); i < n {
			return m.acceptMenu(i)
		}
	}
	return m, nil
}

func (m Model) acceptMenu(i int) (Model, tea.Cmd) {
	if i < 0 || i >= len(m.menu.Items) || m.menu.Items[i].Disabled {
		return m, nil
	}
	out := MenuSelectMsg{Tag: m.menu.Tag, Index: i, Item: m.menu.Items[i]}
	m.menu = MenuState{}
	return m, func() tea.Msg { return out }
}

func (m Model) dismissMenu() (Model, tea.Cmd) {
	out := MenuDismissMsg{Tag: m.menu.Tag}
	m.menu = MenuState{}
	return m, func() tea.Msg { return out }
}
