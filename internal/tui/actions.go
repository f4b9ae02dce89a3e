package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"gitlab.com/tozd/go/errors"

	"github.com/iw2rmb/quill/assist"
	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/editor"
)

func presetItems(long, disabled bool) []editor.MenuItem {
	presets := assist.Presets()
	items := make([]editor.MenuItem, len(presets))
	for i, p := range presets {
		label := p.Short
		if long {
			label = p.Label
		}
		items[i] = editor.MenuItem{
			ID:       p.ID,
			Icon:     p.Icon,
			Label:    label,
			Detail:   strconv.Itoa(i + 1),
			Disabled: disabled,
		}
	}
	return items
}

// menuTitle is the idle title for tag, or "Working…" while busy.
func menuTitle(tag string, busy bool) string {
	switch {
	case busy:
		return "Working…"
	case tag == menuTagContext:
		return "Rewrite with AI"
	default:
		return "AI ✨"
	}
}

// menuState builds the preset menu for tag. Both menus act on the same
// selection, so either one is disabled while any rewrite is in flight.
func (m Model) menuState(tag string, anchor buffer.Pos) editor.MenuState {
	busy := m.anyBusy()
	return editor.MenuState{
		Tag:    tag,
		Title:  menuTitle(tag, busy),
		Anchor: anchor,
		Items:  presetItems(tag == menuTagContext, busy),
	}
}

// refreshMenu re-renders an open preset menu after a site changed state.
func (m Model) refreshMenu() Model {
	if !m.editor.MenuVisible() {
		return m
	}
	cur := m.editor.MenuState()
	if _, ok := siteForTag(cur.Tag); !ok {
		return m
	}
	st := m.menuState(cur.Tag, cur.Anchor)
	st.Selected = cur.Selected
	m.editor = m.editor.OpenMenu(st)
	return m
}

func siteForTag(tag string) (assist.SiteKind, bool) {
	switch tag {
	case menuTagFloating:
		return assist.SiteFloatingMenu, true
	case menuTagContext:
		return assist.SiteContextMenu, true
	default:
		return 0, false
	}
}

// openQuickActions shows the floating menu at the selection start. Without a
// selection there is nothing to act on and no menu appears.
func (m Model) openQuickActions() Model {
	sel := assist.CaptureSelection(m.editor.Buffer())
	if sel.IsBlank() {
		m.setNotice(assist.UserMessage(assist.ErrEmptySelection), true)
		return m
	}
	m.editor = m.editor.OpenMenu(m.menuState(menuTagFloating, sel.Range.Start))
	return m
}

func (m Model) openContextMenu(msg editor.ContextMenuMsg) Model {
	m.editor = m.editor.OpenMenu(m.menuState(menuTagContext, msg.Pos))
	return m
}

func (m Model) menuSelected(msg editor.MenuSelectMsg) (Model, tea.Cmd) {
	kind, ok := siteForTag(msg.Tag)
	if !ok {
		return m, nil
	}
	p, ok := assist.LookupPreset(msg.Item.ID)
	if !ok {
		return m, nil
	}
	return m.start(kind, p.Instruction, assist.CaptureSelection(m.editor.Buffer()))
}

func (m Model) openPrompt() (Model, tea.Cmd) {
	site := m.sites[assist.SitePrompt]
	if site.Busy() {
		m.setNotice(assist.UserMessage(assist.ErrBusy), true)
		return m, nil
	}
	sel := assist.CaptureSelection(m.editor.Buffer())
	if sel.IsBlank() {
		m.setNotice(assist.UserMessage(assist.ErrEmptySelection), true)
		return m, nil
	}
	m.promptSel = sel
	m.promptOpen = true
	m.prompt.SetValue("")
	m.editor = m.editor.Blur()
	return m, tea.Batch(m.prompt.Focus(), textinput.Blink)
}

func (m Model) closePrompt() Model {
	m.promptOpen = false
	m.prompt.Blur()
	m.editor = m.editor.Focus()
	return m
}

// start begins a command at the given site and returns the command that
// performs the call off the UI goroutine.
func (m Model) start(kind assist.SiteKind, instruction string, sel assist.Selection) (Model, tea.Cmd) {
	site := m.sites[kind]
	cmd, err := m.dispatcher.Begin(site, instruction, sel)
	if err != nil {
		if errors.Is(err, assist.ErrBusy) {
			// The control is disabled while its command runs.
			return m, nil
		}
		m.failedSite = kind
		return m, nil
	}
	m.setNotice("", false)

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancels[cmd.ID] = cancel
	d := m.dispatcher
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return resultMsg{res: d.Execute(ctx, cmd)}
	})
}

func (m Model) finish(res assist.Result) Model {
	if cancel, ok := m.cancels[res.Command.ID]; ok {
		cancel()
		delete(m.cancels, res.Command.ID)
	}
	site, ok := m.sites[res.Command.Site]
	if !ok {
		return m
	}
	out := m.dispatcher.Finish(site, m.editor.Buffer(), res)
	if out.Ignored {
		return m
	}
	m.editor = m.editor.Refresh()
	m = m.refreshMenu()
	if !m.promptOpen {
		m.editor = m.editor.Focus()
	}
	switch {
	case out.State == assist.StateFailed:
		m.failedSite = site.Kind()
	case out.Applied:
		m.setNotice("✓ Rewritten. ctrl+z to undo.", false)
	default:
		m.setNotice("No changes suggested.", false)
	}
	return m
}

// retry re-runs the last failed instruction, on the current selection when
// there is one and on the originally captured text otherwise.
func (m Model) retry() (Model, tea.Cmd) {
	site := m.sites[m.failedSite]
	failed, ok := site.LastFailed()
	if !ok {
		return m, nil
	}
	sel := assist.CaptureSelection(m.editor.Buffer())
	if sel.IsBlank() {
		sel = failed.Selection
	}
	return m.start(site.Kind(), failed.Instruction, sel)
}

// dismissSite cancels the site's in-flight call and clears its error.
func (m Model) dismissSite(kind assist.SiteKind) Model {
	site := m.sites[kind]
	if cmd, ok := site.Pending(); ok {
		if cancel, ok := m.cancels[cmd.ID]; ok {
			cancel()
			delete(m.cancels, cmd.ID)
		}
		m.setNotice(assist.UserMessage(context.Canceled), false)
	}
	site.Dismiss()
	return m.refreshMenu()
}

func (m Model) dismissAll() Model {
	m.setNotice("", false)
	for kind := range m.sites {
		m = m.dismissSite(kind)
	}
	return m
}

func (m Model) cancelAll() {
	for id, cancel := range m.cancels {
		cancel()
		delete(m.cancels, id)
	}
}
