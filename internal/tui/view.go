package tui

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/iw2rmb/quill/assist"
)

const promptMaxWidth = 64

// siteOrder fixes the footer order of per-site errors.
var siteOrder = []assist.SiteKind{assist.SiteFloatingMenu, assist.SiteContextMenu, assist.SitePrompt}

func (m Model) View() string {
	view := m.editor.View()
	if m.promptOpen {
		view = m.overlayPrompt(view)
	}
	if m.showHelp {
		box := boxStyle.Render(boxTitleStyle.Render("Keys") + "\n" + m.help.View(helpKeys{app: m.keys, editor: m.editorKeys}))
		view = overlay.Composite(box, view, overlay.Center, overlay.Center, 0, 0)
	}
	footer := m.footerLines()
	if len(footer) == 0 {
		return view
	}
	return view + "\n" + strings.Join(footer, "\n")
}

func (m Model) promptBox() string {
	width := maxInt(minInt(m.width, promptMaxWidth)-4, 10)
	preview := strings.Join(strings.Fields(m.promptSel.Text), " ")
	preview = truncate.StringWithTail(preview, uint(width), "…")

	lines := []string{
		boxTitleStyle.Render("Ask AI"),
		previewStyle.Render(preview),
		m.prompt.View(),
	}
	site := m.sites[assist.SitePrompt]
	if msg := site.Message(); msg != "" {
		lines = append(lines, errorStyle.Render(msg))
	}
	lines = append(lines, hintStyle.Render("enter submit, esc cancel"))
	return boxStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// overlayPrompt places the prompt box under the selection end, or centred
// when that position is off screen.
func (m Model) overlayPrompt(bg string) string {
	box := m.promptBox()
	x, y, ok := m.editor.DocToScreen(m.promptSel.Range.End)
	if !ok {
		return overlay.Composite(box, bg, overlay.Center, overlay.Center, 0, 0)
	}
	bw, bh := lipgloss.Width(box), lipgloss.Height(box)
	x = maxInt(minInt(x, m.width-bw), 0)
	y++
	if y+bh > m.editorHeight {
		y = maxInt(y-bh-1, 0)
	}
	return overlay.Composite(box, bg, overlay.Left, overlay.Top, x, y)
}

// footerLines renders the status line followed by one block per failed
// site. Its length drives the editor height.
func (m Model) footerLines() []string {
	if m.width <= 0 {
		return nil
	}
	lines := []string{m.statusLine()}
	for _, kind := range siteOrder {
		site := m.sites[kind]
		if site.Err() == nil || (kind == assist.SitePrompt && m.promptOpen) {
			continue
		}
		text := "⚠ " + site.Message()
		if _, ok := site.LastFailed(); ok {
			text += " (ctrl+r retry, esc dismiss)"
		} else {
			text += " (esc dismiss)"
		}
		for _, l := range strings.Split(wordwrap.String(text, m.width), "\n") {
			lines = append(lines, errorStyle.Render(l))
		}
	}
	return lines
}

func (m Model) statusLine() string {
	name := "[scratch]"
	if m.opts.Path != "" {
		name = filepath.Base(m.opts.Path)
	}
	left := statusStyle.Render(" " + name)
	if m.Dirty() {
		left += dirtyStyle.Render(" ●")
	}
	if m.anyBusy() {
		left += statusStyle.Render(" " + m.spinner.View() + "Rewriting…")
	}
	if m.notice != "" {
		st := noticeStyle
		if m.noticeIsError {
			st = dirtyStyle
		}
		left += st.Render("  " + m.notice)
	}
	right := statusStyle.Render("f1 help ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return truncate.StringWithTail(left, uint(maxInt(m.width, 0)), "…")
	}
	return left + statusStyle.Render(strings.Repeat(" ", gap)) + right
}
