package editor

import (
	"strings"

	"github.com/muesli/reflow/truncate"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	graphemeutil "github.com/iw2rmb/quill/internal/grapheme"
)

// menuBox is the popup placement in viewport-local content cells.
type menuBox struct {
	X, Y   int
	Width  int
	Title  bool
	Height int
}

// itemAt maps viewport-local coordinates to an item index.
func (b menuBox) itemAt(x, y int) (int, bool) {
	if x < b.X || x >= b.X+b.Width || y < b.Y || y >= b.Y+b.Height {
		return 0, false
	}
	row := y - b.Y
	if b.Title {
		row--
	}
	return row, row >= 0
}

func (m Model) menuPlacement() (menuBox, bool) {
	st := m.menu
	if !st.Visible || m.buf == nil || len(st.Items) == 0 {
		return menuBox{}, false
	}
	vw := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()
	vh := m.visibleRows()
	if vw <= 0 || vh <= 0 {
		return menuBox{}, false
	}

	anchorX, anchorY, ok := m.DocToScreen(st.Anchor)
	if !ok {
		anchorX, anchorY = 0, 0
	}

	box := menuBox{Title: st.Title != ""}
	for _, it := range st.Items {
		box.Width = maxInt(box.Width, menuRowWidth(it))
	}
	if box.Title {
		box.Width = maxInt(box.Width, graphemeutil.StringWidth(sanitizeSingleLine(st.Title), 4)+2)
	}
	box.Width = minInt(box.Width, minInt(m.cfg.MenuMaxWidth, vw))
	box.Height = len(st.Items)
	if box.Title {
		box.Height++
	}
	box.Height = minInt(box.Height, vh)

	// Below the anchor row when it fits, otherwise above it.
	y := anchorY + 1
	if y+box.Height > vh && anchorY-box.Height >= 0 {
		y = anchorY - box.Height
	}
	box.Y = clampInt(y, 0, maxInt(vh-box.Height, 0))
	box.X = clampInt(anchorX, 0, maxInt(vw-box.Width, 0))
	return box, true
}

func (m Model) renderMenuOverlay(base string) string {
	box, ok := m.menuPlacement()
	if !ok {
		return base
	}
	st := m.menu
	style := m.cfg.Style

	rows := make([]string, 0, box.Height)
	if box.Title {
		title := truncate.StringWithTail(" "+sanitizeSingleLine(st.Title), uint(box.Width), "…")
		rows = append(rows, style.MenuTitle.Render(padCells(title, box.Width)))
	}
	for i, it := range st.Items {
		if len(rows) == box.Height {
			break
		}
		rs := style.MenuItem
		switch {
		case it.Disabled:
			rs = style.MenuDisabled
		case i == st.Selected:
			rs = style.MenuSelected
		}
		rows = append(rows, rs.Render(menuRowText(it, box.Width)))
	}

	leftFrame := m.viewport.Style.GetMarginLeft() + m.viewport.Style.GetBorderLeftSize() + m.viewport.Style.GetPaddingLeft()
	topFrame := m.viewport.Style.GetMarginTop() + m.viewport.Style.GetBorderTopSize() + m.viewport.Style.GetPaddingTop()
	return overlay.Composite(
		strings.Join(rows, "\n"),
		base,
		overlay.Left,
		overlay.Top,
		leftFrame+box.X,
		topFrame+box.Y,
	)
}

func menuRowLeft(it MenuItem) string {
	left := " "
	if it.Icon != "" {
		left += sanitizeSingleLine(it.Icon) + " "
	}
	return left + sanitizeSingleLine(it.Label)
}

func menuRowWidth(it MenuItem) int {
	w := graphemeutil.StringWidth(menuRowLeft(it), 4) + 1
	if it.Detail != "" {
		w += graphemeutil.StringWidth(sanitizeSingleLine(it.Detail), 4) + 2
	}
	return w
}

// menuRowText lays out " icon label    detail " in exactly width cells.
func menuRowText(it MenuItem, width int) string {
	left := menuRowLeft(it)
	detail := ""
	if it.Detail != "" {
		detail = sanitizeSingleLine(it.Detail) + " "
	}
	dw := graphemeutil.StringWidth(detail, 4)
	if dw+2 > width {
		detail, dw = "", 0
	}
	avail := width - dw
	left = truncate.StringWithTail(left, uint(maxInt(avail, 0)), "…")
	return padCells(left, avail) + detail
}

func padCells(s string, width int) string {
	w := graphemeutil.StringWidth(s, 4)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
