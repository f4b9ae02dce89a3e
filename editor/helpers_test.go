package editor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/quill/buffer"
)

type memClipboard struct {
	s      string
	writes int
}

func (c *memClipboard) ReadText() (string, error) { return c.s, nil }
func (c *memClipboard) WriteText(s string) error  { c.s = s; c.writes++; return nil }

func wrapWith(open, close string) lipgloss.Style {
	return lipgloss.NewStyle().Transform(func(s string) string { return open + s + close })
}

// markStyle renders cursor and selection with visible brackets instead of ANSI.
func markStyle() Style {
	return Style{
		Cursor:    wrapWith("[", "]"),
		Selection: wrapWith("{", "}"),
	}
}

func viewLines(m Model) []string {
	lines := strings.Split(m.View(), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return lines
}

func assertLines(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("line count: got %d (%q), want %d (%q)", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func bufferPos(row, col int) buffer.Pos { return buffer.Pos{Row: row, GraphemeCol: col} }

var testKeys = map[string]tea.KeyType{
	"left":            tea.KeyLeft,
	"right":           tea.KeyRight,
	"up":              tea.KeyUp,
	"down":            tea.KeyDown,
	"home":            tea.KeyHome,
	"end":             tea.KeyEnd,
	"ctrl+home":       tea.KeyCtrlHome,
	"ctrl+end":        tea.KeyCtrlEnd,
	"shift+left":      tea.KeyShiftLeft,
	"shift+right":     tea.KeyShiftRight,
	"shift+up":        tea.KeyShiftUp,
	"shift+down":      tea.KeyShiftDown,
	"shift+home":      tea.KeyShiftHome,
	"shift+end":       tea.KeyShiftEnd,
	"pgup":            tea.KeyPgUp,
	"pgdown":          tea.KeyPgDown,
	"ctrl+a":          tea.KeyCtrlA,
	"ctrl+c":          tea.KeyCtrlC,
	"ctrl+x":          tea.KeyCtrlX,
	"ctrl+v":          tea.KeyCtrlV,
	"ctrl+z":          tea.KeyCtrlZ,
	"ctrl+y":          tea.KeyCtrlY,
	"backspace":       tea.KeyBackspace,
	"delete":          tea.KeyDelete,
	"enter":           tea.KeyEnter,
	"tab":             tea.KeyTab,
	"ctrl+up":         tea.KeyCtrlUp,
	"ctrl+down":       tea.KeyCtrlDown,
	"ctrl+shift+down": tea.KeyCtrlShiftDown,
	"esc":             tea.KeyEsc,
}

// keyMsg builds a KeyMsg from its String() form; an "alt+" prefix sets Alt.
func keyMsg(s string) tea.KeyMsg {
	alt := strings.HasPrefix(s, "alt+")
	s = strings.TrimPrefix(s, "alt+")
	kt, ok := testKeys[s]
	if !ok {
		panic("unknown test key " + s)
	}
	return tea.KeyMsg{Type: kt, Alt: alt}
}

func runesMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mousePress(b tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: b, Action: tea.MouseActionPress}
}
