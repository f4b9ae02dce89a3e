package tui

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/iw2rmb/quill/assist"
	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/editor"
	"github.com/iw2rmb/quill/rewrite"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type call struct {
	instruction string
	text        string
}

// fakeRewriter answers from a queue of replies; the zero value echoes.
type fakeRewriter struct {
	mu      sync.Mutex
	calls   []call
	replies []func(ctx context.Context) (string, error)
}

func (f *fakeRewriter) Rewrite(ctx context.Context, instruction, text string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{instruction, text})
	var next func(context.Context) (string, error)
	if len(f.replies) > 0 {
		next, f.replies = f.replies[0], f.replies[1:]
	}
	f.mu.Unlock()
	if next == nil {
		return text, nil
	}
	return next(ctx)
}

func (f *fakeRewriter) reply(s string, err error) *fakeRewriter {
	f.replies = append(f.replies, func(context.Context) (string, error) { return s, err })
	return f
}

func (f *fakeRewriter) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

type memClipboard struct{ s string }

func (c *memClipboard) ReadText() (string, error) { return c.s, nil }
func (c *memClipboard) WriteText(s string) error  { c.s = s; return nil }

func newTestModel(t *testing.T, text string, rw rewrite.Rewriter, mut ...func(*Options)) Model {
	t.Helper()
	opts := Options{
		Text:      text,
		Rewriter:  rw,
		Logger:    zerolog.Nop(),
		Clipboard: &memClipboard{},
	}
	for _, f := range mut {
		f(&opts)
	}
	m := New(context.Background(), opts)
	m, _ = update(m, tea.WindowSizeMsg{Width: 60, Height: 12})
	return m
}

// run executes cmd and flattens batches. Commands that block past a short
// deadline (cursor blink, ticks) are dropped.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(150 * time.Millisecond):
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func update(m Model, msg tea.Msg) (Model, []tea.Msg) {
	next, cmd := m.Update(msg)
	return next.(Model), run(cmd)
}

// feed delivers msg and then every host-level message it produces.
func feed(m Model, msg tea.Msg) (Model, []tea.Msg) {
	m, msgs := update(m, msg)
	var rest []tea.Msg
	for _, out := range msgs {
		switch out.(type) {
		case resultMsg, savedMsg, editor.MenuSelectMsg, editor.MenuDismissMsg, editor.ContextMenuMsg:
			var more []tea.Msg
			m, more = feed(m, out)
			rest = append(rest, more...)
		default:
			rest = append(rest, out)
		}
	}
	return m, rest
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = feed(m, keyMsg(k))
	}
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "ctrl+g":
		return tea.KeyMsg{Type: tea.KeyCtrlG}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+q":
		return tea.KeyMsg{Type: tea.KeyCtrlQ}
	case "ctrl+z":
		return tea.KeyMsg{Type: tea.KeyCtrlZ}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "f1":
		return tea.KeyMsg{Type: tea.KeyF1}
	case "alt+i":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i"), Alt: true}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func selectAll(m Model) Model {
	m.Editor().Buffer().SelectAll()
	return m
}

func preset(t *testing.T, id string) assist.Preset {
	t.Helper()
	p, ok := assist.LookupPreset(id)
	require.True(t, ok, id)
	return p
}

func TestQuickActionReplacesSelectionAsOneUndo(t *testing.T) {
	rw := (&fakeRewriter{}).reply("  This is good grammar.\n", nil)
	m := selectAll(newTestModel(t, "this is bad grammer", rw))

	m = press(m, "ctrl+g")
	st := m.Editor().MenuState()
	require.True(t, st.Visible)
	assert.Equal(t, menuTagFloating, st.Tag)
	require.Len(t, st.Items, len(assist.Presets()))
	assert.Equal(t, "grammar", st.Items[2].ID)
	assert.Equal(t, "Grammar", st.Items[2].Label)

	m = press(m, "3")
	buf := m.Editor().Buffer()
	assert.Equal(t, "This is good grammar.", buf.Text())
	assert.Equal(t, buffer.Pos{Row: 0, GraphemeCol: 21}, buf.Cursor())
	assert.Equal(t, assist.StateIdle, m.Site(assist.SiteFloatingMenu).State())
	assert.False(t, m.Editor().MenuVisible())
	assert.Contains(t, m.View(), "Rewritten")

	calls := rw.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, preset(t, "grammar").Instruction, calls[0].instruction)
	assert.Equal(t, "this is bad grammer", calls[0].text)

	m = press(m, "ctrl+z")
	assert.Equal(t, "this is bad grammer", m.Editor().Buffer().Text())
}

func TestQuickActionsNeedSelection(t *testing.T) {
	rw := &fakeRewriter{}
	m := newTestModel(t, "some text", rw)

	m = press(m, "ctrl+g")
	assert.False(t, m.Editor().MenuVisible())
	assert.Contains(t, m.View(), "Select some text first.")
	assert.Empty(t, rw.Calls())
}

func TestBusySiteDisablesMenu(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	rw := &fakeRewriter{}
	rw.replies = append(rw.replies, func(ctx context.Context) (string, error) {
		<-release
		return "", ctx.Err()
	})
	m := selectAll(newTestModel(t, "draft", rw))

	m = press(m, "ctrl+g", "1")
	site := m.Site(assist.SiteFloatingMenu)
	require.True(t, site.Busy())
	assert.Contains(t, m.View(), "Rewriting…")

	m = press(m, "ctrl+g")
	st := m.Editor().MenuState()
	require.True(t, st.Visible)
	assert.Equal(t, "Working…", st.Title)
	for _, it := range st.Items {
		assert.True(t, it.Disabled, it.ID)
	}

	// Accepting a disabled item does nothing.
	m = press(m, "2")
	assert.Len(t, rw.Calls(), 1)
	assert.Equal(t, "draft", m.Editor().Buffer().Text())
}

func TestOpenMenuReenablesWhenRewriteFinishes(t *testing.T) {
	release := make(chan struct{})
	rw := &fakeRewriter{}
	rw.replies = append(rw.replies, func(context.Context) (string, error) {
		<-release
		return "Done.", nil
	})
	m := selectAll(newTestModel(t, "draft", rw))

	m = press(m, "ctrl+g")
	m, msgs := update(m, keyMsg("1"))
	require.Len(t, msgs, 1)
	next, exec := m.Update(msgs[0])
	m = next.(Model)
	require.True(t, m.Site(assist.SiteFloatingMenu).Busy())

	// The other menu acts on the same selection and is held back too.
	m, _ = feed(m, editor.ContextMenuMsg{Pos: buffer.Pos{Row: 0, GraphemeCol: 1}})
	st := m.Editor().MenuState()
	require.True(t, st.Visible)
	assert.Equal(t, menuTagContext, st.Tag)
	assert.Equal(t, "Working…", st.Title)
	for _, it := range st.Items {
		assert.True(t, it.Disabled, it.ID)
	}

	close(release)
	var res tea.Msg
	for _, msg := range run(exec) {
		if r, ok := msg.(resultMsg); ok {
			res = r
		}
	}
	require.NotNil(t, res)
	m, _ = feed(m, res)

	assert.Equal(t, "Done.", m.Editor().Buffer().Text())
	assert.False(t, m.Site(assist.SiteFloatingMenu).Busy())
	st = m.Editor().MenuState()
	require.True(t, st.Visible)
	assert.Equal(t, "Rewrite with AI", st.Title)
	for _, it := range st.Items {
		assert.False(t, it.Disabled, it.ID)
	}
}

func TestDismissCancelsAndIgnoresLateResult(t *testing.T) {
	canceled := make(chan struct{}, 1)
	rw := &fakeRewriter{}
	rw.replies = append(rw.replies, func(ctx context.Context) (string, error) {
		<-ctx.Done()
		canceled <- struct{}{}
		return "", ctx.Err()
	})
	m := selectAll(newTestModel(t, "draft", rw))

	m = press(m, "ctrl+g", "1")
	site := m.Site(assist.SiteFloatingMenu)
	cmd, ok := site.Pending()
	require.True(t, ok)

	m = press(m, "esc")
	assert.Equal(t, assist.StateIdle, site.State())
	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("rewrite context was not cancelled")
	}
	assert.Contains(t, m.View(), "Request cancelled.")

	m, _ = feed(m, resultMsg{res: assist.Result{Command: cmd, Text: "late"}})
	assert.Equal(t, "draft", m.Editor().Buffer().Text())
	assert.Equal(t, assist.StateIdle, site.State())
}

func TestFailureThenRetry(t *testing.T) {
	rw := (&fakeRewriter{}).
		reply("", errors.WithStack(rewrite.ErrQuotaExceeded)).
		reply("Short.", nil)
	m := selectAll(newTestModel(t, "a rather long sentence", rw))

	m = press(m, "ctrl+g", "2")
	site := m.Site(assist.SiteFloatingMenu)
	require.Equal(t, assist.StateFailed, site.State())
	assert.Equal(t, "a rather long sentence", m.Editor().Buffer().Text())
	view := m.View()
	assert.Contains(t, view, "API quota exceeded.")
	assert.Contains(t, view, "ctrl+r")

	m = press(m, "ctrl+r")
	assert.Equal(t, "Short.", m.Editor().Buffer().Text())
	assert.Equal(t, assist.StateIdle, site.State())
	assert.NotContains(t, m.View(), "quota")

	calls := rw.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, calls[0], calls[1])
}

func TestPromptSubmit(t *testing.T) {
	rw := (&fakeRewriter{}).reply("Dear team,", nil)
	m := selectAll(newTestModel(t, "hey all", rw))

	m = press(m, "alt+i")
	require.True(t, m.promptOpen)
	assert.False(t, m.Editor().Focused())
	assert.Contains(t, m.View(), "Ask AI")
	assert.Contains(t, m.View(), "hey all")

	m = press(m, "make it formal", "enter")
	assert.False(t, m.promptOpen)
	assert.True(t, m.Editor().Focused())
	assert.Equal(t, "Dear team,", m.Editor().Buffer().Text())

	calls := rw.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "make it formal", calls[0].instruction)
}

func TestPromptRejectsEmptyInstruction(t *testing.T) {
	rw := &fakeRewriter{}
	m := selectAll(newTestModel(t, "hey all", rw))

	m = press(m, "alt+i", "   ", "enter")
	assert.True(t, m.promptOpen)
	site := m.Site(assist.SitePrompt)
	assert.True(t, errors.Is(site.Err(), assist.ErrEmptyInstruction))
	assert.Contains(t, m.View(), "Enter an instruction.")
	assert.Empty(t, rw.Calls())

	m = press(m, "esc")
	assert.False(t, m.promptOpen)
	assert.Nil(t, site.Err())
}

func TestPromptNeedsSelection(t *testing.T) {
	m := newTestModel(t, "hey all", &fakeRewriter{})
	m = press(m, "alt+i")
	assert.False(t, m.promptOpen)
	assert.Contains(t, m.View(), "Select some text first.")
}

func TestContextMenu(t *testing.T) {
	rw := (&fakeRewriter{}).reply("Polished.", nil)
	m := selectAll(newTestModel(t, "rough", rw))

	m, _ = feed(m, editor.ContextMenuMsg{Pos: buffer.Pos{Row: 0, GraphemeCol: 2}})
	st := m.Editor().MenuState()
	require.True(t, st.Visible)
	assert.Equal(t, menuTagContext, st.Tag)
	assert.Equal(t, "Rewrite with AI", st.Title)
	assert.Equal(t, preset(t, "professional").Label, st.Items[0].Label)

	m = press(m, "enter")
	assert.Equal(t, "Polished.", m.Editor().Buffer().Text())
	require.Len(t, rw.Calls(), 1)
	assert.Equal(t, preset(t, "professional").Instruction, rw.Calls()[0].instruction)
}

func TestStaleSelectionIsNotApplied(t *testing.T) {
	rw := (&fakeRewriter{}).reply("REPLACED", nil)
	m := selectAll(newTestModel(t, "text", rw))

	m = press(m, "ctrl+g")
	var msgs []tea.Msg
	m, msgs = update(m, keyMsg("1"))
	require.Len(t, msgs, 1)
	m, msgs = update(m, msgs[0])

	var res tea.Msg
	for _, msg := range msgs {
		if r, ok := msg.(resultMsg); ok {
			res = r
		}
	}
	require.NotNil(t, res)

	// The user keeps typing while the call is out.
	m = press(m, "x")
	m, _ = feed(m, res)

	assert.Equal(t, "x", m.Editor().Buffer().Text())
	site := m.Site(assist.SiteFloatingMenu)
	require.Equal(t, assist.StateFailed, site.State())
	assert.True(t, errors.Is(site.Err(), assist.ErrStaleSelection))
}

func TestSave(t *testing.T) {
	var written map[string]string
	m := newTestModel(t, "hello", &fakeRewriter{}, func(o *Options) {
		o.Path = "/tmp/notes.md"
		o.WriteFile = func(name string, data []byte, _ os.FileMode) error {
			written = map[string]string{name: string(data)}
			return nil
		}
	})
	assert.False(t, m.Dirty())

	m = press(m, "!")
	assert.True(t, m.Dirty())
	assert.Contains(t, m.View(), "notes.md ●")

	m = press(m, "ctrl+s")
	assert.False(t, m.Dirty())
	assert.Equal(t, map[string]string{"/tmp/notes.md": "!hello"}, written)
	assert.Contains(t, m.View(), "Saved /tmp/notes.md")
}

func TestSaveWithoutPath(t *testing.T) {
	m := newTestModel(t, "hello", &fakeRewriter{})
	m = press(m, "ctrl+s")
	assert.Contains(t, m.View(), "No file to save to")
}

func TestHelpIsModal(t *testing.T) {
	m := newTestModel(t, "hello", &fakeRewriter{})

	m = press(m, "f1")
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "quick actions")

	m = press(m, "z")
	assert.True(t, m.showHelp)
	assert.Equal(t, "hello", m.Editor().Buffer().Text())

	m = press(m, "f1")
	assert.False(t, m.showHelp)
}

func TestQuitConfirmsUnsavedChanges(t *testing.T) {
	m := newTestModel(t, "hello", &fakeRewriter{}, func(o *Options) {
		o.Path = "notes.md"
		o.WriteFile = func(string, []byte, os.FileMode) error { return nil }
	})
	m = press(m, "!")

	m, msgs := feed(m, keyMsg("ctrl+q"))
	assert.Empty(t, msgs)
	assert.Contains(t, m.View(), "Unsaved changes")

	_, msgs = feed(m, keyMsg("ctrl+q"))
	assert.Contains(t, msgs, tea.Msg(tea.QuitMsg{}))
}

func TestFooterHeightShrinksEditor(t *testing.T) {
	rw := (&fakeRewriter{}).reply("", errors.WithStack(rewrite.ErrTransport))
	m := selectAll(newTestModel(t, "hello", rw))
	assert.Equal(t, 11, m.Editor().Height())

	m = press(m, "ctrl+g", "1")
	require.Equal(t, assist.StateFailed, m.Site(assist.SiteFloatingMenu).State())
	assert.Equal(t, 12-len(m.footerLines()), m.Editor().Height())
	assert.Len(t, strings.Split(m.View(), "\n"), 12)
}
