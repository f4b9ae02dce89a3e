package tui

import (
	"context"
	"os"
	"reflect"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/iw2rmb/quill/assist"
	"github.com/iw2rmb/quill/editor"
	"github.com/iw2rmb/quill/internal/logging"
	"github.com/iw2rmb/quill/rewrite"
)

const (
	menuTagFloating = "floating"
	menuTagContext  = "context"
)

type Options struct {
	// Path is written back on save; empty disables saving.
	Path string
	Text string

	Editor   editor.Config
	Keys     KeyMap
	Rewriter rewrite.Rewriter
	Logger   zerolog.Logger

	// Clipboard defaults to the system clipboard.
	Clipboard editor.Clipboard
	// WriteFile defaults to os.WriteFile.
	WriteFile func(name string, data []byte, perm os.FileMode) error
}

var errNoPath = errors.Base("no file path")

type resultMsg struct {
	res assist.Result
}

type savedMsg struct {
	path     string
	revision uint64
	err      error
}

type Model struct {
	opts   Options
	keys   KeyMap
	ctx    context.Context
	logger zerolog.Logger

	editor     editor.Model
	editorKeys editor.KeyMap
	dispatcher *assist.Dispatcher
	sites      map[assist.SiteKind]*assist.Site
	cancels    map[uint64]context.CancelFunc
	// failedSite is where the most recent failure surfaced; retry uses it.
	failedSite assist.SiteKind

	prompt     textinput.Model
	promptOpen bool
	promptSel  assist.Selection

	spinner  spinner.Model
	help     help.Model
	showHelp bool

	width, height int
	editorHeight  int

	notice        string
	noticeIsError bool
	savedRevision uint64
	confirmQuit   bool
}

func New(ctx context.Context, opts Options) Model {
	if reflect.DeepEqual(opts.Keys, KeyMap{}) {
		opts.Keys = DefaultKeyMap()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = systemClipboard{}
	}
	if opts.WriteFile == nil {
		opts.WriteFile = os.WriteFile
	}

	ec := opts.Editor
	ec.Text = opts.Text
	ec.Clipboard = opts.Clipboard
	if reflect.DeepEqual(ec.Style, editor.Style{}) {
		ec.Style = editor.DefaultStyle()
	}
	if reflect.DeepEqual(ec.KeyMap, editor.KeyMap{}) {
		ec.KeyMap = editor.DefaultKeyMap()
	}
	ed := editor.New(ec)

	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "Describe the change…"
	ti.CharLimit = 500

	logger := logging.Component(opts.Logger, "tui")
	m := Model{
		opts:       opts,
		keys:       opts.Keys,
		ctx:        logging.WithContext(ctx, opts.Logger),
		logger:     logger,
		editor:     ed,
		editorKeys: ec.KeyMap,
		dispatcher: assist.NewDispatcher(opts.Rewriter, opts.Logger),
		sites: map[assist.SiteKind]*assist.Site{
			assist.SiteFloatingMenu: assist.NewSite(assist.SiteFloatingMenu),
			assist.SiteContextMenu:  assist.NewSite(assist.SiteContextMenu),
			assist.SitePrompt:       assist.NewSite(assist.SitePrompt),
		},
		cancels: map[uint64]context.CancelFunc{},
		prompt:  ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
	}
	m.savedRevision = ed.Buffer().Revision()
	return m
}

// Run starts the full-screen program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Errorf("running terminal UI: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd { return nil }

// Editor exposes the embedded editor, mainly for tests and hosts.
func (m Model) Editor() editor.Model { return m.editor }

func (m Model) Site(kind assist.SiteKind) *assist.Site { return m.sites[kind] }

func (m Model) Dirty() bool { return m.editor.Buffer().Revision() != m.savedRevision }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		// Room for the overlay box border and padding.
		m.help.Width = maxInt(msg.Width-4, 0)
		m.prompt.Width = maxInt(minInt(msg.Width, promptMaxWidth)-10, 10)
		m.editorHeight = -1
	case resultMsg:
		m = m.finish(msg.res)
	case savedMsg:
		m = m.saved(msg)
	case spinner.TickMsg:
		if m.anyBusy() {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	case editor.MenuSelectMsg:
		m, cmd = m.menuSelected(msg)
	case editor.MenuDismissMsg:
	case editor.ContextMenuMsg:
		m = m.openContextMenu(msg)
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
	default:
		if m.promptOpen {
			m.prompt, cmd = m.prompt.Update(msg)
		} else {
			m.editor, cmd = m.editor.Update(msg)
		}
	}
	m = m.relayout()
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Quit) {
		m.confirmQuit = false
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Dismiss) {
			m.showHelp = false
		}
		return m, nil
	}
	if m.promptOpen {
		return m.updatePromptKey(msg)
	}

	var cmd tea.Cmd
	if m.editor.MenuVisible() {
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.Dirty() && m.opts.Path != "" && !m.confirmQuit {
			m.confirmQuit = true
			m.setNotice("Unsaved changes. Press ctrl+q again to quit.", true)
			return m, nil
		}
		m.cancelAll()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.help.ShowAll = true
	case key.Matches(msg, m.keys.QuickActions):
		m = m.openQuickActions()
	case key.Matches(msg, m.keys.Prompt):
		return m.openPrompt()
	case key.Matches(msg, m.keys.Retry):
		return m.retry()
	case key.Matches(msg, m.keys.Save):
		return m, m.save()
	case key.Matches(msg, m.keys.Dismiss):
		m = m.dismissAll()
	default:
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

func (m Model) updatePromptKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Dismiss):
		m = m.dismissSite(assist.SitePrompt)
		return m.closePrompt(), nil
	case key.Matches(msg, m.keys.Submit):
		m, cmd := m.start(assist.SitePrompt, m.prompt.Value(), m.promptSel)
		if m.sites[assist.SitePrompt].Busy() {
			m = m.closePrompt()
		}
		return m, cmd
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) setNotice(s string, isErr bool) {
	m.notice = s
	m.noticeIsError = isErr
}

func (m Model) anyBusy() bool {
	for _, s := range m.sites {
		if s.Busy() {
			return true
		}
	}
	return false
}

func (m Model) saved(msg savedMsg) Model {
	if errors.Is(msg.err, errNoPath) {
		m.setNotice("No file to save to; start quill with a path.", true)
		return m
	}
	if msg.err != nil {
		m.logger.Error().Err(msg.err).Str("path", msg.path).Msg("save failed")
		m.setNotice("Save failed: "+msg.err.Error(), true)
		return m
	}
	m.savedRevision = msg.revision
	m.logger.Info().Str("path", msg.path).Uint64("revision", msg.revision).Msg("saved")
	m.setNotice("Saved "+msg.path, false)
	return m
}

func (m Model) save() tea.Cmd {
	if m.opts.Path == "" {
		return func() tea.Msg { return savedMsg{err: errors.WithStack(errNoPath)} }
	}
	path := m.opts.Path
	buf := m.editor.Buffer()
	text, rev := buf.Text(), buf.Revision()
	write := m.opts.WriteFile
	return func() tea.Msg {
		err := write(path, []byte(text), 0o644)
		if err != nil {
			err = errors.WithStack(err)
		}
		return savedMsg{path: path, revision: rev, err: err}
	}
}

// relayout resizes the editor when the footer height changed.
func (m Model) relayout() Model {
	if m.width <= 0 || m.height <= 0 {
		return m
	}
	h := maxInt(m.height-len(m.footerLines()), 1)
	if h != m.editorHeight {
		m.editorHeight = h
		m.editor = m.editor.SetSize(m.width, h)
	}
	return m
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
