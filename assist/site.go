package assist

// SiteKind names an invocation surface.
type SiteKind uint8

const (
	SiteContextMenu SiteKind = iota
	SiteFloatingMenu
	SitePrompt
	SiteHeadless
)

func (k SiteKind) String() string {
	switch k {
	case SiteContextMenu:
		return "context-menu"
	case SiteFloatingMenu:
		return "floating-menu"
	case SitePrompt:
		return "prompt"
	case SiteHeadless:
		return "headless"
	default:
		return "unknown"
	}
}

// Site owns at most one pending command. The zero value is not usable; use
// NewSite.
//
// A Site is mutated only from the goroutine that calls Begin and Finish.
type Site struct {
	kind  SiteKind
	state State

	pending *Command
	failed  *Command
	err     error
}

func NewSite(kind SiteKind) *Site {
	return &Site{kind: kind}
}

func (s *Site) Kind() SiteKind { return s.kind }

func (s *Site) State() State { return s.state }

// Busy reports whether a command is in flight; the site's controls stay
// disabled while it is.
func (s *Site) Busy() bool { return s.state == StateInFlight }

// Pending returns the in-flight command.
func (s *Site) Pending() (Command, bool) {
	if s.pending == nil {
		return Command{}, false
	}
	return *s.pending, true
}

// Err returns the failure of the last command, if the site is failed.
func (s *Site) Err() error {
	if s.state != StateFailed {
		return nil
	}
	return s.err
}

// Message returns the user-facing text for Err.
func (s *Site) Message() string { return UserMessage(s.Err()) }

// LastFailed returns the command that last failed at this site, so a host
// can offer to run it again.
func (s *Site) LastFailed() (Command, bool) {
	if s.state != StateFailed || s.failed == nil {
		return Command{}, false
	}
	return *s.failed, true
}

// Dismiss returns the site to idle. A result for a command that was in
// flight is ignored when it arrives.
func (s *Site) Dismiss() {
	s.state = StateIdle
	s.pending = nil
	s.failed = nil
	s.err = nil
}

func (s *Site) begin(cmd Command) {
	s.state = StateInFlight
	s.pending = &cmd
	s.failed = nil
	s.err = nil
}

func (s *Site) tracks(cmd Command) bool {
	return s.state == StateInFlight && s.pending != nil && s.pending.ID == cmd.ID
}

// succeed clears the pending command; a successful site is idle again.
func (s *Site) succeed() {
	s.state = StateIdle
	s.pending = nil
	s.failed = nil
	s.err = nil
}

func (s *Site) fail(cmd *Command, err error) {
	s.state = StateFailed
	s.pending = nil
	s.failed = cmd
	s.err = err
}
