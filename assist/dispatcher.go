package assist

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/rewrite"
)

// Dispatcher runs selection-scoped commands through a Rewriter.
type Dispatcher struct {
	rw     rewrite.Rewriter
	logger zerolog.Logger
	nextID atomic.Uint64
}

func NewDispatcher(rw rewrite.Rewriter, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		rw:     rw,
		logger: logger.With().Str("component", "assist").Logger(),
	}
}

// Begin validates an invocation and marks site in flight. It performs no
// external call. A busy site rejects the invocation and keeps its pending
// command; a validation failure leaves the site failed without a command to
// retry.
func (d *Dispatcher) Begin(site *Site, instruction string, sel Selection) (Command, error) {
	if site.Busy() {
		return Command{}, errors.WithStack(ErrBusy)
	}
	if sel.IsBlank() {
		err := errors.WithStack(ErrEmptySelection)
		site.fail(nil, err)
		return Command{}, err
	}
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		err := errors.WithStack(ErrEmptyInstruction)
		site.fail(nil, err)
		return Command{}, err
	}

	cmd := Command{
		ID:          d.nextID.Add(1),
		Site:        site.Kind(),
		Instruction: instruction,
		Selection:   sel,
	}
	site.begin(cmd)

	d.logger.Debug().
		Uint64("command", cmd.ID).
		Stringer("site", cmd.Site).
		Int("start", sel.Start).
		Int("end", sel.End).
		Uint64("revision", sel.Revision).
		Msg("command started")
	return cmd, nil
}

// Execute performs the rewrite call for cmd. It never touches a buffer or a
// site, so hosts may run it on a background goroutine.
func (d *Dispatcher) Execute(ctx context.Context, cmd Command) Result {
	start := time.Now()
	text, err := d.rw.Rewrite(ctx, cmd.Instruction, cmd.Selection.Text)
	if err == nil {
		text = strings.TrimSpace(text)
		if text == "" {
			err = errors.WithStack(rewrite.ErrEmptyResult)
		}
	}
	if err != nil {
		text = ""
	}

	d.logger.Debug().
		Uint64("command", cmd.ID).
		Dur("latency", time.Since(start)).
		Stringer("kind", rewrite.KindOf(err)).
		Msg("command executed")
	return Result{Command: cmd, Text: text, Err: err}
}

// Finish applies res to buf if site still tracks its command. On success the
// captured range is replaced as one undoable edit and the cursor lands at
// the end of the inserted text. On any failure buf is left untouched.
func (d *Dispatcher) Finish(site *Site, buf *buffer.Buffer, res Result) Outcome {
	cmd := res.Command
	if !site.tracks(cmd) {
		d.logger.Debug().Uint64("command", cmd.ID).Msg("late result ignored")
		return Outcome{Command: cmd, State: site.State(), Ignored: true}
	}

	if res.Err != nil {
		return d.failed(site, cmd, res.Err)
	}

	ar := buf.ApplyAtRevision(cmd.Selection.Revision, buffer.TextEdit{
		Range: cmd.Selection.Range,
		Text:  res.Text,
	})
	switch ar.Status {
	case buffer.ApplyRevisionMismatch:
		err := errors.Errorf("%w: captured at revision %d, now %d", ErrStaleSelection, cmd.Selection.Revision, ar.Revision)
		return d.failed(site, cmd, err)
	case buffer.ApplyNoop:
		// The service returned the selection unchanged; keep the cursor
		// behavior of an applied edit.
		buf.SetCursor(cmd.Selection.Range.End)
	}

	site.succeed()
	d.logger.Info().
		Uint64("command", cmd.ID).
		Bool("applied", ar.Status == buffer.ApplyOK).
		Uint64("revision", ar.Revision).
		Msg("command succeeded")
	return Outcome{Command: cmd, State: StateSuccess, Applied: ar.Status == buffer.ApplyOK}
}

// Invoke runs Begin, Execute and Finish synchronously.
func (d *Dispatcher) Invoke(ctx context.Context, site *Site, instruction string, sel Selection, buf *buffer.Buffer) Outcome {
	cmd, err := d.Begin(site, instruction, sel)
	if err != nil {
		return Outcome{State: site.State(), Err: err, Message: UserMessage(err)}
	}
	return d.Finish(site, buf, d.Execute(ctx, cmd))
}

func (d *Dispatcher) failed(site *Site, cmd Command, err error) Outcome {
	site.fail(&cmd, err)
	d.logger.Warn().
		Err(err).
		Uint64("command", cmd.ID).
		Stringer("kind", rewrite.KindOf(err)).
		Msg("command failed")
	return Outcome{Command: cmd, State: StateFailed, Err: err, Message: UserMessage(err)}
}
