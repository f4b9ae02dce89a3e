package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/iw2rmb/quill/assist"
	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/internal/logging"
)

var errUsage = errors.Base("usage")

type rewriteOpts struct {
	instruction string
	preset      string
	span        string
	write       bool
}

func newRewriteCmd(o *rootOpts) *cobra.Command {
	var ro rewriteOpts
	cmd := &cobra.Command{
		Use:   "rewrite [file]",
		Short: "Rewrite part of a document without opening the editor",
		Long: `rewrite reads a document from file or stdin, sends the selected rune range
(the whole text by default) to the AI with the given instruction, and prints
the updated document. With -w the file is updated in place.`,
		Example: `  quill rewrite -p grammar notes.md
  quill rewrite -i "Translate to French" --range 0:120 -w notes.md
  echo "teh text" | quill rewrite -p grammar`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runRewrite(cmd, args, ro)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&ro.instruction, "instruction", "i", "", "free-form instruction")
	f.StringVarP(&ro.preset, "preset", "p", "", "quick action: "+presetIDs())
	f.StringVar(&ro.span, "range", "", "rune offsets start:end to rewrite (default whole text)")
	f.BoolVarP(&ro.write, "write", "w", false, "write the result back to the file")
	return cmd
}

func presetIDs() string {
	ids := make([]string, 0, len(assist.Presets()))
	for _, p := range assist.Presets() {
		ids = append(ids, p.ID)
	}
	return strings.Join(ids, ", ")
}

func (ro rewriteOpts) resolveInstruction() (string, error) {
	switch {
	case ro.instruction != "" && ro.preset != "":
		return "", errors.Errorf("%w: --instruction and --preset are mutually exclusive", errUsage)
	case ro.preset != "":
		p, ok := assist.LookupPreset(ro.preset)
		if !ok {
			return "", errors.Errorf("%w: unknown preset %q (want one of %s)", errUsage, ro.preset, presetIDs())
		}
		return p.Instruction, nil
	case strings.TrimSpace(ro.instruction) != "":
		return ro.instruction, nil
	default:
		return "", errors.Errorf("%w: one of --instruction or --preset is required", errUsage)
	}
}

// parseSpan parses "start:end"; either side may be omitted.
func parseSpan(s string, n int) (start, end int, err error) {
	if s == "" {
		return 0, n, nil
	}
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, errors.Errorf("%w: --range must be start:end, got %q", errUsage, s)
	}
	start, end = 0, n
	if a != "" {
		if start, err = strconv.Atoi(a); err != nil {
			return 0, 0, errors.Errorf("%w: --range start %q is not a number", errUsage, a)
		}
	}
	if b != "" {
		if end, err = strconv.Atoi(b); err != nil {
			return 0, 0, errors.Errorf("%w: --range end %q is not a number", errUsage, b)
		}
	}
	if start < 0 || end < start {
		return 0, 0, errors.Errorf("%w: --range %q is empty or reversed", errUsage, s)
	}
	return start, end, nil
}

func (o *rootOpts) runRewrite(cmd *cobra.Command, args []string, ro rewriteOpts) error {
	instruction, err := ro.resolveInstruction()
	if err != nil {
		return err
	}
	if ro.write && len(args) == 0 {
		return errors.Errorf("%w: --write needs a file argument", errUsage)
	}

	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := o.logger(cfg, o.stderr)
	if err != nil {
		return err
	}
	defer closer.Close()
	ctx := logging.WithContext(cmd.Context(), logger)

	var data []byte
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(o.stdin)
	}
	if err != nil {
		return errors.Errorf("reading input: %w", err)
	}

	buf := buffer.New(string(data), buffer.Options{})
	start, end, err := parseSpan(ro.span, buf.RuneLen())
	if err != nil {
		return err
	}

	sel := assist.CaptureOffsets(buf, start, end)
	d := assist.NewDispatcher(o.rewriter(cfg), logger)
	out := d.Invoke(ctx, assist.NewSite(assist.SiteHeadless), instruction, sel, buf)
	if out.Err != nil {
		logger.Debug().Err(out.Err).Msg("rewrite failed")
		return &userError{msg: out.Message, err: out.Err}
	}

	if ro.write {
		if !out.Applied {
			return nil
		}
		info, err := os.Stat(args[0])
		if err != nil {
			return errors.WithStack(err)
		}
		if err := os.WriteFile(args[0], []byte(buf.Text()), info.Mode().Perm()); err != nil {
			return errors.Errorf("writing %s: %w", args[0], err)
		}
		return nil
	}
	_, err = fmt.Fprint(o.stdout, buf.Text())
	return errors.WithStack(err)
}
