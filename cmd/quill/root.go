package main

import (
	"context"
	"io"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/iw2rmb/quill/internal/config"
	"github.com/iw2rmb/quill/internal/logging"
	"github.com/iw2rmb/quill/internal/tui"
	"github.com/iw2rmb/quill/rewrite"
)

// env is the process surface the commands touch.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
}

type rootOpts struct {
	env
	configFile string
}

// userError carries a message meant for the terminal as is, with the
// underlying cause kept for logs.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

func execute(ctx context.Context, args []string, e env) int {
	cmd := newRootCmd(&rootOpts{env: e})
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(e.stderr, "error: ")
		color.New(color.FgRed).Fprintln(e.stderr, err.Error())
		return 1
	}
	return 0
}

func newRootCmd(o *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quill [file]",
		Short: "Terminal rich-text editor with AI rewriting",
		Long: `quill edits a text document in the terminal. Select text and press
ctrl+g for quick actions, alt+i for a free-form instruction, or right-click
the selection for the rewrite menu.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runEditor(cmd, args)
		},
	}
	cmd.SetIn(o.stdin)
	cmd.SetOut(o.stdout)
	cmd.SetErr(o.stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/quill/config.yaml)")
	pf.String("log-file", "", "write JSON logs to this file")
	pf.String("log-level", "", "log level: trace, debug, info, warn, error")
	pf.String("model", "", "Gemini model name")

	cmd.AddCommand(
		newRewriteCmd(o),
		newPresetsCmd(o),
		newConfigCmd(o),
		newVersionCmd(o),
	)
	return cmd
}

func (o *rootOpts) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		File:  o.configFile,
		Flags: cmd.Flags(),
	})
	if err != nil {
		return config.Config{}, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// logger builds the command logger. console is used only when no log file
// is configured.
func (o *rootOpts) logger(cfg config.Config, console io.Writer) (zerolog.Logger, io.Closer, error) {
	lvl, err := cfg.LogLevel()
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	return logging.New(logging.Options{
		File:    cfg.Log.File,
		Console: console,
		Level:   lvl,
		NoColor: color.NoColor,
	})
}

func (o *rootOpts) rewriter(cfg config.Config) rewrite.Rewriter {
	ro := cfg.RewriteOptions()
	ro.Getenv = o.getenv
	return rewrite.WithRetry(rewrite.NewGemini(ro), cfg.RetryPolicy())
}

func (o *rootOpts) runEditor(cmd *cobra.Command, args []string) error {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return err
	}
	// The editor owns the terminal; logs go to the configured file or nowhere.
	logger, closer, err := o.logger(cfg, nil)
	if err != nil {
		return err
	}
	defer closer.Close()

	var path, text string
	if len(args) == 1 {
		path = args[0]
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// A new file is created on first save.
		case err != nil:
			return errors.Errorf("reading %s: %w", path, err)
		default:
			text = string(data)
		}
	}

	logger.Info().Str("path", path).Str("model", cfg.Gemini.Model).Str("config", cfg.File).Msg("starting editor")
	return tui.Run(cmd.Context(), tui.Options{
		Path:     path,
		Text:     text,
		Editor:   cfg.EditorConfig(),
		Rewriter: o.rewriter(cfg),
		Logger:   logger,
	})
}
