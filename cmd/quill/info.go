package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/iw2rmb/quill"
	"github.com/iw2rmb/quill/assist"
)

func newPresetsCmd(o *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the quick actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := color.New(color.FgCyan).SprintFunc()
			w := tabwriter.NewWriter(o.stdout, 0, 4, 2, ' ', 0)
			for i, p := range assist.Presets() {
				fmt.Fprintf(w, "%d\t%s %s\t%s\n", i+1, p.Icon, id(p.ID), p.Label)
			}
			return errors.WithStack(w.Flush())
		},
	}
}

func newConfigCmd(o *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig(cmd)
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			if cfg.File != "" {
				fmt.Fprintf(o.stdout, "# %s\n", cfg.File)
			}
			_, err = o.stdout.Write(out)
			return errors.WithStack(err)
		},
	}
}

func newVersionCmd(o *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the quill version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(o.stdout, quill.Version())
			return errors.WithStack(err)
		},
	}
}
