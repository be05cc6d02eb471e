package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tapelang/tapec/internal/config"
	"github.com/tapelang/tapec/internal/logio"
)

// globalFlags holds the persistent flags shared by every subcommand, and
// the .tapecrc.yaml defaults they fall back to when left unset.
type globalFlags struct {
	trace      bool
	timeout    time.Duration
	memInitial int
	memResize  int
	dump       bool
}

func newRootCmd(log *logio.Logger) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "tapec",
		Short:         "Compile and run tape-machine programs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			applyConfigDefaults(cmd, flags, cfg)
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&flags.trace, "trace", false, "log every dispatched instruction")
	root.PersistentFlags().DurationVar(&flags.timeout, "timeout", 0, "abort execution after this long (0 disables)")
	root.PersistentFlags().IntVar(&flags.memInitial, "mem-initial", 0, "initial tape length (0 uses the VM default)")
	root.PersistentFlags().IntVar(&flags.memResize, "mem-resize", 0, "tape growth stride (0 uses the VM default)")
	root.PersistentFlags().BoolVar(&flags.dump, "dump", false, "print a tape/instruction dump after the command runs")

	root.AddCommand(
		newRunCmd(log, flags),
		newCompileCmd(log, flags),
		newTranspileCmd(log),
		newReplCmd(log, flags),
	)

	return root
}

// applyConfigDefaults fills in flags the user did not pass on the command
// line from cfg, so .tapecrc.yaml acts as a project-local default rather
// than an override.
func applyConfigDefaults(cmd *cobra.Command, flags *globalFlags, cfg config.Config) {
	set := cmd.Flags()
	if !set.Changed("mem-initial") && cfg.MemInitial != 0 {
		flags.memInitial = cfg.MemInitial
	}
	if !set.Changed("mem-resize") && cfg.MemResize != 0 {
		flags.memResize = cfg.MemResize
	}
	if !set.Changed("trace") && cfg.Trace {
		flags.trace = cfg.Trace
	}
	if !set.Changed("timeout") && cfg.Timeout != 0 {
		flags.timeout = cfg.Timeout
	}
}
