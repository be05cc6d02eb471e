package main

import (
	"github.com/spf13/cobra"

	"github.com/tapelang/tapec/internal/dump"
	"github.com/tapelang/tapec/internal/logio"
)

func newCompileCmd(log *logio.Logger, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "compile <file>",
		Short: "Print the optimized instruction list for a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := compileFile(args[0], flags, log)
			if err != nil {
				return err
			}
			return dump.Program(cmd.OutOrStdout(), program)
		},
	}
}
