package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tapelang/tapec/compiler"
	"github.com/tapelang/tapec/internal/logio"
	"github.com/tapelang/tapec/internal/suggest"
	"github.com/tapelang/tapec/lexer"
	"github.com/tapelang/tapec/transpile"
	"github.com/tapelang/tapec/transpile/csrc"
	"github.com/tapelang/tapec/transpile/gosrc"
)

var transpileTargets = map[string]transpile.Target{
	"c":  csrc.Target{},
	"go": gosrc.Target{},
}

func newTranspileCmd(log *logio.Logger) *cobra.Command {
	var targetName string

	cmd := &cobra.Command{
		Use:   "transpile <file>",
		Short: "Translate a program to target-language source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, ok := transpileTargets[targetName]
			if !ok {
				names := make([]string, 0, len(transpileTargets))
				for name := range transpileTargets {
					names = append(names, name)
				}
				if guess := suggest.Closest(targetName, names); guess != "" {
					return fmt.Errorf("unknown --target %q, did you mean %q?", targetName, guess)
				}
				return fmt.Errorf("unknown --target %q", targetName)
			}

			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			program, err := compiler.Compile(lexer.NewFromBytes(src))
			if err != nil {
				return fmt.Errorf("compiling %s: %w", args[0], err)
			}
			return target.Emit(cmd.OutOrStdout(), program)
		},
	}

	cmd.Flags().StringVar(&targetName, "target", "c", "target language: c or go")
	return cmd
}
