package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tapelang/tapec/compiler"
	"github.com/tapelang/tapec/internal/dump"
	"github.com/tapelang/tapec/internal/logio"
	"github.com/tapelang/tapec/lexer"
	"github.com/tapelang/tapec/vm"
)

func newReplCmd(log *logio.Logger, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read and execute one line at a time against a shared tape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), flags, log)
		},
	}
}

// pagerWidth reports the terminal width shown in the REPL banner, falling
// back to 80 columns when stdout isn't a terminal. Dump output is not
// wrapped to it.
func pagerWidth(out io.Writer) int {
	f, ok := out.(interface{ Fd() uintptr })
	if !ok {
		return 80
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func runRepl(ctx context.Context, in io.Reader, out io.Writer, flags *globalFlags, log *logio.Logger) error {
	width := pagerWidth(out)
	fmt.Fprintf(out, "tapec repl (%d columns); one balanced line at a time, ^D to exit\n", width)

	machine := vm.New(vmOptions(flags, log, nil, in, out)...)
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		program, err := compiler.Compile(lexer.NewFromBytes([]byte(line)))
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}

		tape, err := machine.Run(ctx, program)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if flags.dump {
			_ = dump.Tape(out, tape)
		}
	}
	return scanner.Err()
}
