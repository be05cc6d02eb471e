package main

import (
	"fmt"
	"io"
	"os"

	"github.com/tapelang/tapec/compiler"
	"github.com/tapelang/tapec/instruction"
	"github.com/tapelang/tapec/internal/logio"
	"github.com/tapelang/tapec/lexer"
	"github.com/tapelang/tapec/vm"
)

// traceLogf returns a printf-style callback for compiler.WithLogf and
// vm.WithLogf that routes every trace message through a logio.Writer line
// buffer before handing it to log's leveled output. Going through the
// buffer (rather than calling log.Leveledf directly) means a trace message
// that happens to embed a newline still surfaces as separate TRACE lines
// instead of one line with an embedded break.
func traceLogf(log *logio.Logger, level string) func(mess string, args ...interface{}) {
	w := &logio.Writer{Logf: log.Leveledf(level)}
	return func(mess string, args ...interface{}) {
		fmt.Fprintf(w, mess+"\n", args...)
	}
}

// compileFile lexes and compiles the source at path, tracing through log's
// "TRACE" level when flags.trace is set.
func compileFile(path string, flags *globalFlags, log *logio.Logger) ([]instruction.Instruction, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var opts []compiler.Option
	if flags.trace {
		opts = append(opts, compiler.WithLogf(traceLogf(log, "TRACE")))
	}

	program, err := compiler.Compile(lexer.NewFromBytes(src), opts...)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", path, err)
	}
	return program, nil
}

// vmOptions builds the vm.Option list common to run and repl, wiring flags
// into tape sizing, trace logging, and stats collection around the given
// I/O streams. extra is appended last, so callers like --tee can add
// options (e.g. vm.WithTeeOutput) without vmOptions knowing about them.
func vmOptions(flags *globalFlags, log *logio.Logger, stats *vm.Stats, in io.Reader, out io.Writer, extra ...vm.Option) []vm.Option {
	opts := []vm.Option{
		vm.WithInput(in),
		vm.WithOutput(out),
	}
	if flags.memInitial > 0 {
		opts = append(opts, vm.WithInitialCapacity(flags.memInitial))
	}
	if flags.memResize > 0 {
		opts = append(opts, vm.WithResizeAmount(flags.memResize))
	}
	if flags.trace {
		opts = append(opts, vm.WithLogf(traceLogf(log, "TRACE")))
	}
	if stats != nil {
		opts = append(opts, vm.WithStats(stats))
	}
	return append(opts, extra...)
}
