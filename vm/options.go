package vm

import "io"

// Option configures a VM, following the same functional-options shape as
// compiler.Option.
type Option interface{ apply(vm *VM) }

// Options folds a slice of Option into one, in order; nil entries are
// skipped.
func Options(opts ...Option) Option {
	return optionSlice(opts)
}

type optionSlice []Option

func (opts optionSlice) apply(vm *VM) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
}

// WithInput sets the stream Input instructions read from. Defaults to an
// empty reader (every Input instruction is immediately exhausted).
func WithInput(r io.Reader) Option { return inputOption{r} }

type inputOption struct{ io.Reader }

func (o inputOption) apply(vm *VM) { vm.in = o.Reader }

// WithOutput sets the primary stream Output instructions write to,
// replacing any writer set by an earlier WithOutput. Defaults to
// io.Discard. The VM holds this writer for the duration of Execute and
// flushes it on clean termination.
func WithOutput(w io.Writer) Option { return outputOption{w} }

type outputOption struct{ io.Writer }

func (o outputOption) apply(vm *VM) { vm.outWriters = []io.Writer{o.Writer} }

// WithTeeOutput adds an additional writer that receives every byte an
// Output instruction writes, alongside the primary writer from WithOutput.
// Combine several for "run --tee <file>"-style duplication of a program's
// output to both the terminal and a log. A write or flush error on any
// writer aborts the run the same way a WithOutput error does.
func WithTeeOutput(w io.Writer) Option { return teeOutputOption{w} }

type teeOutputOption struct{ io.Writer }

func (o teeOutputOption) apply(vm *VM) { vm.outWriters = append(vm.outWriters, o.Writer) }

// WithLogf installs a trace logging function, called once per dispatched
// instruction. Nil (the default) disables trace logging; tracing every
// instruction is expensive and meant for debugging small programs.
func WithLogf(logf func(mess string, args ...interface{})) Option {
	return logfOption(logf)
}

type logfOption func(mess string, args ...interface{})

func (o logfOption) apply(vm *VM) { vm.logf = o }

// WithInitialCapacity overrides DefaultInitialCapacity for one VM.
func WithInitialCapacity(n int) Option { return initialCapacityOption(n) }

type initialCapacityOption int

func (o initialCapacityOption) apply(vm *VM) { vm.initialCapacity = int(o) }

// WithResizeAmount overrides DefaultResizeAmount for one VM.
func WithResizeAmount(n int) Option { return resizeAmountOption(n) }

type resizeAmountOption int

func (o resizeAmountOption) apply(vm *VM) { vm.resizeAmount = int(o) }

// WithStats accumulates dispatch counters into s for the duration of
// Execute. Nil (the default) disables counting.
func WithStats(s *Stats) Option { return statsOption{s} }

type statsOption struct{ s *Stats }

func (o statsOption) apply(vm *VM) { vm.stats = o.s }
