// Package vm executes an instruction.Instruction list produced by the
// compiler package: the hot dispatch loop, tape auto-growth, and blocking
// byte I/O.
package vm

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/tapelang/tapec/instruction"
	"github.com/tapelang/tapec/internal/flushio"
	"github.com/tapelang/tapec/internal/panicerr"
)

// DefaultInitialCapacity is INITIAL_MEMORY_CAPACITY: the tape's starting
// materialized length.
const DefaultInitialCapacity = 1024

// DefaultResizeAmount is MEMORY_RESIZE_AMOUNT: the stride the tape grows by
// whenever the pointer would pass its materialized end.
const DefaultResizeAmount = 1024

// VM holds one run's configuration: its I/O streams, tape sizing
// parameters, and optional trace/stats hooks. Build one with New, then run
// a program with Execute (fresh tape every call) or Run (tape persists
// across calls on the same VM).
type VM struct {
	in         io.Reader
	outWriters []io.Writer
	out        flushio.WriteFlusher

	initialCapacity int
	resizeAmount    int

	logf  func(mess string, args ...interface{})
	stats *Stats

	tape *Tape
}

// New builds a VM from the given options. Defaults: empty input, discarded
// output, DefaultInitialCapacity/DefaultResizeAmount tape sizing, no trace
// logging, no stats collection.
func New(opts ...Option) *VM {
	vm := &VM{
		in:              bytes.NewReader(nil),
		outWriters:      []io.Writer{io.Discard},
		initialCapacity: DefaultInitialCapacity,
		resizeAmount:    DefaultResizeAmount,
	}
	Options(opts...).apply(vm)
	vm.out = combineOutputs(vm.outWriters)
	return vm
}

// combineOutputs wraps each writer in its own flushio.WriteFlusher and
// fans Output instruction bytes out to all of them, so WithTeeOutput can
// duplicate a run's output (e.g. to both the terminal and a log file)
// without the dispatch loop knowing how many writers it's feeding.
func combineOutputs(writers []io.Writer) flushio.WriteFlusher {
	wfs := make([]flushio.WriteFlusher, len(writers))
	for i, w := range writers {
		wfs[i] = flushio.NewWriteFlusher(w)
	}
	return flushio.WriteFlushers(wfs...)
}

// Execute runs program to completion, or aborts on a fatal condition such
// as an unbounded loop or a tape underflow, and returns the final tape,
// primarily for test inspection; production callers may ignore it. ctx is
// checked for cancellation between every dispatched instruction; there is
// no finer-grained cancellation point than that.
func Execute(ctx context.Context, program []instruction.Instruction, opts ...Option) (*Tape, error) {
	vm := New(opts...)
	err := vm.run(ctx, program)
	return vm.tape, err
}

// Run runs program against the VM's tape, returning it for callers that
// already hold a *VM. The tape is built lazily on first use and then
// persists across calls, so a REPL can share one VM (and its tape) across
// lines.
func (vm *VM) Run(ctx context.Context, program []instruction.Instruction) (*Tape, error) {
	err := vm.run(ctx, program)
	return vm.tape, err
}

func (vm *VM) run(ctx context.Context, program []instruction.Instruction) error {
	if vm.tape == nil {
		vm.tape = newTape(vm.initialCapacity, vm.resizeAmount)
	}

	err := panicerr.Recover("vm", func() error {
		return vm.exec(ctx, program)
	})
	if err == nil {
		return nil
	}
	var he haltError
	if errors.As(err, &he) {
		return he.error
	}
	return err
}

func (vm *VM) tracef(mess string, args ...interface{}) {
	if vm.logf != nil {
		vm.logf(mess, args...)
	}
}

func (vm *VM) halt(err error) {
	if ferr := vm.out.Flush(); err == nil {
		err = ferr
	}
	panic(haltError{err})
}

func (vm *VM) exec(ctx context.Context, program []instruction.Instruction) error {
	t := vm.tape
	pc := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		instr := program[pc]
		vm.stats.record(instr.Op)
		vm.tracef("@%d %v p=%d c=%d", pc, instr, t.pointer, t.get(t.pointer))

		switch instr.Op {
		case instruction.Forward:
			t.pointer += instr.N
			t.ensure(t.pointer)
			pc++

		case instruction.Backward:
			if instr.N > t.pointer {
				vm.halt(BackwardUnderflowError{Pointer: t.pointer, N: instr.N})
			}
			t.pointer -= instr.N
			pc++

		case instruction.Increment:
			t.set(t.pointer, t.get(t.pointer)+instr.V)
			pc++

		case instruction.SetCell:
			t.set(t.pointer, instr.V)
			pc++

		case instruction.SetZero:
			t.set(t.pointer, 0)
			pc++

		case instruction.IncrementLoop:
			c := t.get(t.pointer)
			if int(c)%int(instr.V) != 0 {
				vm.halt(InfiniteLoopError{Pointer: t.pointer, Value: instr.V, Cell: c})
			}
			t.set(t.pointer, 0)
			pc++

		case instruction.MultiplyForward:
			addr := t.pointer + instr.N
			t.ensure(addr)
			if c := t.get(t.pointer); c != 0 {
				t.set(addr, t.get(addr)+c*instr.V)
			}
			pc++

		case instruction.MultiplyBackward:
			addr := t.pointer - instr.N
			if addr < 0 {
				vm.halt(BackwardUnderflowError{Pointer: t.pointer, N: instr.N})
			}
			if c := t.get(t.pointer); c != 0 {
				t.set(addr, t.get(addr)+c*instr.V)
			}
			pc++

		case instruction.ForwardLoop:
			for t.get(t.pointer) != 0 {
				t.pointer += instr.N
				t.ensure(t.pointer)
				vm.stats.recordLoopIteration()
			}
			pc++

		case instruction.BackwardLoop:
			for t.get(t.pointer) != 0 {
				if instr.N > t.pointer {
					vm.halt(BackwardUnderflowError{Pointer: t.pointer, N: instr.N})
				}
				t.pointer -= instr.N
				vm.stats.recordLoopIteration()
			}
			pc++

		case instruction.LoopStart:
			if t.get(t.pointer) == 0 {
				pc = instr.Jump
			} else {
				pc++
			}

		case instruction.LoopEnd:
			if t.get(t.pointer) != 0 {
				pc = instr.Jump
				vm.stats.recordLoopIteration()
			} else {
				pc++
			}

		case instruction.Input:
			var b [1]byte
			n, err := vm.in.Read(b[:])
			if n == 0 {
				if err == nil {
					err = io.EOF
				}
				vm.halt(InputExhaustedError{Pointer: t.pointer, Err: err})
			}
			t.set(t.pointer, b[0])
			pc++

		case instruction.Output:
			if _, err := vm.out.Write([]byte{t.get(t.pointer)}); err != nil {
				vm.halt(err)
			}
			pc++

		case instruction.Stop:
			return vm.out.Flush()
		}
	}
}
