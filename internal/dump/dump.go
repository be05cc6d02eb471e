// Package dump formats an instruction list and a tape for human inspection,
// for the "tapec compile" and "--dump" CLI surfaces. It walks its input once
// per call and delegates structural detail to go-spew rather than
// hand-rolling a second formatter for nested values.
package dump

import (
	"fmt"
	"io"
	"strconv"

	"github.com/davecgh/go-spew/spew"

	"github.com/tapelang/tapec/instruction"
	"github.com/tapelang/tapec/vm"
)

// spewConfig controls go-spew's verbosity for the Raw* dump variants.
var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Program writes one line per instruction, annotated with its index and,
// for LoopStart/LoopEnd, the instruction it jumps to.
func Program(w io.Writer, program []instruction.Instruction) error {
	width := len(strconv.Itoa(len(program) - 1))
	for i, instr := range program {
		line := fmt.Sprintf("%*d  %v", width, i, instr)
		switch instr.Op {
		case instruction.LoopStart, instruction.LoopEnd:
			line += fmt.Sprintf("  -> %d", instr.Jump)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Tape writes the materialized prefix of a tape as "addr: value" lines,
// collapsing each run of zero cells (of any length) into a single summary line,
// plus a trailing pointer/length line.
func Tape(w io.Writer, t *vm.Tape) error {
	cells := t.Bytes()
	zeroRun := 0
	for addr, v := range cells {
		if v == 0 {
			zeroRun++
			continue
		}
		if zeroRun > 0 {
			if _, err := fmt.Fprintf(w, "  ... %d zero cells ...\n", zeroRun); err != nil {
				return err
			}
			zeroRun = 0
		}
		if _, err := fmt.Fprintf(w, "  @%-6d %3d\n", addr, v); err != nil {
			return err
		}
	}
	if zeroRun > 0 {
		if _, err := fmt.Fprintf(w, "  ... %d zero cells ...\n", zeroRun); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  pointer=%d len=%d\n", t.Pointer(), t.Len())
	return err
}

// RawProgram dumps the full instruction slice structurally, for debugging
// the compiler itself rather than reading compiled output.
func RawProgram(w io.Writer, program []instruction.Instruction) {
	spewConfig.Fdump(w, program)
}
