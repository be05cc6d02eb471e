// Package gosrc transpiles a compiled instruction list to a freestanding Go
// program, grounded in the same single-pass walk as transpile/csrc.
package gosrc

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tapelang/tapec/instruction"
)

// Target emits program as a self-contained `package main` Go source file.
type Target struct {
	// TapeSize sizes the generated `tape` slice. Zero selects a default
	// of 65536.
	TapeSize int
}

const defaultTapeSize = 65536

// Emit writes a compilable Go translation of program to w.
func (t Target) Emit(w io.Writer, program []instruction.Instruction) error {
	bw := bufio.NewWriter(w)
	size := t.TapeSize
	if size <= 0 {
		size = defaultTapeSize
	}

	fmt.Fprintf(bw, "package main\n\n")
	fmt.Fprintf(bw, "import (\n\t\"bufio\"\n\t\"os\"\n)\n\n")
	fmt.Fprintf(bw, "func main() {\n")
	fmt.Fprintf(bw, "\ttape := make([]byte, %d)\n", size)
	fmt.Fprintf(bw, "\tp := 0\n")
	fmt.Fprintf(bw, "\tin := bufio.NewReader(os.Stdin)\n")
	fmt.Fprintf(bw, "\tout := bufio.NewWriter(os.Stdout)\n")
	fmt.Fprintf(bw, "\tdefer out.Flush()\n")
	fmt.Fprintf(bw, "\t_, _, _ = tape, p, in\n\n")

	indent := "\t"
	depth := 1
	line := func(format string, args ...interface{}) {
		for i := 0; i < depth; i++ {
			fmt.Fprint(bw, indent)
		}
		fmt.Fprintf(bw, format+"\n", args...)
	}

	for _, instr := range program {
		switch instr.Op {
		case instruction.Forward:
			line("p += %d", instr.N)
		case instruction.Backward:
			line("p -= %d", instr.N)
		case instruction.Increment:
			line("tape[p] += %d", instr.V)
		case instruction.SetCell:
			line("tape[p] = %d", instr.V)
		case instruction.SetZero:
			line("tape[p] = 0")
		case instruction.IncrementLoop:
			line("tape[p] = 0 // increments by %d until zero", instr.V)
		case instruction.MultiplyForward:
			line("if tape[p] != 0 {")
			depth++
			line("tape[p+%d] += tape[p] * %d", instr.N, instr.V)
			depth--
			line("}")
		case instruction.MultiplyBackward:
			line("if tape[p] != 0 {")
			depth++
			line("tape[p-%d] += tape[p] * %d", instr.N, instr.V)
			depth--
			line("}")
		case instruction.ForwardLoop:
			line("for tape[p] != 0 {")
			depth++
			line("p += %d", instr.N)
			depth--
			line("}")
		case instruction.BackwardLoop:
			line("for tape[p] != 0 {")
			depth++
			line("p -= %d", instr.N)
			depth--
			line("}")
		case instruction.LoopStart:
			line("for tape[p] != 0 {")
			depth++
		case instruction.LoopEnd:
			depth--
			line("}")
		case instruction.Input:
			line("tape[p], _ = in.ReadByte()")
		case instruction.Output:
			line("out.WriteByte(tape[p])")
		case instruction.Stop:
			line("return")
		}
	}

	fmt.Fprintf(bw, "}\n")
	return bw.Flush()
}
