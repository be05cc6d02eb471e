// Package csrc transpiles a compiled instruction list to freestanding C,
// walking it once with one case per instruction variant, the same shape
// every consumer of the compiler's output uses.
package csrc

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tapelang/tapec/instruction"
)

// Target emits program as a single-file C program using a fixed-size tape
// that the generated program never grows (transpiled programs do not share
// the interpreter's Tape type).
type Target struct {
	// TapeSize is the `tape[N]` array length emitted in the generated
	// source. Zero selects a default of 65536, generous enough for most
	// programs without the generated C needing to reimplement growth.
	TapeSize int
}

const defaultTapeSize = 65536

// Emit writes a compilable C translation of program to w.
func (t Target) Emit(w io.Writer, program []instruction.Instruction) error {
	bw := bufio.NewWriter(w)
	size := t.TapeSize
	if size <= 0 {
		size = defaultTapeSize
	}

	fmt.Fprintf(bw, "#include <stdio.h>\n\n")
	fmt.Fprintf(bw, "static unsigned char tape[%d];\n", size)
	fmt.Fprintf(bw, "static unsigned int p = 0;\n\n")
	fmt.Fprintf(bw, "int main(void) {\n")

	indent := "    "
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
			line("p += %d;", instr.N)
		case instruction.Backward:
			line("p -= %d;", instr.N)
		case instruction.Increment:
			line("tape[p] += %d;", instr.V)
		case instruction.SetCell:
			line("tape[p] = %d;", instr.V)
		case instruction.SetZero:
			line("tape[p] = 0;")
		case instruction.IncrementLoop:
			line("tape[p] = 0; /* increments by %d until zero */", instr.V)
		case instruction.MultiplyForward:
			line("if (tape[p]) tape[p + %d] += tape[p] * %d;", instr.N, instr.V)
		case instruction.MultiplyBackward:
			line("if (tape[p]) tape[p - %d] += tape[p] * %d;", instr.N, instr.V)
		case instruction.ForwardLoop:
			line("while (tape[p]) p += %d;", instr.N)
		case instruction.BackwardLoop:
			line("while (tape[p]) p -= %d;", instr.N)
		case instruction.LoopStart:
			line("while (tape[p]) {")
			depth++
		case instruction.LoopEnd:
			depth--
			line("}")
		case instruction.Input:
			line("tape[p] = (unsigned char)getchar();")
		case instruction.Output:
			line("putchar(tape[p]);")
		case instruction.Stop:
			line("return 0;")
		}
	}

	fmt.Fprintf(bw, "}\n")
	return bw.Flush()
}
