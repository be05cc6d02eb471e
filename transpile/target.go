// Package transpile defines the common interface the csrc and gosrc
// emitters implement. Each emitter turns LoopStart/LoopEnd pairs into
// nested target-language loops itself, in emission order; this package
// holds no shared jump analysis.
package transpile

import (
	"io"

	"github.com/tapelang/tapec/instruction"
)

// Target emits program as target-language source, walking the instruction
// list exactly once.
type Target interface {
	Emit(w io.Writer, program []instruction.Instruction) error
}
