package compiler

import "fmt"

// UnclosedLoopError is returned when the token stream ends with a LoopStart
// still open, including when a dead-loop skip runs the stream dry before
// finding its matching LoopEnd.
type UnclosedLoopError struct {
	// Depth is how many nested loops were still open (or, for a dead-loop
	// skip, the bracket depth reached before the stream ran out).
	Depth int
}

func (err UnclosedLoopError) Error() string {
	return fmt.Sprintf("compiler: unclosed loop (%d deep)", err.Depth)
}

// LoopEndWithoutStartError is returned when a LoopEnd token is seen with an
// empty loop stack.
type LoopEndWithoutStartError struct{}

func (LoopEndWithoutStartError) Error() string {
	return "compiler: loop end without matching start"
}
