// Package compiler folds a token.Token sequence into a compact
// instruction.Instruction list in a single left-to-right pass: run folding,
// dead-loop elimination, clear-cell/scan/increment-loop recognition, and
// multiply/copy-loop recognition.
package compiler

import (
	"sort"

	"github.com/tapelang/tapec/instruction"
	"github.com/tapelang/tapec/lexer"
	"github.com/tapelang/tapec/token"
)

type runKind int

const (
	runNone runKind = iota
	runMove
	runDelta
)

type compiler struct {
	out       []instruction.Instruction
	loopStack []int

	runKind  runKind
	runValue int

	cellKnown bool
	cellValue byte

	logf func(mess string, args ...interface{})
}

func (c *compiler) tracef(mess string, args ...interface{}) {
	if c.logf != nil {
		c.logf(mess, args...)
	}
}

// Compile pulls tokens from lex until exhausted, returning the optimized
// instruction list. The returned list always ends in exactly one Stop.
func Compile(lex *lexer.Lexer, opts ...Option) ([]instruction.Instruction, error) {
	c := &compiler{cellKnown: true, cellValue: 0}
	Options(opts...).apply(c)

	for {
		tok, ok := lex.Next()
		if !ok {
			break
		}
		if err := c.token(lex, tok); err != nil {
			return nil, err
		}
	}
	if err := lex.Err(); err != nil {
		return nil, err
	}

	c.flushRun()
	c.out = append(c.out, instruction.NewStop())

	if depth := len(c.loopStack); depth > 0 {
		return nil, UnclosedLoopError{Depth: depth}
	}
	return c.out, nil
}

func (c *compiler) token(lex *lexer.Lexer, tok token.Token) error {
	switch tok.Kind {
	case token.Forward:
		c.accumulate(runMove, 1)
	case token.Backward:
		c.accumulate(runMove, -1)
	case token.Increment:
		c.accumulate(runDelta, 1)
	case token.Decrement:
		c.accumulate(runDelta, -1)
	case token.LoopStart:
		return c.startLoop(lex)
	case token.LoopEnd:
		return c.endLoop()
	case token.Input:
		c.flushRun()
		c.tracef("emit Input")
		c.out = append(c.out, instruction.NewInput())
		c.cellKnown = false
	case token.Output:
		c.flushRun()
		c.tracef("emit Output")
		c.out = append(c.out, instruction.NewOutput())
	case token.Comment:
		// no-op: comments do not flush a pending run.
	}
	return nil
}

func (c *compiler) accumulate(kind runKind, delta int) {
	if c.runKind != runNone && c.runKind != kind {
		c.flushRun()
	}
	c.runKind = kind
	c.runValue += delta
}

func (c *compiler) flushRun() {
	switch c.runKind {
	case runMove:
		switch {
		case c.runValue > 0:
			c.tracef("flush run move +%d -> Forward(%d)", c.runValue, c.runValue)
			c.out = append(c.out, instruction.NewForward(c.runValue))
			c.cellKnown = false
		case c.runValue < 0:
			c.tracef("flush run move %d -> Backward(%d)", c.runValue, -c.runValue)
			c.out = append(c.out, instruction.NewBackward(-c.runValue))
			c.cellKnown = false
		}
	case runDelta:
		if c.runValue != 0 {
			if c.cellKnown {
				c.cellValue = wrap8(int(c.cellValue) + c.runValue)
				c.tracef("flush run delta %d under cell guarantee -> SetCell(%d)", c.runValue, c.cellValue)
				c.out = append(c.out, instruction.NewSetCell(c.cellValue))
			} else {
				v := wrap8(c.runValue)
				c.tracef("flush run delta %d -> Increment(%d)", c.runValue, v)
				c.out = append(c.out, instruction.NewIncrement(v))
			}
		}
	}
	c.runKind = runNone
	c.runValue = 0
}

func wrap8(v int) byte {
	v %= 256
	if v < 0 {
		v += 256
	}
	return byte(v)
}

// startLoop handles a '[' token: flush any pending run, then either skip a
// dead loop body wholesale (pulling tokens directly from lex) or push an
// open LoopStart placeholder.
func (c *compiler) startLoop(lex *lexer.Lexer) error {
	c.flushRun()

	if c.cellKnown && c.cellValue == 0 {
		c.tracef("dead loop at cell guarantee 0: skipping body")
		depth := 1
		for depth > 0 {
			tok, ok := lex.Next()
			if !ok {
				if err := lex.Err(); err != nil {
					return err
				}
				return UnclosedLoopError{Depth: depth}
			}
			switch tok.Kind {
			case token.LoopStart:
				depth++
			case token.LoopEnd:
				depth--
			}
		}
		return nil
	}

	c.loopStack = append(c.loopStack, len(c.out))
	c.out = append(c.out, instruction.NewLoopStart(0))
	c.cellKnown = false
	return nil
}

// endLoop handles a ']' token: classify the just-closed loop body and emit
// its specialized form, or fall back to a generic matched LoopStart/LoopEnd
// pair.
func (c *compiler) endLoop() error {
	if len(c.loopStack) == 0 {
		return LoopEndWithoutStartError{}
	}
	c.flushRun()

	s := c.loopStack[len(c.loopStack)-1]
	c.loopStack = c.loopStack[:len(c.loopStack)-1]
	e := len(c.out)
	bodyLen := e - (s + 1)

	switch bodyLen {
	case 0:
		c.tracef("empty loop body at %d: leaving matched pair", s)
		c.out = append(c.out, instruction.NewLoopEnd(s+1))
		c.cellKnown, c.cellValue = true, 0
		return nil

	case 1:
		body := c.out[s+1]
		switch body.Op {
		case instruction.Increment:
			c.out = c.out[:s]
			if body.V == 1 || body.V == 255 {
				c.tracef("single-increment loop by %d -> SetZero", body.V)
				c.out = append(c.out, instruction.NewSetZero())
			} else {
				c.tracef("single-increment loop by %d -> IncrementLoop(%d)", body.V, body.V)
				c.out = append(c.out, instruction.NewIncrementLoop(body.V))
			}
		case instruction.Forward:
			c.tracef("single-forward loop by %d -> ForwardLoop(%d)", body.N, body.N)
			c.out = c.out[:s]
			c.out = append(c.out, instruction.NewForwardLoop(body.N))
		case instruction.Backward:
			c.tracef("single-backward loop by %d -> BackwardLoop(%d)", body.N, body.N)
			c.out = c.out[:s]
			c.out = append(c.out, instruction.NewBackwardLoop(body.N))
		default:
			c.tracef("unrecognized single-instruction loop body %v: generic loop", body)
			c.out[s] = instruction.NewLoopStart(e + 1)
			c.out = append(c.out, instruction.NewLoopEnd(s+1))
		}
		c.cellKnown, c.cellValue = true, 0
		return nil

	default:
		if offsets, deltas, ok := recognizeMultiply(c.out[s+1 : e]); ok {
			c.tracef("multiply/copy loop at %d: %d target offsets", s, len(offsets))
			c.out = c.out[:s]
			for _, off := range offsets {
				m := deltas[off]
				if off > 0 {
					c.out = append(c.out, instruction.NewMultiplyForward(off, m))
				} else {
					c.out = append(c.out, instruction.NewMultiplyBackward(-off, m))
				}
			}
			c.out = append(c.out, instruction.NewSetZero())
		} else {
			c.tracef("generic loop at %d: body length %d not recognized", s, bodyLen)
			c.out[s] = instruction.NewLoopStart(e + 1)
			c.out = append(c.out, instruction.NewLoopEnd(s+1))
		}
		c.cellKnown, c.cellValue = true, 0
		return nil
	}
}

// recognizeMultiply attempts to model body as a balanced multiply/copy
// loop: the pointer returns to its starting offset, the start cell (offset
// 0) is decremented by exactly one per iteration, and every other touched
// offset accumulates a constant multiple of the start cell. On success it
// returns the touched offsets (excluding 0) in strictly decreasing order,
// along with their per-offset deltas.
func recognizeMultiply(body []instruction.Instruction) (offsets []int, deltas map[int]byte, ok bool) {
	totalOffset := 0
	var pending byte
	deltaMap := make(map[int]byte)
	var order []int

	flush := func() {
		if pending != 0 {
			if _, seen := deltaMap[totalOffset]; !seen {
				order = append(order, totalOffset)
			}
			deltaMap[totalOffset] += pending
			pending = 0
		}
	}

	for _, instr := range body {
		switch instr.Op {
		case instruction.Forward:
			flush()
			totalOffset += instr.N
		case instruction.Backward:
			flush()
			totalOffset -= instr.N
		case instruction.Increment:
			pending += instr.V
		default:
			return nil, nil, false
		}
	}
	flush()

	if len(deltaMap) == 0 || totalOffset != 0 {
		return nil, nil, false
	}
	start, haveStart := deltaMap[0]
	if !haveStart || start != 255 {
		return nil, nil, false
	}
	delete(deltaMap, 0)

	var final []int
	for _, off := range order {
		if off == 0 {
			continue
		}
		if deltaMap[off] == 0 {
			continue
		}
		final = append(final, off)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(final)))
	return final, deltaMap, true
}
