package instruction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tapelang/tapec/instruction"
)

func TestString(t *testing.T) {
	for _, tc := range []struct {
		i    instruction.Instruction
		want string
	}{
		{instruction.NewForward(3), "Forward(3)"},
		{instruction.NewBackward(1), "Backward(1)"},
		{instruction.NewIncrement(255), "Increment(255)"},
		{instruction.NewSetCell(8), "SetCell(8)"},
		{instruction.NewSetZero(), "SetZero"},
		{instruction.NewIncrementLoop(2), "IncrementLoop(2)"},
		{instruction.NewMultiplyForward(2, 3), "MultiplyForward(2, 3)"},
		{instruction.NewMultiplyBackward(1, 5), "MultiplyBackward(1, 5)"},
		{instruction.NewForwardLoop(1), "ForwardLoop(1)"},
		{instruction.NewBackwardLoop(2), "BackwardLoop(2)"},
		{instruction.NewLoopStart(7), "LoopStart(7)"},
		{instruction.NewLoopEnd(1), "LoopEnd(1)"},
		{instruction.NewInput(), "Input"},
		{instruction.NewOutput(), "Output"},
		{instruction.NewStop(), "Stop"},
	} {
		assert.Equal(t, tc.want, tc.i.String())
	}
}
