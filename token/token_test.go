package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tapelang/tapec/token"
)

func TestOf(t *testing.T) {
	for _, tc := range []struct {
		b    byte
		want token.Kind
	}{
		{'>', token.Forward},
		{'<', token.Backward},
		{'+', token.Increment},
		{'-', token.Decrement},
		{'[', token.LoopStart},
		{']', token.LoopEnd},
		{'.', token.Output},
		{',', token.Input},
		{'x', token.Comment},
		{' ', token.Comment},
		{'\n', token.Comment},
		{0, token.Comment},
	} {
		assert.Equal(t, tc.want, token.Of(tc.b), "byte %q", tc.b)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, ">", token.Forward.String())
	assert.Equal(t, "#", token.Comment.String())
}
