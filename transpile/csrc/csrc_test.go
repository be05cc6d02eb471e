package csrc_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapelang/tapec/compiler"
	"github.com/tapelang/tapec/lexer"
	"github.com/tapelang/tapec/transpile/csrc"
)

func TestEmitBalancedBraces(t *testing.T) {
	program, err := compiler.Compile(lexer.NewFromBytes([]byte(",[.-]")))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, csrc.Target{}.Emit(&buf, program))

	out := buf.String()
	assert.Equal(t, strings.Count(out, "{"), strings.Count(out, "}"))
	assert.Contains(t, out, "getchar")
	assert.Contains(t, out, "putchar")
	assert.Contains(t, out, "return 0;")
}

func TestEmitDefaultTapeSize(t *testing.T) {
	program, err := compiler.Compile(lexer.NewFromBytes([]byte("+.")))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, csrc.Target{}.Emit(&buf, program))
	assert.Contains(t, buf.String(), "tape[65536]")
}

func TestEmitCustomTapeSize(t *testing.T) {
	program, err := compiler.Compile(lexer.NewFromBytes([]byte("+.")))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, csrc.Target{TapeSize: 256}.Emit(&buf, program))
	assert.Contains(t, buf.String(), "tape[256]")
}

func TestEmitMultiply(t *testing.T) {
	program, err := compiler.Compile(lexer.NewFromBytes([]byte(",[->>+++<<]")))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, csrc.Target{}.Emit(&buf, program))
	assert.Contains(t, buf.String(), "tape[p + 2] += tape[p] * 3;")
}
