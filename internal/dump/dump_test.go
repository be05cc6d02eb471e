package dump_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapelang/tapec/compiler"
	"github.com/tapelang/tapec/internal/dump"
	"github.com/tapelang/tapec/lexer"
	"github.com/tapelang/tapec/vm"
)

func TestProgram(t *testing.T) {
	program, err := compiler.Compile(lexer.NewFromBytes([]byte("++[-]")))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, dump.Program(&buf, program))

	out := buf.String()
	assert.Contains(t, out, "SetCell")
	assert.Contains(t, out, "Stop")
}

func TestProgramAnnotatesJumps(t *testing.T) {
	program, err := compiler.Compile(lexer.NewFromBytes([]byte(",[.-]")))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, dump.Program(&buf, program))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	found := false
	for _, line := range lines {
		if strings.Contains(line, "LoopStart") {
			assert.Contains(t, line, "->")
			found = true
		}
	}
	assert.True(t, found, "expected a LoopStart line annotated with a jump target")
}

func TestTape(t *testing.T) {
	program, err := compiler.Compile(lexer.NewFromBytes([]byte("+>++>+++")))
	require.NoError(t, err)
	tape, err := vm.Execute(context.Background(), program)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, dump.Tape(&buf, tape))

	out := buf.String()
	assert.Contains(t, out, "@0")
	assert.Contains(t, out, "pointer=2")
}

func TestTapeSkipsLongZeroRuns(t *testing.T) {
	program, err := compiler.Compile(lexer.NewFromBytes([]byte(">>>>>>>>>>+")))
	require.NoError(t, err)
	tape, err := vm.Execute(context.Background(), program)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, dump.Tape(&buf, tape))
	assert.Contains(t, buf.String(), "zero cells")
}

func TestRawProgramDoesNotPanic(t *testing.T) {
	program, err := compiler.Compile(lexer.NewFromBytes([]byte("+.")))
	require.NoError(t, err)

	var buf bytes.Buffer
	dump.RawProgram(&buf, program)
	assert.NotEmpty(t, buf.String())
}
