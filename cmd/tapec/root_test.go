package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapelang/tapec/internal/logio"
)

func writeProgram(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestCompileCmdPrintsInstructions(t *testing.T) {
	dir := t.TempDir()
	path := writeProgram(t, dir, "clear.bf", "++++[-]")

	var out bytes.Buffer
	log := &logio.Logger{}
	log.SetOutput(nopCloser{&out})

	root := newRootCmd(log)
	root.SetArgs([]string{"compile", path})
	root.SetOut(&out)
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "SetZero")
}

func TestTranspileCmdUnknownTargetSuggests(t *testing.T) {
	dir := t.TempDir()
	path := writeProgram(t, dir, "incr.bf", "+")

	log := &logio.Logger{}
	log.SetOutput(nopCloser{&bytes.Buffer{}})

	root := newRootCmd(log)
	root.SetArgs([]string{"transpile", "--target=G", path})
	var out bytes.Buffer
	root.SetOut(&out)

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "go"`)
}

func TestTranspileCmdEmitsC(t *testing.T) {
	dir := t.TempDir()
	path := writeProgram(t, dir, "incr.bf", "+.")

	log := &logio.Logger{}
	log.SetOutput(nopCloser{&bytes.Buffer{}})

	root := newRootCmd(log)
	var out bytes.Buffer
	root.SetArgs([]string{"transpile", "--target=c", path})
	root.SetOut(&out)
	require.NoError(t, root.Execute())
}

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }
