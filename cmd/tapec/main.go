// Command tapec compiles and runs the tape-machine language described by
// the lexer/compiler/vm packages: a lex-compile-execute pipeline plus
// transpile and REPL surfaces built on top of it.
package main

import (
	"os"

	"github.com/tapelang/tapec/internal/logio"
)

func main() {
	log := &logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	if err := newRootCmd(log).Execute(); err != nil {
		log.Errorf("%v", err)
	}
}
