// Package lexer turns a byte stream into a lazy, pull-based, non-restartable
// sequence of token.Token values. Mapping is purely byte-local: mapping a
// byte to a token never fails (read errors from the underlying reader are
// reported through Err) and never looks ahead, so the compiler can pull
// tokens one at a time, including mid-loop during dead-loop skipping (see
// compiler package).
package lexer

import (
	"bufio"
	"bytes"
	"io"

	"github.com/tapelang/tapec/token"
)

// Lexer is a pull source of tokens over an underlying byte reader. A Lexer
// must not be copied after first use and is not safe for concurrent use.
type Lexer struct {
	r   *bufio.Reader
	err error
}

// New returns a Lexer reading from r. If r already buffers (*bufio.Reader),
// it is used directly rather than wrapped again.
func New(r io.Reader) *Lexer {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Lexer{r: br}
}

// NewFromBytes returns a Lexer over an in-memory source.
func NewFromBytes(src []byte) *Lexer {
	return New(bytes.NewReader(src))
}

// Next pulls the next token from the source. The ok result is false once the
// source is exhausted; Err distinguishes clean EOF from a read error.
func (l *Lexer) Next() (tok token.Token, ok bool) {
	if l.err != nil {
		return token.Token{}, false
	}
	b, err := l.r.ReadByte()
	if err != nil {
		if err != io.EOF {
			l.err = err
		}
		return token.Token{}, false
	}
	return token.Token{Kind: token.Of(b)}, true
}

// Err returns the first non-EOF error encountered while reading, if any.
func (l *Lexer) Err() error {
	return l.err
}
