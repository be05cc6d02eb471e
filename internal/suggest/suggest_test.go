package suggest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tapelang/tapec/internal/suggest"
)

func TestClosest(t *testing.T) {
	assert.Equal(t, "compile", suggest.Closest("compil", []string{"run", "compile", "transpile", "repl"}))
}

func TestClosestNoCandidates(t *testing.T) {
	assert.Equal(t, "", suggest.Closest("anything", nil))
}

func TestClosestNoMatch(t *testing.T) {
	assert.Equal(t, "", suggest.Closest("zzzzzzzzzzzz", []string{"run"}))
}
