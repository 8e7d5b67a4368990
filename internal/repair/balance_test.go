package repair

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBalance_TargetedCloserOnOpenNodeLine(t *testing.T) {
	// A node-definition line whose bracket never closes gets a closer on
	// that line; the scrub then settles the remaining depth at the end.
	in := "(w / want-01\n:ARG0 (b / boy)"
	out := NewBalancer().Balance(in)
	assert.Equal(t, "(w / want-01)\n:ARG0 (b / boy)", out)
}

func TestBalance_SingleUnmatchedOpener(t *testing.T) {
	in := "(a / foo :ARG0 (b / bar"
	out := NewBalancer().Balance(in)
	assert.True(t, strings.HasSuffix(out, ")"))
	assert.Equal(t, strings.Count(out, "("), strings.Count(out, ")"))
}

func TestBalance_DropsUnmatchedClosers(t *testing.T) {
	out := NewBalancer().Balance(")))")
	assert.Equal(t, "", out)
}

func TestBalance_Totality(t *testing.T) {
	inputs := []string{
		"",
		"(",
		")",
		"((((",
		"))((",
		"(a / b",
		"(a / b))",
		"no brackets at all",
		"(a / foo :ARG0 (b / bar",
	}
	b := NewBalancer()
	for _, in := range inputs {
		out := b.Balance(in)
		assert.Equal(t, strings.Count(out, "("), strings.Count(out, ")"),
			"input %q must balance", in)
	}
}

func TestBalance_Idempotent(t *testing.T) {
	inputs := []string{
		"(a / foo :ARG0 (b / bar",
		")))",
		"(w / want-01\n:ARG0 (b / boy))",
		"(a / b))",
	}
	b := NewBalancer()
	for _, in := range inputs {
		once := b.Balance(in)
		twice := b.Balance(once)
		assert.Equal(t, once, twice, "input %q must reach a fixed point", in)
	}
}

func TestCoarseBalance(t *testing.T) {
	assert.Equal(t, "(a / b))", CoarseBalance("(a / b))"), "extra closers untouched")
	assert.Equal(t, "(a (b))", CoarseBalance("(a (b"))
	assert.Equal(t, "text", CoarseBalance("text"))
}
