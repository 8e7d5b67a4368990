package penman

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/amrfix/internal/amr"
)

func TestDecode_SingleNode(t *testing.T) {
	g, err := NewDecoder().Decode("(c / cat)")
	require.NoError(t, err)

	assert.Equal(t, "c", g.Top)
	assert.Equal(t, []amr.Triple{
		{Source: "c", Relation: ":instance", Target: "cat"},
	}, g.Triples)
}

func TestDecode_NestedNodesAndRoles(t *testing.T) {
	g, err := NewDecoder().Decode("(w / want-01 :ARG0 (b / boy) :ARG1 (g / go-02 :ARG0 b))")
	require.NoError(t, err)

	assert.Equal(t, "w", g.Top)
	assert.Equal(t, []amr.Triple{
		{Source: "w", Relation: ":instance", Target: "want-01"},
		{Source: "w", Relation: ":ARG0", Target: "b"},
		{Source: "b", Relation: ":instance", Target: "boy"},
		{Source: "w", Relation: ":ARG1", Target: "g"},
		{Source: "g", Relation: ":instance", Target: "go-02"},
		{Source: "g", Relation: ":ARG0", Target: "b"},
	}, g.Triples)
}

func TestDecode_MultiLine(t *testing.T) {
	text := "(w / want-01\n      :ARG0 (b / boy)\n      :polarity -)"
	g, err := NewDecoder().Decode(text)
	require.NoError(t, err)
	assert.Len(t, g.Triples, 4)
	assert.Equal(t, amr.Triple{Source: "w", Relation: ":polarity", Target: "-"},
		g.Triples[3])
}

func TestDecode_StringLiteralsAndNumbers(t *testing.T) {
	g, err := NewDecoder().Decode(`(d / date-entity :year 2005 :name "New York")`)
	require.NoError(t, err)

	assert.Equal(t, amr.Triple{Source: "d", Relation: ":year", Target: "2005"},
		g.Triples[1])
	assert.Equal(t, amr.Triple{Source: "d", Relation: ":name", Target: `"New York"`},
		g.Triples[2])
}

func TestDecode_Metadata(t *testing.T) {
	text := "# ::id bolt-1 ::date 2026-01-01\n# ::snt The boy wants to go.\n(w / want-01)"
	g, err := NewDecoder().Decode(text)
	require.NoError(t, err)

	assert.Equal(t, "bolt-1", g.ID())
	assert.Equal(t, "2026-01-01", g.Metadata["date"])
	assert.Equal(t, "The boy wants to go.", g.Metadata["snt"])
}

func TestDecode_Failures(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"only whitespace", "   \n  "},
		{"no opening bracket", "c / cat"},
		{"unclosed node", "(c / cat"},
		{"trailing garbage", "(c / cat) extra"},
		{"trailing comment line", "(c / cat)\n# ::snt after the body"},
		{"trailing closer", "(c / cat))"},
		{"bare value in node", "(c / cat x)"},
		{"empty role", "(c / cat : x)"},
		{"unterminated string", `(c / cat :name "x`},
	}
	d := NewDecoder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Decode(tt.in)
			require.Error(t, err)

			var decodeErr *DecodeError
			assert.ErrorAs(t, err, &decodeErr)
		})
	}
}

func TestDecode_ReentrantGraph(t *testing.T) {
	g, err := NewDecoder().Decode("(w / want-01 :ARG0 (b / boy) :ARG1 (g / go-02 :ARG0 b))")
	require.NoError(t, err)

	reentrant := g.ReentrantTriples()
	require.Len(t, reentrant, 1)
	assert.Equal(t, amr.Triple{Source: "g", Relation: ":ARG0", Target: "b"}, reentrant[0])
}

func TestEncode_RoundTrip(t *testing.T) {
	d := NewDecoder()
	texts := []string{
		"(c / cat)",
		"(w / want-01 :ARG0 (b / boy) :ARG1 (g / go-02 :ARG0 b))",
		`(d / date-entity :year 2005 :name "New York")`,
		"(n / need-01 :polarity -)",
	}
	for _, text := range texts {
		g, err := d.Decode(text)
		require.NoError(t, err)

		encoded := Encode(g)
		assert.Equal(t, text, encoded)

		again, err := d.Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, g.Triples, again.Triples)
	}
}

func TestStubDecoder_ScriptThenFallthrough(t *testing.T) {
	stub := &StubDecoder{
		Responses: []StubResponse{{Err: &DecodeError{Msg: "scripted"}}},
	}

	_, err := stub.Decode("(c / cat)")
	assert.Error(t, err)

	g, err := stub.Decode("(c / cat)")
	require.NoError(t, err)
	assert.Equal(t, "c", g.Top)
	assert.Equal(t, []string{"(c / cat)", "(c / cat)"}, stub.Calls)
}
