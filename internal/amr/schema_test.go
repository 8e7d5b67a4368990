package amr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func wantGraph() *Graph {
	// (w / want-01 :ARG0 (b / boy) :ARG1 (g / go-02 :ARG0 b))
	return &Graph{
		Top: "w",
		Triples: []Triple{
			{Source: "w", Relation: InstanceRole, Target: "want-01"},
			{Source: "w", Relation: ":ARG0", Target: "b"},
			{Source: "b", Relation: InstanceRole, Target: "boy"},
			{Source: "w", Relation: ":ARG1", Target: "g"},
			{Source: "g", Relation: InstanceRole, Target: "go-02"},
			{Source: "g", Relation: ":ARG0", Target: "b"},
		},
		Metadata: map[string]string{"id": "ex1"},
	}
}

func TestTripleKey_Distinct(t *testing.T) {
	a := Triple{Source: "a", Relation: ":mod", Target: "b"}
	b := Triple{Source: "a", Relation: ":mo", Target: "db"}
	assert.NotEqual(t, a.Key(), b.Key())
	assert.Equal(t, a.Key(), a.Key())
}

func TestGraphID(t *testing.T) {
	assert.Equal(t, "ex1", wantGraph().ID())
	assert.Equal(t, "", (&Graph{}).ID())
}

func TestInstancesAndConcept(t *testing.T) {
	g := wantGraph()

	instances := g.Instances()
	assert.Len(t, instances, 3)
	assert.Equal(t, "want-01", instances[0].Target)

	assert.Equal(t, "boy", g.Concept("b"))
	assert.Equal(t, "", g.Concept("zzz"))
}

func TestReentrantTriples(t *testing.T) {
	g := wantGraph()

	reentrant := g.ReentrantTriples()
	// Only the second reference to b comes after its declaration.
	assert.Equal(t, []Triple{{Source: "g", Relation: ":ARG0", Target: "b"}}, reentrant)
}

func TestReentrantTriples_NoneInTree(t *testing.T) {
	g := &Graph{
		Top: "c",
		Triples: []Triple{
			{Source: "c", Relation: InstanceRole, Target: "cat"},
			{Source: "c", Relation: ":mod", Target: "b"},
			{Source: "b", Relation: InstanceRole, Target: "black"},
		},
	}
	assert.Empty(t, g.ReentrantTriples())
}

func TestNodeReference(t *testing.T) {
	g := wantGraph()
	assert.Equal(t, "boy <b>", g.NodeReference("b"))
	assert.Equal(t, "x17", g.NodeReference("x17"))
}
