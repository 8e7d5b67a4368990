package penman

import (
	"strings"

	"github.com/dusk-indust/amrfix/internal/amr"
)

// Encode renders a graph back into single-line PENMAN notation. Each
// declared variable is expanded at its first mention; later mentions become
// bare references, so reentrant graphs round-trip without duplication.
// Metadata is not emitted.
func Encode(g *amr.Graph) string {
	e := &encoder{
		concepts: make(map[string]string),
		edges:    make(map[string][]amr.Triple),
		expanded: make(map[string]bool),
	}
	for _, t := range g.Triples {
		if t.IsInstance() {
			e.concepts[t.Source] = t.Target
			continue
		}
		e.edges[t.Source] = append(e.edges[t.Source], t)
	}

	var sb strings.Builder
	e.writeNode(&sb, g.Top)
	return sb.String()
}

type encoder struct {
	concepts map[string]string
	edges    map[string][]amr.Triple
	expanded map[string]bool
}

func (e *encoder) writeNode(sb *strings.Builder, variable string) {
	e.expanded[variable] = true
	sb.WriteByte('(')
	sb.WriteString(variable)
	if concept, ok := e.concepts[variable]; ok {
		sb.WriteString(" / ")
		sb.WriteString(concept)
	}
	for _, t := range e.edges[variable] {
		sb.WriteByte(' ')
		sb.WriteString(t.Relation)
		sb.WriteByte(' ')
		e.writeValue(sb, t.Target)
	}
	sb.WriteByte(')')
}

func (e *encoder) writeValue(sb *strings.Builder, target string) {
	if _, declared := e.concepts[target]; declared && !e.expanded[target] {
		e.writeNode(sb, target)
		return
	}
	sb.WriteString(target)
}
