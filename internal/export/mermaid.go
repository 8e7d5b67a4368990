package export

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/amrfix/internal/amr"
)

// GenerateMermaid produces a Mermaid graph TD diagram from a decoded graph.
// Instance nodes render as "var / concept" boxes; attribute values render as
// plain boxes; roles become labeled arrows. Variables named in highlights
// get the highlight class.
func GenerateMermaid(g *amr.Graph, highlights []string) string {
	// Build value -> ID mapping for Mermaid (alphanumeric only).
	nodeIDs := make(map[string]string)
	nextID := 0
	getID := func(value string) string {
		if id, ok := nodeIDs[value]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		nodeIDs[value] = id
		return id
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	// Emit instance nodes first so the diagram keeps declaration order.
	for _, t := range g.Instances() {
		sb.WriteString(fmt.Sprintf("  %s[\"%s / %s\"]\n",
			getID(t.Source), t.Source, escapeLabel(t.Target)))
	}

	// Emit role edges; attribute targets get a node on first sight.
	for _, t := range g.Triples {
		if t.IsInstance() {
			continue
		}
		if _, known := nodeIDs[t.Target]; !known {
			sb.WriteString(fmt.Sprintf("  %s[\"%s\"]\n",
				getID(t.Target), escapeLabel(t.Target)))
		}
		sb.WriteString(fmt.Sprintf("  %s -->|%s| %s\n",
			getID(t.Source), escapeLabel(t.Relation), getID(t.Target)))
	}

	if len(highlights) > 0 {
		sb.WriteString("  classDef highlight fill:#fde68a,stroke:#b45309\n")
		for _, v := range highlights {
			if id, ok := nodeIDs[v]; ok {
				sb.WriteString(fmt.Sprintf("  class %s highlight\n", id))
			}
		}
	}

	return sb.String()
}

// escapeLabel strips characters that break Mermaid node labels.
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `"`, "'")
	s = strings.ReplaceAll(s, "|", "/")
	return s
}
