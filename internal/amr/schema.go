package amr

// --- Constants ---

// InstanceRole is the relation used for node-declaring triples: a triple
// (v, :instance, concept) declares variable v with the given concept label.
const InstanceRole = ":instance"

// CommentMarker prefixes metadata/comment lines in linearized AMR text.
const CommentMarker = "#"

// --- Models ---

// Triple is a decoded, structural edge of an AMR graph. It is distinct from
// the lexical line identity used by the repair core's duplicate elimination:
// two lexically different lines can decode to the same Triple, and only
// decoded Triples are comparable across graphs.
type Triple struct {
	Source   string `json:"source"`
	Relation string `json:"relation"`
	Target   string `json:"target"`
}

// Key returns a stable string form of the triple, usable as a map key when
// counting duplicates across graphs.
func (t Triple) Key() string {
	return t.Source + "\x00" + t.Relation + "\x00" + t.Target
}

// IsInstance reports whether the triple declares a node.
func (t Triple) IsInstance() bool {
	return t.Relation == InstanceRole
}

// Graph is a decoded AMR graph: the top variable, the triples in source
// order, and the metadata parsed from leading "# ::key value" lines.
type Graph struct {
	Top      string            `json:"top"`
	Triples  []Triple          `json:"triples"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ID returns the graph's ::id metadata value, or "" when absent.
func (g *Graph) ID() string {
	if g.Metadata == nil {
		return ""
	}
	return g.Metadata["id"]
}

// Instances returns the node-declaring triples in source order.
func (g *Graph) Instances() []Triple {
	var out []Triple
	for _, t := range g.Triples {
		if t.IsInstance() {
			out = append(out, t)
		}
	}
	return out
}

// Concept returns the concept label declared for a variable, or "" if the
// variable has no :instance triple.
func (g *Graph) Concept(variable string) string {
	for _, t := range g.Triples {
		if t.IsInstance() && t.Source == variable {
			return t.Target
		}
	}
	return ""
}

// ReentrantTriples returns the triples whose target is a variable declared
// by an earlier :instance triple. A node referenced as a child after its
// declaration has been seen is a reentrancy: the same node hangs under more
// than one parent.
func (g *Graph) ReentrantTriples() []Triple {
	declared := make(map[string]bool)
	var reentrant []Triple
	for _, t := range g.Triples {
		if t.IsInstance() {
			declared[t.Source] = true
			continue
		}
		if declared[t.Target] {
			reentrant = append(reentrant, t)
		}
	}
	return reentrant
}

// NodeReference renders a variable as "concept <var>" for human-readable
// output (TSV rows, diagram labels). Variables without a declared concept
// render as the bare variable.
func (g *Graph) NodeReference(variable string) string {
	concept := g.Concept(variable)
	if concept == "" {
		return variable
	}
	return concept + " <" + variable + ">"
}
