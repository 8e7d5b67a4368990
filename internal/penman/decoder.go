package penman

import (
	"strings"

	"github.com/dusk-indust/amrfix/internal/amr"
)

// Decoder turns linearized graph notation into a structured graph.
// Implementations: PenmanDecoder (production), StubDecoder (testing).
// All parse failures are reported as *DecodeError.
type Decoder interface {
	Decode(text string) (*amr.Graph, error)
}

// PenmanDecoder parses PENMAN notation: nodes as "(var / concept ...)",
// edges as ":role value" pairs where a value is a nested node, a variable
// reference, a quoted string, or a bare atom. Leading "# ::key value" lines
// populate the graph metadata.
type PenmanDecoder struct{}

// Compile-time check.
var _ Decoder = (*PenmanDecoder)(nil)

// NewDecoder returns a PenmanDecoder.
func NewDecoder() *PenmanDecoder {
	return &PenmanDecoder{}
}

// Decode parses text into a graph. Metadata comment lines are only
// recognized before the graph body; anything after the closing bracket of
// the top node, comment lines included, is rejected as trailing input.
func (d *PenmanDecoder) Decode(text string) (*amr.Graph, error) {
	meta, body := splitMetadata(text)

	p := &parser{input: body}
	p.skipSpace()
	if p.eof() {
		return nil, decodeErrorf(p.pos, "empty graph text")
	}

	g := &amr.Graph{Metadata: meta}
	top, err := p.parseNode(g)
	if err != nil {
		return nil, err
	}
	g.Top = top

	p.skipSpace()
	if !p.eof() {
		return nil, decodeErrorf(p.pos, "unexpected trailing input %q", p.rest(20))
	}
	return g, nil
}

// splitMetadata separates leading comment lines from the graph body and
// parses "::key value" fields out of them. A line may carry several fields
// ("# ::id x ::snt the sentence").
func splitMetadata(text string) (map[string]string, string) {
	var meta map[string]string
	var bodyLines []string
	inBody := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !inBody && strings.HasPrefix(trimmed, amr.CommentMarker) {
			for _, field := range strings.Split(trimmed, "::")[1:] {
				key, value, _ := strings.Cut(field, " ")
				if key == "" {
					continue
				}
				if meta == nil {
					meta = make(map[string]string)
				}
				meta[key] = strings.TrimSpace(value)
			}
			continue
		}
		if trimmed != "" {
			inBody = true
		}
		bodyLines = append(bodyLines, line)
	}
	return meta, strings.Join(bodyLines, "\n")
}

// parser is a recursive-descent parser over the graph body.
type parser struct {
	input string
	pos   int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() byte {
	return p.input[p.pos]
}

func (p *parser) rest(max int) string {
	r := p.input[p.pos:]
	if len(r) > max {
		r = r[:max]
	}
	return r
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// parseNode parses "(var / concept (role value)*)" and appends the
// resulting triples to g. It returns the node's variable.
func (p *parser) parseNode(g *amr.Graph) (string, error) {
	if p.eof() || p.peek() != '(' {
		return "", decodeErrorf(p.pos, "expected '('")
	}
	p.pos++
	p.skipSpace()

	variable, err := p.parseAtom()
	if err != nil {
		return "", err
	}

	p.skipSpace()
	if !p.eof() && p.peek() == '/' {
		p.pos++
		p.skipSpace()
		concept, err := p.parseAtom()
		if err != nil {
			return "", err
		}
		g.Triples = append(g.Triples, amr.Triple{
			Source:   variable,
			Relation: amr.InstanceRole,
			Target:   concept,
		})
	}

	for {
		p.skipSpace()
		if p.eof() {
			return "", decodeErrorf(p.pos, "unclosed node %q", variable)
		}
		if p.peek() == ')' {
			p.pos++
			return variable, nil
		}
		if p.peek() != ':' {
			return "", decodeErrorf(p.pos, "expected role or ')' in node %q, found %q", variable, p.rest(10))
		}

		role, err := p.parseRole()
		if err != nil {
			return "", err
		}
		p.skipSpace()

		// The edge triple precedes the triples of a nested node, so that a
		// target variable counts as declared only once its subtree has been
		// walked. The target is patched in after the recursive parse.
		if !p.eof() && p.peek() == '(' {
			idx := len(g.Triples)
			g.Triples = append(g.Triples, amr.Triple{Source: variable, Relation: role})
			target, err := p.parseNode(g)
			if err != nil {
				return "", err
			}
			g.Triples[idx].Target = target
			continue
		}

		target, err := p.parseValue(g)
		if err != nil {
			return "", err
		}
		g.Triples = append(g.Triples, amr.Triple{
			Source:   variable,
			Relation: role,
			Target:   target,
		})
	}
}

// parseValue parses a role's value: a nested node, a quoted string, or an
// atom (variable reference, number, or constant).
func (p *parser) parseValue(g *amr.Graph) (string, error) {
	if p.eof() {
		return "", decodeErrorf(p.pos, "expected value, found end of input")
	}
	switch p.peek() {
	case '(':
		return p.parseNode(g)
	case '"':
		return p.parseString()
	default:
		return p.parseAtom()
	}
}

// parseRole parses a ":role" token including the leading colon.
func (p *parser) parseRole() (string, error) {
	start := p.pos
	p.pos++ // consume ':'
	for !p.eof() && isAtomByte(p.peek()) {
		p.pos++
	}
	if p.pos == start+1 {
		return "", decodeErrorf(start, "empty role token")
	}
	return p.input[start:p.pos], nil
}

// parseString parses a double-quoted literal, returning it quotes included
// so that string constants stay distinguishable from variables.
func (p *parser) parseString() (string, error) {
	start := p.pos
	p.pos++ // consume opening quote
	for !p.eof() {
		c := p.peek()
		p.pos++
		if c == '\\' && !p.eof() {
			p.pos++
			continue
		}
		if c == '"' {
			return p.input[start:p.pos], nil
		}
	}
	return "", decodeErrorf(start, "unterminated string literal")
}

// parseAtom parses a bare token: a variable, concept, number, or constant.
func (p *parser) parseAtom() (string, error) {
	start := p.pos
	for !p.eof() && isAtomByte(p.peek()) {
		p.pos++
	}
	if p.pos == start {
		return "", decodeErrorf(start, "expected token, found %q", p.rest(10))
	}
	return p.input[start:p.pos], nil
}

// isAtomByte reports whether b may appear inside a bare token.
func isAtomByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '(', ')', '/', ':', '"':
		return false
	}
	return true
}
