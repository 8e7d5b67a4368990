package repair

import (
	"regexp"
	"strings"
)

// Balancer repairs bracket-depth imbalance. Two strategies run in sequence:
// a targeted closer insertion for node-definition lines that never close
// their bracket, then a stack scrub over the whole text that drops unmatched
// closers and appends the missing ones at the end. The scrub is what
// guarantees the exit invariant; the targeted pass exists so the appended
// closer lands on the line that forgot it instead of at the end of the graph.
type Balancer struct{}

// NewBalancer creates a Balancer.
func NewBalancer() *Balancer {
	return &Balancer{}
}

// openNodePattern matches a node-definition line segment whose bracket is
// never closed before the end of the line: "(var / concept..." with no ')'.
var openNodePattern = regexp.MustCompile(`(\([a-z0-9]+\s+/[^)]+)(\n|$)`)

// Balance returns text with exactly balanced brackets. Total: it never
// fails, though balance is necessary rather than sufficient for validity.
//
// The targeted pass only runs when openers outnumber closers; on balanced
// or over-closed text it would close the opening line of every well-formed
// multi-line node, which the scrub could never undo.
func (b *Balancer) Balance(text string) string {
	if strings.Count(text, "(") > strings.Count(text, ")") {
		text = openNodePattern.ReplaceAllString(text, "$1)$2")
	}
	scrubbed, depth := scrub(text)
	return scrubbed + strings.Repeat(")", depth)
}

// scrub folds over text tracking bracket depth. A ')' at depth zero is
// dropped rather than letting the depth go negative; the returned depth is
// the number of unmatched openers remaining at the end of the scan.
// Implemented as a pure fold so that Balance is trivially idempotent.
func scrub(text string) (string, int) {
	var sb strings.Builder
	sb.Grow(len(text))
	depth := 0
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '(':
			depth++
			sb.WriteByte(c)
		case ')':
			if depth > 0 {
				depth--
				sb.WriteByte(c)
			}
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), depth
}

// CoarseBalance appends count('(')-count(')') closing brackets to text. This
// is the orchestrator's last-ditch repair, independent of Balance's targeted
// logic: it never drops characters and does nothing when closers outnumber
// openers.
func CoarseBalance(text string) string {
	missing := strings.Count(text, "(") - strings.Count(text, ")")
	if missing <= 0 {
		return text
	}
	return text + strings.Repeat(")", missing)
}
