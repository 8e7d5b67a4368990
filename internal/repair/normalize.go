package repair

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/dusk-indust/amrfix/internal/amr"
)

// NormalizeOptions control the lexical normalization heuristics. The zero
// value disables everything; DefaultNormalizeOptions is what the pipeline
// uses.
type NormalizeOptions struct {
	// NormalizeUnicode applies an NFC pass before any line rewriting, so
	// that composed and decomposed concept labels compare equal downstream.
	NormalizeUnicode bool

	// JoinConceptWords collapses whitespace inside the concept segment of a
	// node-opening line into underscores ("micro biology" -> "micro_biology").
	JoinConceptWords bool

	// SpaceAfterRoles inserts a space after a role token glued to the
	// following value (":ARG0(" -> ":ARG0 (").
	SpaceAfterRoles bool
}

// DefaultNormalizeOptions enables every heuristic.
func DefaultNormalizeOptions() NormalizeOptions {
	return NormalizeOptions{
		NormalizeUnicode: true,
		JoinConceptWords: true,
		SpaceAfterRoles:  true,
	}
}

// Normalizer rewrites label and role tokens to a canonical lexical form.
// It is a pure line-by-line rewrite: after the leading metadata line and
// blank lines are dropped, no lines are added or removed.
type Normalizer struct {
	opts NormalizeOptions
}

// NewNormalizer creates a Normalizer with the given options.
func NewNormalizer(opts NormalizeOptions) *Normalizer {
	return &Normalizer{opts: opts}
}

// sentinelMetaPrefix marks the sentence metadata line dropped during
// normalization. Other comment lines survive untouched.
const sentinelMetaPrefix = "# ::snt"

// roleGluePattern matches a maximal role token immediately followed by a
// non-whitespace, non-'/' character. The second class excludes role-token
// characters so the match cannot end partway through the role itself.
var roleGluePattern = regexp.MustCompile(`(:[\w-]+)([^-\s/\w])`)

// Normalize rewrites text line by line, in order: drop the leading "# ::snt"
// line and blank lines, join multi-word concept labels, and enforce a space
// after glued role tokens. Pure rewrite; never fails.
func (n *Normalizer) Normalize(text string) string {
	if n.opts.NormalizeUnicode {
		text = norm.NFC.String(text)
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) > 0 && strings.HasPrefix(lines[0], sentinelMetaPrefix) {
		lines = lines[1:]
	}

	for i, line := range lines {
		if n.opts.JoinConceptWords {
			line = joinConceptWords(line)
		}
		if n.opts.SpaceAfterRoles {
			line = spaceAfterRoles(line)
		}
		lines[i] = line
	}

	return strings.Join(lines, "\n")
}

// spaceAfterRoles inserts a space after every role token glued to the
// following value. The replacement consumes the glued character, so a run of
// glued roles needs another pass; iterate to the fixed point.
func spaceAfterRoles(line string) string {
	for {
		fixed := roleGluePattern.ReplaceAllString(line, "$1 $2")
		if fixed == line {
			return fixed
		}
		line = fixed
	}
}

// joinConceptWords collapses internal whitespace in the concept label of a
// node-opening line ("micro biology" -> "micro_biology"). The prefix before
// the first '/' is kept verbatim. The label ends at the first bracket or
// role character, so roles and nested nodes sharing the line stay intact.
func joinConceptWords(line string) string {
	if !strings.HasPrefix(line, "(") || !strings.Contains(line, "/") {
		return line
	}
	prefix, segment, _ := strings.Cut(line, "/")
	segment = strings.TrimSpace(segment)

	label, rest := segment, ""
	if stop := strings.IndexAny(segment, "():"); stop >= 0 {
		label, rest = strings.TrimSpace(segment[:stop]), segment[stop:]
	}
	joined := strings.Join(strings.Fields(label), "_")
	if rest != "" && rest[0] != ')' {
		joined += " "
	}
	return prefix + "/" + joined + rest
}

// IsComment reports whether a stripped line is a metadata/comment line.
func IsComment(line string) bool {
	return strings.HasPrefix(line, amr.CommentMarker)
}
