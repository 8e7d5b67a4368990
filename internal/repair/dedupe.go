package repair

import "strings"

// Deduper removes exact repeated triple lines within one graph text. The
// identity used here is deliberately lexical (the stripped line string);
// structural triple comparison across graphs lives in the corpus analyzer,
// which works on decoded graphs.
type Deduper struct{}

// NewDeduper creates a Deduper.
func NewDeduper() *Deduper {
	return &Deduper{}
}

// Dedupe drops every line whose stripped form repeats an earlier line,
// returning the filtered text and the number of lines dropped. Comment and
// blank lines always pass through; surviving lines keep their relative
// order. The output is a subsequence of the input.
func (d *Deduper) Dedupe(text string) (string, int) {
	seen := make(map[string]bool)
	var kept []string
	removed := 0

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" || IsComment(stripped) {
			kept = append(kept, line)
			continue
		}
		if seen[stripped] {
			removed++
			continue
		}
		seen[stripped] = true
		kept = append(kept, line)
	}

	return strings.Join(kept, "\n"), removed
}
