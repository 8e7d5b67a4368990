package corpus

import (
	"fmt"
	"io"
)

// invalidHeader marks fallback graphs in written corpora. Downstream
// evaluation tooling filters on this exact line.
const invalidHeader = "# INVALID AMR"

// WriteBlocks writes repaired items as a blank-line-separated corpus, in
// order. Items that fell through to the sentinel get the invalid header
// line above their text.
func WriteBlocks(w io.Writer, results []ItemResult) error {
	for _, r := range results {
		if !r.Result.IsValid {
			if _, err := fmt.Fprintln(w, invalidHeader); err != nil {
				return fmt.Errorf("corpus: write: %w", err)
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", r.Result.Text); err != nil {
			return fmt.Errorf("corpus: write: %w", err)
		}
	}
	return nil
}
