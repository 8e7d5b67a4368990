package corpus

import "strings"

// Block is one raw graph text from a corpus, with its 1-based position.
// Indices are what batch reports use to point at failing items, so they
// count every block boundary in the source, empty blocks included.
type Block struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// IsEmpty reports whether the block holds no graph text.
func (b Block) IsEmpty() bool {
	return strings.TrimSpace(b.Text) == ""
}

// Split cuts content into blank-line-separated blocks. Carriage returns are
// stripped first so CRLF corpora split the same as LF ones.
func Split(content string) []Block {
	content = strings.ReplaceAll(content, "\r", "")
	parts := strings.Split(content, "\n\n")
	blocks := make([]Block, len(parts))
	for i, part := range parts {
		blocks[i] = Block{Index: i + 1, Text: part}
	}
	return blocks
}
