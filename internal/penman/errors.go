package penman

import "fmt"

// DecodeError is the single failure kind reported by the decoder. The repair
// pipeline treats every decode failure the same way, so no finer
// classification is exposed; Pos is retained for diagnostics only.
type DecodeError struct {
	// Pos is the byte offset in the graph text where decoding failed.
	Pos int

	// Msg describes what the decoder expected or rejected.
	Msg string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("penman: decode failed at offset %d: %s", e.Pos, e.Msg)
}

// decodeErrorf builds a *DecodeError at the given offset.
func decodeErrorf(pos int, format string, args ...any) *DecodeError {
	return &DecodeError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
