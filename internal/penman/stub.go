package penman

import "github.com/dusk-indust/amrfix/internal/amr"

// StubDecoder is a scriptable Decoder for tests. Each Decode call consumes
// the next scripted response; when the script runs out, the real decoder is
// used as a fallthrough so fixtures do not need exhaustive scripts.
type StubDecoder struct {
	// FailAll makes every call report a decode error, ignoring Responses.
	FailAll bool

	// Responses are consumed in order, one per Decode call.
	Responses []StubResponse

	// Calls records every text passed to Decode.
	Calls []string

	fallthroughDecoder PenmanDecoder
}

// StubResponse is one scripted Decode outcome.
type StubResponse struct {
	Graph *amr.Graph
	Err   error
}

// Compile-time check.
var _ Decoder = (*StubDecoder)(nil)

// Decode returns the next scripted response, or delegates to the real
// decoder when the script is exhausted.
func (s *StubDecoder) Decode(text string) (*amr.Graph, error) {
	s.Calls = append(s.Calls, text)
	if s.FailAll {
		return nil, decodeErrorf(0, "scripted failure")
	}
	if len(s.Responses) == 0 {
		return s.fallthroughDecoder.Decode(text)
	}
	r := s.Responses[0]
	s.Responses = s.Responses[1:]
	return r.Graph, r.Err
}
