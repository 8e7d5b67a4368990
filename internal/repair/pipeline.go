package repair

import (
	"github.com/dusk-indust/amrfix/internal/amr"
	"github.com/dusk-indust/amrfix/internal/penman"
)

// Outcome identifies which rung of the repair ladder produced a result.
type Outcome string

const (
	// OutcomeValid: the text decoded after normalize/balance/dedupe alone.
	OutcomeValid Outcome = "valid"

	// OutcomeRepaired: the coarse bracket append was needed before the text
	// decoded.
	OutcomeRepaired Outcome = "repaired"

	// OutcomeFallback: nothing decoded; the sentinel graph was substituted.
	OutcomeFallback Outcome = "fallback"
)

// SentinelGraph is the fixed minimal valid graph substituted when every
// repair attempt fails, so downstream consumers always receive decodable
// text.
const SentinelGraph = "(g / gggggg)"

// Result is the outcome of repairing one input item. Immutable after
// construction.
type Result struct {
	// IsValid is false only when the ladder fell through to the sentinel.
	IsValid bool `json:"isValid"`

	// Text is the repaired graph text (or SentinelGraph on fallback).
	Text string `json:"text"`

	// DuplicatesRemoved counts the lines dropped by duplicate elimination.
	DuplicatesRemoved int `json:"duplicatesRemoved"`

	// Outcome records which ladder rung produced Text.
	Outcome Outcome `json:"outcome"`
}

// Pipeline sequences normalize, balance, dedupe, and the decode/repair
// ladder for one input item. Repairs are layered from most targeted (keeps
// the most semantic content) to the coarse bracket append to the sentinel,
// so a decodable output is always available and a batch run never aborts on
// one bad item.
//
// Pipeline is stateless apart from its collaborators and safe for
// concurrent use as long as the decoder is.
type Pipeline struct {
	normalizer *Normalizer
	balancer   *Balancer
	deduper    *Deduper
	decoder    penman.Decoder
}

// NewPipeline creates a Pipeline around the given decode capability with
// default normalization options.
func NewPipeline(decoder penman.Decoder) *Pipeline {
	return NewPipelineWithOptions(decoder, DefaultNormalizeOptions())
}

// NewPipelineWithOptions creates a Pipeline with explicit normalization
// options, for callers that configure the heuristics per project.
func NewPipelineWithOptions(decoder penman.Decoder, opts NormalizeOptions) *Pipeline {
	return &Pipeline{
		normalizer: NewNormalizer(opts),
		balancer:   NewBalancer(),
		deduper:    NewDeduper(),
		decoder:    decoder,
	}
}

// Repair runs the full ladder on text. Total: it never fails and never
// returns an error; the worst case is the sentinel with IsValid=false.
func (p *Pipeline) Repair(text string) Result {
	cleaned := p.normalizer.Normalize(text)
	cleaned = p.balancer.Balance(cleaned)
	cleaned, removed := p.deduper.Dedupe(cleaned)

	if _, err := p.decoder.Decode(cleaned); err == nil {
		return Result{
			IsValid:           true,
			Text:              cleaned,
			DuplicatesRemoved: removed,
			Outcome:           OutcomeValid,
		}
	}

	coarse := CoarseBalance(cleaned)
	if _, err := p.decoder.Decode(coarse); err == nil {
		return Result{
			IsValid:           true,
			Text:              coarse,
			DuplicatesRemoved: removed,
			Outcome:           OutcomeRepaired,
		}
	}

	return Result{
		IsValid:           false,
		Text:              SentinelGraph,
		DuplicatesRemoved: removed,
		Outcome:           OutcomeFallback,
	}
}

// Validator is the lightweight variant used by the standalone analysis path:
// decode, on failure coarse-append and retry, on failure report invalid with
// the input text unchanged. No normalization, no targeted insertion, no
// duplicate elimination, and no sentinel substitution; batch statistics
// computed over Validator differ from those computed over Pipeline.
type Validator struct {
	decoder penman.Decoder
}

// NewValidator creates a Validator around the given decode capability.
func NewValidator(decoder penman.Decoder) *Validator {
	return &Validator{decoder: decoder}
}

// Validate reports whether text decodes, possibly after the coarse bracket
// append. On success the returned text is the decodable form; on failure it
// is the input, untouched.
func (v *Validator) Validate(text string) (bool, string) {
	_, cleaned, ok := v.ValidateGraph(text)
	return ok, cleaned
}

// ValidateGraph is Validate with the decoded graph exposed, for callers that
// go on to inspect triples. The graph is nil exactly when ok is false.
func (v *Validator) ValidateGraph(text string) (g *amr.Graph, cleaned string, ok bool) {
	if g, err := v.decoder.Decode(text); err == nil {
		return g, text, true
	}
	fixed := CoarseBalance(text)
	if g, err := v.decoder.Decode(fixed); err == nil {
		return g, fixed, true
	}
	return nil, text, false
}
