package mcptools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/dusk-indust/amrfix/internal/corpus"
	"github.com/dusk-indust/amrfix/internal/repair"
)

// AMRService handles MCP tool calls for the amrfix server mode. It wraps a
// repair pipeline and validator shared across calls.
type AMRService struct {
	pipeline  *repair.Pipeline
	validator *repair.Validator
	logger    *zap.Logger
}

// NewAMRService creates an AMRService with the given pipeline and validator.
func NewAMRService(pipeline *repair.Pipeline, validator *repair.Validator, logger *zap.Logger) *AMRService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AMRService{
		pipeline:  pipeline,
		validator: validator,
		logger:    logger,
	}
}

// Repair runs the full repair ladder on a single graph text.
func (s *AMRService) Repair(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RepairInput,
) (*mcp.CallToolResult, RepairOutput, error) {
	if input.Text == "" {
		return nil, RepairOutput{}, fmt.Errorf("text must not be empty")
	}

	result := s.pipeline.Repair(input.Text)
	s.logger.Debug("mcp repair", zap.String("outcome", string(result.Outcome)))

	return nil, RepairOutput{
		Text:              result.Text,
		IsValid:           result.IsValid,
		Outcome:           string(result.Outcome),
		DuplicatesRemoved: result.DuplicatesRemoved,
	}, nil
}

// Validate checks a single graph text without substituting a fallback.
func (s *AMRService) Validate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ValidateInput,
) (*mcp.CallToolResult, ValidateOutput, error) {
	if input.Text == "" {
		return nil, ValidateOutput{}, fmt.Errorf("text must not be empty")
	}

	ok, text := s.validator.Validate(input.Text)

	return nil, ValidateOutput{
		Text:    text,
		IsValid: ok,
	}, nil
}

// Analyze splits a corpus text into blocks and reports validity and
// duplicate-triple counts across all of them.
func (s *AMRService) Analyze(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	blocks := corpus.Split(input.Text)
	analyzer := corpus.NewAnalyzer(s.validator, s.logger)
	report := analyzer.Analyze(blocks)

	return nil, AnalyzeOutput{
		Total:            report.Total,
		Valid:            report.Valid,
		Invalid:          report.Invalid,
		DuplicateTriples: report.DuplicateTriples,
		ErrorIndices:     report.ErrorIndices,
	}, nil
}
