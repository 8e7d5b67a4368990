package mcptools

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dusk-indust/amrfix/internal/penman"
	"github.com/dusk-indust/amrfix/internal/repair"
)

func newTestService(t *testing.T) *AMRService {
	t.Helper()
	dec := penman.NewDecoder()
	return NewAMRService(repair.NewPipeline(dec), repair.NewValidator(dec), zap.NewNop())
}

func TestAMRService_Repair(t *testing.T) {
	svc := newTestService(t)

	_, out, err := svc.Repair(context.Background(), nil, RepairInput{
		Text: "(w / want-01 :ARG0 (b / boy)",
	})
	require.NoError(t, err)
	assert.True(t, out.IsValid)
	assert.Equal(t, "valid", out.Outcome)
	assert.Contains(t, out.Text, "want-01")
}

func TestAMRService_Repair_Fallback(t *testing.T) {
	svc := newTestService(t)

	_, out, err := svc.Repair(context.Background(), nil, RepairInput{
		Text: "definitely not a graph",
	})
	require.NoError(t, err)
	assert.False(t, out.IsValid)
	assert.Equal(t, "fallback", out.Outcome)
	assert.Equal(t, repair.SentinelGraph, out.Text)
}

func TestAMRService_Repair_EmptyInput(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Repair(context.Background(), nil, RepairInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestAMRService_Validate(t *testing.T) {
	svc := newTestService(t)

	_, out, err := svc.Validate(context.Background(), nil, ValidateInput{
		Text: "(g / go-02 :ARG0 (b / boy))",
	})
	require.NoError(t, err)
	assert.True(t, out.IsValid)
}

func TestAMRService_Validate_InvalidKeepsInput(t *testing.T) {
	svc := newTestService(t)

	_, out, err := svc.Validate(context.Background(), nil, ValidateInput{
		Text: "not a graph",
	})
	require.NoError(t, err)
	assert.False(t, out.IsValid)
	assert.Equal(t, "not a graph", out.Text)
}

func TestAMRService_Analyze(t *testing.T) {
	svc := newTestService(t)

	text := "(a / alpha)\n\nnot a graph\n\n(b / beta :mod (c / gamma))"

	_, out, err := svc.Analyze(context.Background(), nil, AnalyzeInput{Text: text})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, 2, out.Valid)
	assert.Equal(t, 1, out.Invalid)
	assert.Equal(t, []int{2}, out.ErrorIndices)
}

func TestAMRMCPServer_ToolsList(t *testing.T) {
	server := NewAMRMCPServer(newTestService(t))

	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go server.Run(ctx, serverTransport)

	mcpClient := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "dev"}, nil)
	session, err := mcpClient.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)

	toolNames := make([]string, len(tools.Tools))
	for i, tool := range tools.Tools {
		toolNames[i] = tool.Name
	}

	assert.Contains(t, toolNames, "amr_repair")
	assert.Contains(t, toolNames, "amr_validate")
	assert.Contains(t, toolNames, "amr_analyze")
	assert.Len(t, tools.Tools, 3)
}
