package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewAMRMCPServer creates an MCP server with the 3 amrfix tools registered:
// amr_repair, amr_validate, and amr_analyze.
func NewAMRMCPServer(svc *AMRService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "amrfix",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "amr_repair",
		Description: "Repair a linearized AMR graph: normalize spacing, balance brackets, drop duplicate lines, and fall back to a minimal sentinel graph when nothing decodes. Always returns decodable text.",
	}, svc.Repair)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "amr_validate",
		Description: "Validate a linearized AMR graph. Tries a coarse bracket repair before giving up, but never substitutes a fallback: invalid input is reported as-is.",
	}, svc.Validate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "amr_analyze",
		Description: "Analyze a corpus of blank-line-separated AMR graphs: counts of valid and invalid blocks, duplicate triples, and the indices of blocks that failed to decode.",
	}, svc.Analyze)

	return server
}

// RunMCPServerStdio runs the MCP server on stdio transport, blocking until
// stdin is closed or the context is cancelled.
func RunMCPServerStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
