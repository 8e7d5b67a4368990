package mcptools

// --- MCP Tool Types for the amrfix server mode (--serve-mcp) ---
// These tools are exposed when the binary runs as an MCP server, so agents
// can repair and inspect graphs through structured calls instead of shelling out.

// RepairInput is the input for the amr_repair MCP tool.
type RepairInput struct {
	Text string `json:"text" jsonschema:"linearized graph text to repair"`
}

// RepairOutput is the result of the amr_repair MCP tool.
type RepairOutput struct {
	Text              string `json:"text"`
	IsValid           bool   `json:"isValid"`
	Outcome           string `json:"outcome"` // "valid", "repaired" or "fallback"
	DuplicatesRemoved int    `json:"duplicatesRemoved"`
}

// ValidateInput is the input for the amr_validate MCP tool.
type ValidateInput struct {
	Text string `json:"text" jsonschema:"linearized graph text to validate"`
}

// ValidateOutput is the result of the amr_validate MCP tool.
type ValidateOutput struct {
	Text    string `json:"text"`
	IsValid bool   `json:"isValid"`
}

// AnalyzeInput is the input for the amr_analyze MCP tool.
type AnalyzeInput struct {
	Text string `json:"text" jsonschema:"corpus text with graphs separated by blank lines"`
}

// AnalyzeOutput is the result of the amr_analyze MCP tool.
type AnalyzeOutput struct {
	Total            int   `json:"total"`
	Valid            int   `json:"valid"`
	Invalid          int   `json:"invalid"`
	DuplicateTriples int   `json:"duplicateTriples"`
	ErrorIndices     []int `json:"errorIndices,omitempty"` // 1-based block indices
}
