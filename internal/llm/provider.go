package llm

import "context"

// Provider defines the interface for LLM providers
// All providers MUST support structured output (JSON) for reliable response parsing
type Provider interface {
	// Advise requests a structural plan from the LLM with structured output
	Advise(ctx context.Context, request *AdvisoryRequest) (*AdvisoryResponse, error)

	// Name returns the provider name (e.g., "mistral", "gemini")
	Name() string
}

// AdvisoryRequest contains all parameters needed for a plan advisory call
type AdvisoryRequest struct {
	Model        string
	Prompt       string
	SystemPrompt string
	// Structured output schema - REQUIRED for reliable JSON parsing
	OutputSchema *OutputSchema
}

// OutputSchema defines the expected JSON output structure
type OutputSchema struct {
	Name        string
	Description string
	Schema      map[string]any // JSON Schema object
}

// AdvisoryResponse contains the result from the LLM
type AdvisoryResponse struct {
	RawOutput string `json:"-"` // Raw JSON text output (for custom parsing)
	Usage     Usage  `json:"usage"`
}

// Usage holds token accounting for one advisory call
type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

// Map returns the usage as loosely typed fields for logging and tracing
func (u Usage) Map() map[string]interface{} {
	return map[string]interface{}{
		"input_tokens":  u.InputTokens,
		"output_tokens": u.OutputTokens,
		"total_tokens":  u.TotalTokens,
	}
}
