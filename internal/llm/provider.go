package llm

import "context"

// Provider is the gateway abstraction over an external LLM API.
// Consumers submit a system instruction and a user message and receive
// the model's raw text plus a normalized finish reason. Providers never
// retry: one client request means one upstream attempt.
type Provider interface {
	// Generate sends a single prompt to the model. A transport-level
	// failure is returned as an error; a successful transport response
	// with empty or policy-blocked content is NOT an error and must be
	// inspected through Response.FinishReason.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system instruction. Encodes the structural contract
	// the model must follow.
	System string

	// User is the user message. For this service it is always a flat
	// restatement of the lesson request fields.
	User string

	// Temperature controls sampling diversity. Range: 0.0 - 1.0.
	Temperature float64

	// MaxTokens caps the response length.
	MaxTokens int

	// Schema, when set and the provider supports constrained decoding,
	// instructs the model to emit JSON conforming to this definition.
	// Providers without schema support fall back to a JSON-object mode
	// hint or ignore it.
	Schema *ResponseSchema
}

// ResponseSchema is a JSON Schema the response should conform to.
type ResponseSchema struct {
	Name       string
	Definition map[string]any
}

// Response holds the model's raw output before any normalization.
type Response struct {
	// Text is the generated text. May be empty on blocked or truncated
	// generations even though the transport call succeeded.
	Text string

	// FinishReason explains why generation stopped, normalized across
	// providers.
	FinishReason FinishReason

	// Model is the model that actually served the request.
	Model string

	// Usage reports token consumption when the provider supplies it.
	Usage Usage
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// FinishReason is the provider-independent vocabulary for why generation
// stopped. Each provider ships its own mapping table into this set;
// anything a table does not cover maps to FinishUnknown.
type FinishReason string

const (
	FinishStop       FinishReason = "STOP"
	FinishSafety     FinishReason = "SAFETY"
	FinishRecitation FinishReason = "RECITATION"
	FinishLength     FinishReason = "LENGTH"
	FinishUnknown    FinishReason = "UNKNOWN"
)
