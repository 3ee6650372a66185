package llm

import "context"

// Provider is the abstraction over one LLM backend. The generation
// orchestrator walks an ordered slice of these, taking the first success.
type Provider interface {
	// Generate sends a prompt and returns the raw text completion.
	// Quiz generation asks for JSON in the prompt itself; the caller is
	// responsible for extracting structure from the returned text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name returns the short provider name ("openai", "gemini", ...).
	Name() string

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. Quiz generation is single-turn,
	// so this holds one user message.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the LLM's output.
type Response struct {
	// Text is the raw completion text. May be wrapped in Markdown fences
	// or carry prose around the JSON payload.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
