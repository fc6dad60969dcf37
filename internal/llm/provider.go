package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction every LLM backend implements.
type Provider interface {
	// Generate sends a request and returns the model output. When
	// req.Schema is set the provider asks for JSON matching it and the
	// returned Content has already been validated.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider targets.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. focusflow only sends single-turn
	// requests, so this usually holds one user message.
	Messages []Message

	// Schema, when non-nil, constrains the output to JSON.
	Schema *Schema

	MaxTokens int

	// Temperature ranges 0.0 - 1.0; zero means provider default.
	Temperature float64
}

// Message is one turn of the conversation.
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

// Schema is a named JSON Schema the response must satisfy.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "difficulty-advice".
	Name string

	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// Response holds the model output.
type Response struct {
	// Content is validated JSON when a schema was requested, otherwise the
	// raw text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
