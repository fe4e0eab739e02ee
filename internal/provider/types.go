// Package provider abstracts AI completion services (OpenAI, Anthropic)
// behind a single interface so the review pipeline can switch models
// without changing application logic.
//
// Conventions:
//   - context propagation on every blocking call
//   - normalized error codes across providers
//   - channel-based streaming
//   - registry/factory pattern for provider discovery
package provider

import (
	"context"
	"fmt"
	"time"
)

// Role represents the role of a message participant.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single message in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the provider-agnostic request structure. Each
// provider translates it into its native wire format.
type CompletionRequest struct {
	// Model is the provider-specific model identifier. Empty means the
	// provider's configured default.
	Model string `json:"model"`

	// Messages is the ordered conversation history.
	Messages []Message `json:"messages"`

	// MaxTokens limits the response length. Zero means the provider's
	// configured default.
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls randomness. Nil means provider default.
	Temperature *float64 `json:"temperature,omitempty"`

	// TopP is nucleus sampling. Nil means provider default.
	TopP *float64 `json:"top_p,omitempty"`

	// StopSequences optionally stops generation on any of these strings.
	StopSequences []string `json:"stop,omitempty"`
}

// CompletionResponse is the normalized response of a non-streaming call.
type CompletionResponse struct {
	// ID is the provider-assigned response identifier.
	ID string `json:"id"`

	// Model is the model that actually served the request.
	Model string `json:"model"`

	// Content is the assistant's reply text.
	Content string `json:"content"`

	// FinishReason indicates why generation stopped ("stop",
	// "max_tokens", "end_turn", ...).
	FinishReason string `json:"finish_reason"`

	// Usage contains token accounting for the request.
	Usage Usage `json:"usage"`
}

// Usage tracks token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// StreamChunk is one incremental piece of a streamed response.
type StreamChunk struct {
	// Content is the text delta for this chunk.
	Content string

	// Done is true when the stream has finished.
	Done bool

	// FinishReason is populated on the final chunk.
	FinishReason string

	// Usage is populated on the final chunk when the provider reports it.
	Usage *Usage
}

// StreamResult bundles the two channels returned from CompleteStream.
// Callers range over Chunks and then check Err:
//
//	result := p.CompleteStream(ctx, req)
//	for chunk := range result.Chunks {
//	    fmt.Print(chunk.Content)
//	}
//	if err := <-result.Err; err != nil { ... }
type StreamResult struct {
	Chunks <-chan StreamChunk
	Err    <-chan error
}

// ErrorCode classifies provider errors into actionable categories so the
// caller can decide how to react (retry, abort) without inspecting
// provider-specific payloads.
type ErrorCode string

const (
	ErrCodeAuthentication      ErrorCode = "authentication"
	ErrCodeRateLimit           ErrorCode = "rate_limit"
	ErrCodeInvalidRequest      ErrorCode = "invalid_request"
	ErrCodeContextLength       ErrorCode = "context_length"
	ErrCodeProviderUnavailable ErrorCode = "provider_unavailable"
	ErrCodeTimeout             ErrorCode = "timeout"
	ErrCodeUnknown             ErrorCode = "unknown"
)

// ProviderError carries a normalized code plus the original provider
// details. It supports errors.Is / errors.As unwrapping.
type ProviderError struct {
	Code       ErrorCode
	Message    string
	Provider   string
	StatusCode int
	Cause      error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (status %d): %v",
			e.Provider, e.Code, e.Message, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s (status %d)",
		e.Provider, e.Code, e.Message, e.StatusCode)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Sentinel errors for use with errors.Is().
var (
	ErrAuthentication      = &ProviderError{Code: ErrCodeAuthentication}
	ErrRateLimit           = &ProviderError{Code: ErrCodeRateLimit}
	ErrInvalidRequest      = &ProviderError{Code: ErrCodeInvalidRequest}
	ErrContextLength       = &ProviderError{Code: ErrCodeContextLength}
	ErrProviderUnavailable = &ProviderError{Code: ErrCodeProviderUnavailable}
	ErrTimeout             = &ProviderError{Code: ErrCodeTimeout}
)

// Is allows errors.Is to match ProviderErrors by code.
func (e *ProviderError) Is(target error) bool {
	t, ok := target.(*ProviderError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// RetryConfig controls exponential-backoff retry behaviour. The zero
// value disables retries.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts (0 = none).
	MaxRetries int

	// InitialInterval is the delay before the first retry.
	InitialInterval time.Duration

	// MaxInterval caps the delay between retries.
	MaxInterval time.Duration

	// Multiplier scales the interval after each attempt.
	Multiplier float64
}

// DefaultRetryConfig returns the default retry configuration: 3 retries,
// starting at 1 s, capped at 30 s, with a 2x multiplier.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 1 * time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
	}
}

// ProviderInfo describes a registered provider for introspection and
// user-facing help text.
type ProviderInfo struct {
	// Name is the canonical short name used in configuration.
	Name string

	// DisplayName is the human-readable name.
	DisplayName string

	// Description is a one-line summary for help text.
	Description string

	// DefaultModel is the model used when the user does not specify one.
	DefaultModel string

	// SupportsStreaming indicates whether this provider supports streaming.
	SupportsStreaming bool
}

// AIProvider is the central abstraction implemented by every AI service
// so the rest of the application can use any of them interchangeably.
type AIProvider interface {
	// Info returns static metadata about this provider.
	Info() ProviderInfo

	// Complete sends a chat completion request and blocks until the full
	// response is available.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// CompleteStream sends a chat completion request and returns a
	// StreamResult whose Chunks channel yields incremental content. The
	// caller must drain Chunks; Err delivers at most one value after
	// Chunks closes.
	CompleteStream(ctx context.Context, req CompletionRequest) StreamResult

	// Validate checks that the provider is correctly configured (API key
	// present, endpoint reachable) and returns a descriptive error if not.
	Validate(ctx context.Context) error
}
