package ai

import "context"

// TextGenerator produces free-form text from a single prompt.
// Implementations must be thread-safe for concurrent use.
type TextGenerator interface {
	// Generate sends one prompt and returns one complete response.
	// There is no streaming; a failed request returns an error and no text.
	Generate(ctx context.Context, prompt string) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// TextGenerator returns the text generation service.
	// The returned TextGenerator is safe for concurrent use.
	TextGenerator() TextGenerator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
