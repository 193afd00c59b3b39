// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.TextGenerator and
// ai.AIProvider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	text, err := mockProvider.TextGenerator().Generate(ctx, "prompt")
//
//	// Custom behavior injection
//	gen := mock.NewMockGenerator()
//	gen.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
//	    return "", errors.New("rate limited")
//	}
//
//	// Check call counts
//	count := gen.CallCount()
//
// The mock generator is safe for concurrent use, since advisories are
// produced from a worker pool.
package mock
