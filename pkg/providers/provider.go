package providers

import "context"

// Provider is the interface every backend adapter implements.
//
// All methods accept a context.Context for cancellation and timeout control.
// Implementations must respect context cancellation and return promptly when
// the context is cancelled.
type Provider interface {
	// GenerateText sends one generation request to the backend and returns
	// the generated text. It performs exactly one attempt; retriable causes
	// surface as transient typed errors (see IsTransient) and everything
	// else as permanent ones.
	GenerateText(ctx context.Context, req *GenerationRequest) (string, error)

	// Probe performs a minimal low-cost liveness check against the backend.
	// Single attempt, no internal retry, so that probing stays cheap.
	// Returns nil when the provider is reachable and accepting requests.
	Probe(ctx context.Context) error

	// Name returns the provider's configured name.
	Name() string

	// Model returns the default model this adapter dispatches to.
	Model() string

	// Close releases the adapter's resources (idle HTTP connections).
	Close() error
}
