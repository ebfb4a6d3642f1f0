package assistant

import "context"

// Enricher generates a free-text reply around already-computed data. It is an
// optional capability; a nil Enricher disables enrichment entirely.
type Enricher interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
