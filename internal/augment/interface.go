package augment

import (
	"context"

	"jira-query-agent/internal/query"
)

// Augmenter is the optional refinement port for parsed intents. It may add
// to or narrow an intent but must never drop a user-stated constraint; the
// pipeline is correct with the Noop implementation.
type Augmenter interface {
	Augment(ctx context.Context, intent query.ParsedIntent, rawPhrase string) (query.ParsedIntent, error)
}

// Noop is the identity augmenter, used when no LLM provider is configured.
type Noop struct{}

func (Noop) Augment(_ context.Context, intent query.ParsedIntent, _ string) (query.ParsedIntent, error) {
	return intent, nil
}
