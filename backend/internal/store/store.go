package store

import (
	"context"

	"roommate/backend/internal/memory"
)

// Store is the persistence contract the gateway and enricher depend on.
// *MongoStore is the production implementation.
type Store interface {
	// SaveMemory extracts facts from sentence and upserts each one for
	// userID. It returns the facts that were persisted.
	SaveMemory(ctx context.Context, userID, sentence string) ([]memory.Fact, error)

	// SaveFacts upserts pre-extracted facts for userID in insertion
	// order. Each upsert is independent; there is no cross-fact
	// transaction.
	SaveFacts(ctx context.Context, userID string, facts []memory.Fact) error

	// RelevantMemories returns the stored facts for userID whose key,
	// value or type overlaps the keywords and types derived from prompt.
	RelevantMemories(ctx context.Context, userID, prompt string) ([]memory.Fact, error)

	// SaveFeedback records one chat feedback entry.
	SaveFeedback(ctx context.Context, fb Feedback) error
}
