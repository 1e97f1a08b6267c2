package enricher

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"roommate/backend/internal/memory"
	"roommate/backend/pkg/logger"
)

// FactStore is the slice of the store the enricher needs
type FactStore interface {
	SaveFacts(ctx context.Context, userID string, facts []memory.Fact) error
	RelevantMemories(ctx context.Context, userID, prompt string) ([]memory.Fact, error)
}

// Enricher folds stored user facts into prompts before they reach the LLM
type Enricher struct {
	store  FactStore
	logger *zap.Logger
}

// New creates a new Enricher
func New(store FactStore) *Enricher {
	return &Enricher{
		store:  store,
		logger: logger.Get(),
	}
}

// Enrich persists any new facts found in prompt, retrieves previously
// stored facts relevant to it, and returns either a direct answer, a
// context-prefixed prompt, or the prompt unchanged. Enrichment is an
// optimization: every failure path degrades to the original prompt so a
// storage outage never fails the chat turn.
func (e *Enricher) Enrich(ctx context.Context, userID, prompt string) string {
	if facts := memory.Extract(prompt); len(facts) > 0 {
		if err := e.store.SaveFacts(ctx, userID, facts); err != nil {
			e.logger.Warn("Failed to save extracted facts, continuing",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}

	relevant, err := e.store.RelevantMemories(ctx, userID, prompt)
	if err != nil {
		e.logger.Warn("Failed to retrieve memories, using original prompt",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return prompt
	}
	if len(relevant) == 0 {
		return prompt
	}

	context := buildContext(relevant)
	if context == "" {
		return prompt
	}

	if isDirectQuestion(prompt) {
		if answer, ok := directAnswer(prompt, context); ok {
			return answer
		}
	}

	return fmt.Sprintf("Context about the user: %s.\n\nUser says: %s", context, prompt)
}

// buildContext maps each fact to a natural-language clause and joins the
// non-empty clauses with ". ".
func buildContext(facts []memory.Fact) string {
	var clauses []string

	for _, f := range facts {
		switch f.Type {
		case memory.FactTypePet:
			if strings.HasSuffix(f.Key, "_name") {
				clauses = append(clauses, fmt.Sprintf("Your %s's name is %s", memory.PetWord(f.Key), f.Value))
			}
		case memory.FactTypePersonal:
			if f.Key == memory.KeyName {
				clauses = append(clauses, fmt.Sprintf("Your name is %s", f.Value))
			}
		case memory.FactTypeLocation:
			if f.Key == memory.KeyHomeLocation {
				clauses = append(clauses, fmt.Sprintf("You live in %s", f.Value))
			}
		case memory.FactTypeWork:
			if f.Key == memory.KeyCompany {
				clauses = append(clauses, fmt.Sprintf("You work at %s", f.Value))
			}
		case memory.FactTypePreference:
			if f.Key == memory.KeyLikes {
				clauses = append(clauses, fmt.Sprintf("You like %s", f.Value))
			}
		}
	}

	return strings.Join(clauses, ". ")
}
