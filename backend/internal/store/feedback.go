package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"roommate/backend/pkg/errors"
)

// Feedback is one user rating of a chat exchange, queued for the
// fine-tuning export job.
type Feedback struct {
	ID        string    `bson:"_id" json:"id"`
	Prompt    string    `bson:"prompt" json:"prompt"`
	Response  string    `bson:"response" json:"response"`
	Feedback  string    `bson:"feedback" json:"feedback"` // "positive" or "negative"
	Ideal     string    `bson:"ideal,omitempty" json:"ideal,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// SaveFeedback records one feedback entry
func (s *MongoStore) SaveFeedback(ctx context.Context, fb Feedback) error {
	if s.feedback == nil {
		return errors.ErrStoreNotConnected
	}
	if _, err := s.feedback.InsertOne(ctx, fb); err != nil {
		return errors.NewStoreWriteFailed(feedbacksCollection, err)
	}
	s.logger.Info("Saved feedback", zap.String("id", fb.ID), zap.String("rating", fb.Feedback))
	return nil
}

// ListFeedback returns all queued feedback entries
func (s *MongoStore) ListFeedback(ctx context.Context) ([]Feedback, error) {
	if s.feedback == nil {
		return nil, errors.ErrStoreNotConnected
	}
	cursor, err := s.feedback.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.NewStoreQueryFailed(feedbacksCollection, err)
	}
	defer cursor.Close(ctx)

	entries := []Feedback{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, errors.NewStoreQueryFailed(feedbacksCollection, err)
	}
	return entries, nil
}

// ClearFeedback deletes all queued feedback entries. This is the only
// place in the system that deletes documents; the memory pipeline itself
// never removes facts.
func (s *MongoStore) ClearFeedback(ctx context.Context) error {
	if s.feedback == nil {
		return errors.ErrStoreNotConnected
	}
	result, err := s.feedback.DeleteMany(ctx, bson.M{})
	if err != nil {
		return errors.NewStoreWriteFailed(feedbacksCollection, err)
	}
	s.logger.Info("Cleared feedback queue", zap.Int64("deleted", result.DeletedCount))
	return nil
}
