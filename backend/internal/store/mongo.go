package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"roommate/backend/internal/memory"
	"roommate/backend/pkg/errors"
	"roommate/backend/pkg/logger"
)

const (
	memoriesCollection  = "memories"
	feedbacksCollection = "feedbacks"

	connectTimeout  = 5 * time.Second
	connectAttempts = 3
)

// MongoStore persists user memories and feedback in MongoDB
type MongoStore struct {
	uri      string
	database string
	client   *mongo.Client
	memories *mongo.Collection
	feedback *mongo.Collection
	logger   *zap.Logger
}

// NewMongoStore creates a store for the given MongoDB URI and database.
// Call Connect before using it.
func NewMongoStore(uri, database string) *MongoStore {
	return &MongoStore{
		uri:      uri,
		database: database,
		logger:   logger.Get(),
	}
}

// Connect establishes the MongoDB connection and pings the server. The
// attempt is retried a fixed number of times before giving up.
func (s *MongoStore) Connect(ctx context.Context) error {
	opts := options.Client().
		ApplyURI(s.uri).
		SetServerSelectionTimeout(connectTimeout).
		SetConnectTimeout(connectTimeout)

	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		client, err := mongo.Connect(ctx, opts)
		if err == nil {
			if err = client.Ping(ctx, nil); err == nil {
				s.client = client
				db := client.Database(s.database)
				s.memories = db.Collection(memoriesCollection)
				s.feedback = db.Collection(feedbacksCollection)
				s.logger.Info("Connected to MongoDB",
					zap.String("database", s.database),
					zap.Int("attempt", attempt),
				)
				return nil
			}
			_ = client.Disconnect(ctx)
		}
		lastErr = err
		s.logger.Warn("MongoDB connection attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}

	return errors.NewStoreConnectionFailed(s.uri, connectAttempts, lastErr)
}

// Disconnect closes the MongoDB connection
func (s *MongoStore) Disconnect(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	s.logger.Info("Disconnected from MongoDB")
	return nil
}

// SaveMemory extracts facts from sentence and upserts each one for userID
func (s *MongoStore) SaveMemory(ctx context.Context, userID, sentence string) ([]memory.Fact, error) {
	facts := memory.Extract(sentence)
	if err := s.SaveFacts(ctx, userID, facts); err != nil {
		return nil, err
	}
	return facts, nil
}

// SaveFacts upserts facts for userID, one replace-or-insert per fact keyed
// on (userId, type, key). The timestamp is refreshed on every upsert, so
// repeating a sentence leaves a single document with a newer timestamp.
func (s *MongoStore) SaveFacts(ctx context.Context, userID string, facts []memory.Fact) error {
	if s.memories == nil {
		return errors.ErrStoreNotConnected
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i := range facts {
		facts[i].UserID = userID
		facts[i].Timestamp = now

		filter := bson.M{
			"userId": userID,
			"type":   facts[i].Type,
			"key":    facts[i].Key,
		}
		_, err := s.memories.ReplaceOne(ctx, filter, facts[i], options.Replace().SetUpsert(true))
		if err != nil {
			return errors.NewStoreWriteFailed(memoriesCollection, err)
		}
	}

	if len(facts) > 0 {
		s.logger.Info("Saved memories",
			zap.String("user_id", userID),
			zap.Int("count", len(facts)),
		)
	}
	return nil
}

// RelevantMemories returns the facts for userID matching any of three
// criteria derived from the prompt: key in the keyword set, value
// containing a keyword (case-insensitive substring), or type in the
// guessed type set.
func (s *MongoStore) RelevantMemories(ctx context.Context, userID, prompt string) ([]memory.Fact, error) {
	if s.memories == nil {
		return nil, errors.ErrStoreNotConnected
	}

	keywords := memory.KeywordsFromPrompt(prompt)
	types := memory.TypesFromPrompt(prompt)

	filter, ok := relevanceFilter(userID, keywords, types)
	if !ok {
		// Nothing to match on. Returning early keeps an empty keyword
		// list from degenerating into a match-everything regex.
		return []memory.Fact{}, nil
	}

	cursor, err := s.memories.Find(ctx, filter)
	if err != nil {
		return nil, errors.NewStoreQueryFailed(memoriesCollection, err)
	}
	defer cursor.Close(ctx)

	facts := []memory.Fact{}
	if err := cursor.All(ctx, &facts); err != nil {
		return nil, errors.NewStoreQueryFailed(memoriesCollection, err)
	}

	s.logger.Info("Found relevant memories",
		zap.String("user_id", userID),
		zap.Int("count", len(facts)),
	)
	return facts, nil
}

// relevanceFilter builds the $or query for RelevantMemories. ok is false
// when both derived sets are empty and no document can match.
func relevanceFilter(userID string, keywords []string, types []memory.FactType) (bson.M, bool) {
	var or bson.A

	if len(keywords) > 0 {
		or = append(or, bson.M{"key": bson.M{"$in": keywords}})
		or = append(or, bson.M{"value": primitive.Regex{
			Pattern: keywordPattern(keywords),
			Options: "i",
		}})
	}
	if len(types) > 0 {
		or = append(or, bson.M{"type": bson.M{"$in": types}})
	}

	if len(or) == 0 {
		return nil, false
	}
	return bson.M{"userId": userID, "$or": or}, true
}

func keywordPattern(keywords []string) string {
	quoted := make([]string, len(keywords))
	for i, kw := range keywords {
		quoted[i] = regexp.QuoteMeta(kw)
	}
	return strings.Join(quoted, "|")
}
