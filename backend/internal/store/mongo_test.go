package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"roommate/backend/internal/memory"
)

func TestRelevanceFilter_AllCriteria(t *testing.T) {
	keywords := []string{"dog_name", "name"}
	types := []memory.FactType{memory.FactTypePet}

	filter, ok := relevanceFilter("user-1", keywords, types)
	require.True(t, ok)

	assert.Equal(t, "user-1", filter["userId"])

	or, isA := filter["$or"].(bson.A)
	require.True(t, isA)
	require.Len(t, or, 3)

	assert.Equal(t, bson.M{"key": bson.M{"$in": keywords}}, or[0])
	assert.Equal(t, bson.M{"value": primitive.Regex{Pattern: "dog_name|name", Options: "i"}}, or[1])
	assert.Equal(t, bson.M{"type": bson.M{"$in": types}}, or[2])
}

func TestRelevanceFilter_TypesOnly(t *testing.T) {
	filter, ok := relevanceFilter("user-1", nil, []memory.FactType{memory.FactTypeWork})
	require.True(t, ok)

	or := filter["$or"].(bson.A)
	// No keyword branches: an empty keyword list must not produce a
	// value regex that would match every document
	require.Len(t, or, 1)
	assert.Equal(t, bson.M{"type": bson.M{"$in": []memory.FactType{memory.FactTypeWork}}}, or[0])
}

func TestRelevanceFilter_EmptySetsMatchNothing(t *testing.T) {
	_, ok := relevanceFilter("user-1", nil, nil)
	assert.False(t, ok)
}

func TestKeywordPattern_QuotesRegexMeta(t *testing.T) {
	assert.Equal(t, `dog_name|c\+\+`, keywordPattern([]string{"dog_name", "c++"}))
}

func TestMongoStore_NotConnected(t *testing.T) {
	s := NewMongoStore("mongodb://localhost:27017", "roommate_test")

	_, err := s.SaveMemory(context.Background(), "user-1", "I live in Boston")
	assert.Error(t, err)

	_, err = s.RelevantMemories(context.Background(), "user-1", "where do i live")
	assert.Error(t, err)

	assert.Error(t, s.SaveFeedback(context.Background(), Feedback{ID: "fb-1"}))
	assert.NoError(t, s.Disconnect(context.Background()))
}

// Integration tests require a running MongoDB; point ROOMMATE_TEST_MONGO_URI
// at it to enable them.

func integrationStore(t *testing.T) *MongoStore {
	t.Helper()
	uri := os.Getenv("ROOMMATE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("Skipping integration test: ROOMMATE_TEST_MONGO_URI not set")
	}

	s := NewMongoStore(uri, "roommate_test")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	require.NoError(t, s.Connect(ctx))
	t.Cleanup(func() { _ = s.Disconnect(context.Background()) })

	// Isolate each run
	_, err := s.memories.DeleteMany(ctx, bson.M{})
	require.NoError(t, err)
	return s
}

func TestMongoStore_SaveAndQuery_Integration(t *testing.T) {
	s := integrationStore(t)
	ctx := context.Background()

	facts, err := s.SaveMemory(ctx, "user-1", "My dog's name is Duke, remember that")
	require.NoError(t, err)
	require.Len(t, facts, 1)

	memories, err := s.RelevantMemories(ctx, "user-1", "What is my dog's name?")
	require.NoError(t, err)
	require.NotEmpty(t, memories)
	assert.Equal(t, "dog_name", memories[0].Key)
	assert.Equal(t, "Duke", memories[0].Value)
	assert.Equal(t, memory.FactTypePet, memories[0].Type)
	assert.Equal(t, "user-1", memories[0].UserID)
	assert.NotEmpty(t, memories[0].Timestamp)
}

func TestMongoStore_UpsertIsIdempotent_Integration(t *testing.T) {
	s := integrationStore(t)
	ctx := context.Background()

	fact := memory.Fact{Type: memory.FactTypeLocation, Key: memory.KeyHomeLocation, Value: "Boston"}
	require.NoError(t, s.SaveFacts(ctx, "user-1", []memory.Fact{fact}))
	require.NoError(t, s.SaveFacts(ctx, "user-1", []memory.Fact{fact}))

	count, err := s.memories.CountDocuments(ctx, bson.M{
		"userId": "user-1",
		"type":   memory.FactTypeLocation,
		"key":    memory.KeyHomeLocation,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMongoStore_EmptyDerivedSets_Integration(t *testing.T) {
	s := integrationStore(t)
	ctx := context.Background()

	_, err := s.SaveMemory(ctx, "user-1", "I live in Boston")
	require.NoError(t, err)

	// No trigger group fires for this prompt; stored data must not leak
	memories, err := s.RelevantMemories(ctx, "user-1", "how tall is mount everest")
	require.NoError(t, err)
	assert.Empty(t, memories)
}

func TestMongoStore_QueryIsScopedToUser_Integration(t *testing.T) {
	s := integrationStore(t)
	ctx := context.Background()

	_, err := s.SaveMemory(ctx, "user-1", "I live in Boston")
	require.NoError(t, err)

	memories, err := s.RelevantMemories(ctx, "user-2", "where do i live")
	require.NoError(t, err)
	assert.Empty(t, memories)
}
