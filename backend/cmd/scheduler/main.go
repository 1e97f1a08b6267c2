// The scheduler is the periodic batch job behind the feedback pipeline:
// once enough feedback entries have accumulated it exports them as JSONL
// for the fine-tuning script and clears the queue. Running the fine-tuning
// itself (and restarting the model runtime afterwards) is handed off to
// the operator's tooling; this job only stages the data.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"roommate/backend/internal/store"
	"roommate/backend/pkg/config"
	"roommate/backend/pkg/logger"
)

func main() {
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	st := store.NewMongoStore(cfg.MongoURI, cfg.MongoDatabase)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := st.Connect(ctx); err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer st.Disconnect(context.Background())

	if err := run(ctx, st, cfg, log); err != nil {
		log.Fatal("Scheduler failed", zap.Error(err))
	}
}

func run(ctx context.Context, st *store.MongoStore, cfg *config.Config, log *zap.Logger) error {
	entries, err := st.ListFeedback(ctx)
	if err != nil {
		return err
	}

	if len(entries) < cfg.FeedbackThreshold {
		log.Info("Not enough feedback yet, skipping export",
			zap.Int("count", len(entries)),
			zap.Int("threshold", cfg.FeedbackThreshold),
		)
		return nil
	}

	log.Info("Exporting feedback for fine-tuning", zap.Int("count", len(entries)))

	if err := writeJSONL(cfg.FeedbackExportPath, entries); err != nil {
		return err
	}

	if err := st.ClearFeedback(ctx); err != nil {
		return err
	}

	log.Info("Feedback exported, ready for fine-tuning hand-off",
		zap.String("path", cfg.FeedbackExportPath),
	)
	return nil
}

// writeJSONL stages one training example per line in the shape the
// fine-tuning script consumes.
func writeJSONL(path string, entries []store.Feedback) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, e := range entries {
		line := map[string]string{
			"prompt":   e.Prompt,
			"response": e.Response,
			"feedback": e.Feedback,
			"ideal":    e.Ideal,
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to write export line: %w", err)
		}
	}

	return nil
}
