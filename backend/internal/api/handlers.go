package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"roommate/backend/internal/llm"
	"roommate/backend/internal/memory"
	"roommate/backend/internal/store"
	"roommate/backend/pkg/logger"
)

// MemoryStore is the slice of the store the handlers need
type MemoryStore interface {
	SaveMemory(ctx context.Context, userID, sentence string) ([]memory.Fact, error)
	RelevantMemories(ctx context.Context, userID, prompt string) ([]memory.Fact, error)
	SaveFeedback(ctx context.Context, fb store.Feedback) error
}

// PromptEnricher folds stored facts into a prompt before the LLM sees it
type PromptEnricher interface {
	Enrich(ctx context.Context, userID, prompt string) string
}

// ErrorReporter forwards request errors to the analytics backend
type ErrorReporter interface {
	Capture(err error)
}

// Handler holds the dependencies for all HTTP endpoints
type Handler struct {
	llm      llm.Provider
	store    MemoryStore
	enricher PromptEnricher
	reporter ErrorReporter
	model    string
	logger   *zap.Logger
}

// NewHandler creates the endpoint handler set
func NewHandler(provider llm.Provider, st MemoryStore, enr PromptEnricher, rep ErrorReporter, model string) *Handler {
	return &Handler{
		llm:      provider,
		store:    st,
		enricher: enr,
		reporter: rep,
		model:    model,
		logger:   logger.Get(),
	}
}

// respond writes payload with the elapsed-time bookkeeping every response
// carries, plus trial-mode info when the caller is on a trial request.
func respond(c *gin.Context, start time.Time, status int, payload gin.H) {
	elapsed := time.Since(start).Milliseconds()
	payload["elapsed_ms"] = elapsed
	payload["ping_ms"] = elapsed

	if left, ok := c.Get(trialRemainingKey); ok {
		payload["test_mode"] = gin.H{
			"active":             true,
			"remaining_requests": left,
			"message":            "Running in trial mode; set the API password for unlimited access",
		}
	}

	c.JSON(status, payload)
}

// Root returns the server banner
func (h *Handler) Root(c *gin.Context) {
	respond(c, time.Now(), http.StatusOK, gin.H{
		"message": fmt.Sprintf("Roommate: Using Ollama %s", h.model),
	})
}

// Ping is the health check
func (h *Handler) Ping(c *gin.Context) {
	respond(c, time.Now(), http.StatusOK, gin.H{"message": "pong"})
}

// Chat enriches the prompt with stored facts (when a userId is supplied)
// and forwards it to the LLM chat endpoint
func (h *Handler) Chat(c *gin.Context) {
	start := time.Now()

	var req struct {
		Prompt string `json:"prompt" binding:"required"`
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, start, http.StatusBadRequest, gin.H{"error": "Missing required field: prompt"})
		return
	}

	ctx := c.Request.Context()
	prompt := req.Prompt
	if req.UserID != "" {
		// Enrichment failures degrade to the original prompt inside
		// Enrich; the chat turn proceeds either way.
		prompt = h.enricher.Enrich(ctx, req.UserID, req.Prompt)
	}

	h.logger.Info("Chat request", zap.String("user_id", req.UserID))

	result, err := h.llm.Chat(ctx, prompt)
	if err != nil {
		h.reporter.Capture(err)
		h.logger.Error("Chat failed", zap.Error(err))
		respond(c, start, http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	respond(c, start, http.StatusOK, gin.H{"result": result})
}

// Generate forwards a raw completion request to the LLM
func (h *Handler) Generate(c *gin.Context) {
	start := time.Now()

	var req struct {
		Prompt string `json:"prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, start, http.StatusBadRequest, gin.H{"error": "Missing required field: prompt"})
		return
	}

	result, err := h.llm.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		h.reporter.Capture(err)
		h.logger.Error("Generate failed", zap.Error(err))
		respond(c, start, http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	respond(c, start, http.StatusOK, gin.H{"result": result})
}

// Embeddings returns the embedding vector for a prompt
func (h *Handler) Embeddings(c *gin.Context) {
	start := time.Now()

	var req struct {
		Prompt string `json:"prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, start, http.StatusBadRequest, gin.H{"error": "Missing required field: prompt"})
		return
	}

	embedding, err := h.llm.Embeddings(c.Request.Context(), req.Prompt)
	if err != nil {
		h.reporter.Capture(err)
		h.logger.Error("Embeddings failed", zap.Error(err))
		respond(c, start, http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	respond(c, start, http.StatusOK, gin.H{"result": gin.H{"embedding": embedding}})
}

// SaveMemory extracts and persists facts from a sentence. Unlike chat
// enrichment there is no fallback path here: a store outage is a 503.
func (h *Handler) SaveMemory(c *gin.Context) {
	start := time.Now()

	var req struct {
		UserID   string `json:"userId" binding:"required"`
		Sentence string `json:"sentence" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, start, http.StatusBadRequest, gin.H{"error": "Missing required fields: userId, sentence"})
		return
	}

	facts, err := h.store.SaveMemory(c.Request.Context(), req.UserID, req.Sentence)
	if err != nil {
		h.reporter.Capture(err)
		h.logger.Error("Save memory failed", zap.Error(err))
		respond(c, start, http.StatusServiceUnavailable, gin.H{"error": "Memory store unavailable"})
		return
	}

	respond(c, start, http.StatusOK, gin.H{"saved": len(facts)})
}

// GetMemory returns the stored facts relevant to a prompt
func (h *Handler) GetMemory(c *gin.Context) {
	start := time.Now()

	var req struct {
		UserID string `json:"userId" binding:"required"`
		Prompt string `json:"prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, start, http.StatusBadRequest, gin.H{"error": "Missing required fields: userId, prompt"})
		return
	}

	memories, err := h.store.RelevantMemories(c.Request.Context(), req.UserID, req.Prompt)
	if err != nil {
		h.reporter.Capture(err)
		h.logger.Error("Get memory failed", zap.Error(err))
		respond(c, start, http.StatusServiceUnavailable, gin.H{"error": "Memory store unavailable"})
		return
	}

	respond(c, start, http.StatusOK, gin.H{"memories": memories})
}

// Feedback queues a chat rating for the fine-tuning export job
func (h *Handler) Feedback(c *gin.Context) {
	start := time.Now()

	var req struct {
		Prompt   string `json:"prompt" binding:"required"`
		Response string `json:"response" binding:"required"`
		Feedback string `json:"feedback" binding:"required,oneof=positive negative"`
		Ideal    string `json:"ideal"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, start, http.StatusBadRequest, gin.H{"error": "Missing or invalid feedback fields"})
		return
	}

	fb := store.Feedback{
		ID:        uuid.New().String(),
		Prompt:    req.Prompt,
		Response:  req.Response,
		Feedback:  req.Feedback,
		Ideal:     req.Ideal,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.SaveFeedback(c.Request.Context(), fb); err != nil {
		h.reporter.Capture(err)
		h.logger.Error("Save feedback failed", zap.Error(err))
		respond(c, start, http.StatusServiceUnavailable, gin.H{"error": "Feedback store unavailable"})
		return
	}

	respond(c, start, http.StatusOK, gin.H{"status": "recorded", "id": fb.ID})
}
