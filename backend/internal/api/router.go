package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires the middleware stack and routes. The banner and health
// check are public; everything else requires the bearer API password (or a
// trial request).
func NewRouter(h *Handler, password string, limiter *TrialLimiter, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(log))
	router.Use(gin.Recovery())
	router.Use(CORS())

	router.GET("/", h.Root)
	router.GET("/ping", h.Ping)

	authed := router.Group("/", RequireAuth(password, limiter))
	{
		authed.POST("/chat", h.Chat)
		authed.POST("/generate", h.Generate)
		authed.POST("/embeddings", h.Embeddings)
		authed.POST("/memory/save", h.SaveMemory)
		authed.POST("/memory/get", h.GetMemory)
		authed.POST("/feedback", h.Feedback)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return router
}
