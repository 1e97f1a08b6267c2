package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roommate/backend/pkg/errors"
)

const trialRemainingKey = "trial_remaining"

// RequireAuth checks the bearer API password. Callers without a valid
// password may burn a trial request instead; once the trial allowance is
// exhausted they get 429.
func RequireAuth(password string, limiter *TrialLimiter) gin.HandlerFunc {
	expected := "Bearer " + password

	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == expected {
			c.Next()
			return
		}

		if limiter.Enabled() {
			if left, ok := limiter.Allow(c.ClientIP()); ok {
				c.Set(trialRemainingKey, left)
				c.Next()
				return
			}
			_ = c.Error(errors.ErrTrialExhausted)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Trial requests exhausted",
			})
			return
		}

		_ = c.Error(errors.ErrUnauthorized)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}

// CORS allows the web front end to call the API from any origin
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// RequestLogger is a zap logging middleware for Gin
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		log.Info("HTTP Request", fields...)
	}
}
