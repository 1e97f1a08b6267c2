// Package report delivers request errors to the configured analytics
// backend (Sentry, Nightwatch, both, or none). Delivery is fire-and-forget:
// a reporting failure is logged and never fails the request that raised
// the original error.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"roommate/backend/pkg/config"
	apperrors "roommate/backend/pkg/errors"
	"roommate/backend/pkg/logger"
)

// Reporter captures errors to the configured backends
type Reporter struct {
	option        string
	sentryEnabled bool
	nightwatchURL string
	nightwatchKey string
	client        *http.Client
	logger        *zap.Logger
}

// New creates a reporter for the configured analytics option, initializing
// the Sentry SDK when it is selected and a DSN is present.
func New(cfg *config.Config) (*Reporter, error) {
	r := &Reporter{
		option:        cfg.AnalyticsOption,
		nightwatchURL: cfg.NightwatchAPIURL,
		nightwatchKey: cfg.NightwatchAPIKey,
		client:        &http.Client{Timeout: 5 * time.Second},
		logger:        logger.Get(),
	}

	wantsSentry := cfg.AnalyticsOption == config.AnalyticsSentry || cfg.AnalyticsOption == config.AnalyticsBoth
	if wantsSentry && cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Env,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Sentry: %w", err)
		}
		r.sentryEnabled = true
	}

	return r, nil
}

// Capture sends err to the selected backends. It never blocks the caller
// on Nightwatch delivery and never returns an error.
func (r *Reporter) Capture(err error) {
	if err == nil {
		return
	}

	switch r.option {
	case config.AnalyticsSentry:
		r.captureSentry(err)
	case config.AnalyticsNightwatch:
		go r.sendNightwatch(err)
	case config.AnalyticsBoth:
		r.captureSentry(err)
		go r.sendNightwatch(err)
	}
}

// Close flushes buffered Sentry events
func (r *Reporter) Close() {
	if r.sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
}

func (r *Reporter) captureSentry(err error) {
	if !r.sentryEnabled {
		return
	}
	sentry.CaptureException(err)
}

func (r *Reporter) sendNightwatch(reported error) {
	if r.nightwatchURL == "" || r.nightwatchKey == "" {
		return
	}

	body, err := json.Marshal(map[string]string{"error": reported.Error()})
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, r.nightwatchURL, bytes.NewReader(body))
	if err != nil {
		r.logger.Warn("Failed to build Nightwatch request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.nightwatchKey)

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warn("Failed to deliver Nightwatch report",
			zap.Error(apperrors.NewReportDeliveryFailed("nightwatch", err)))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		r.logger.Warn("Nightwatch rejected report", zap.Int("status", resp.StatusCode))
	}
}
