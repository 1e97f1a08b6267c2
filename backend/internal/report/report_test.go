package report

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roommate/backend/pkg/config"
)

type nightwatchHit struct {
	auth string
	body map[string]string
}

func newNightwatchServer(t *testing.T) (*httptest.Server, chan nightwatchHit) {
	t.Helper()
	hits := make(chan nightwatchHit, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		var body map[string]string
		_ = json.Unmarshal(data, &body)
		hits <- nightwatchHit{auth: r.Header.Get("Authorization"), body: body}
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(srv.Close)
	return srv, hits
}

func waitForHit(t *testing.T, hits chan nightwatchHit) nightwatchHit {
	t.Helper()
	select {
	case hit := <-hits:
		return hit
	case <-time.After(2 * time.Second):
		t.Fatal("no Nightwatch delivery within 2s")
		return nightwatchHit{}
	}
}

func TestCapture_Nightwatch(t *testing.T) {
	srv, hits := newNightwatchServer(t)

	r, err := New(&config.Config{
		AnalyticsOption:  config.AnalyticsNightwatch,
		NightwatchAPIURL: srv.URL,
		NightwatchAPIKey: "nw-key",
	})
	require.NoError(t, err)

	r.Capture(errors.New("chat failed: runtime offline"))

	hit := waitForHit(t, hits)
	assert.Equal(t, "Bearer nw-key", hit.auth)
	assert.Equal(t, "chat failed: runtime offline", hit.body["error"])
}

func TestCapture_NoneOptionDeliversNothing(t *testing.T) {
	srv, hits := newNightwatchServer(t)

	r, err := New(&config.Config{
		AnalyticsOption:  config.AnalyticsNone,
		NightwatchAPIURL: srv.URL,
		NightwatchAPIKey: "nw-key",
	})
	require.NoError(t, err)

	r.Capture(errors.New("should stay local"))

	select {
	case <-hits:
		t.Fatal("delivery happened despite analytics disabled")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCapture_NilErrorIsIgnored(t *testing.T) {
	srv, hits := newNightwatchServer(t)

	r, err := New(&config.Config{
		AnalyticsOption:  config.AnalyticsNightwatch,
		NightwatchAPIURL: srv.URL,
		NightwatchAPIKey: "nw-key",
	})
	require.NoError(t, err)

	r.Capture(nil)

	select {
	case <-hits:
		t.Fatal("nil error was delivered")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCapture_NightwatchWithoutCredentialsIsSkipped(t *testing.T) {
	r, err := New(&config.Config{AnalyticsOption: config.AnalyticsNightwatch})
	require.NoError(t, err)

	// Must not panic or block; there is nowhere to deliver to.
	r.Capture(errors.New("dropped on the floor"))
	time.Sleep(50 * time.Millisecond)
}

func TestNew_SentryWithoutDSNStaysDisabled(t *testing.T) {
	r, err := New(&config.Config{AnalyticsOption: config.AnalyticsSentry})
	require.NoError(t, err)
	assert.False(t, r.sentryEnabled)

	r.Capture(errors.New("no DSN, no delivery"))
	r.Close()
}
