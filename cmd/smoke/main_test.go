//go:build unit

package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTargets_Decode(t *testing.T) {
	t.Run("parses name=url pairs", func(t *testing.T) {
		var targets Targets
		require.NoError(t, targets.Decode("auth=http://auth:3001, courses=http://courses:3002"))
		assert.Equal(t, Targets{
			{Name: "auth", URL: "http://auth:3001"},
			{Name: "courses", URL: "http://courses:3002"},
		}, targets)
	})

	t.Run("rejects an item without a name", func(t *testing.T) {
		var targets Targets
		assert.Error(t, targets.Decode("http://auth:3001"))
	})
}

func TestRun(t *testing.T) {
	var calls atomic.Int32
	flaky := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer flaky.Close()

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer down.Close()

	cfg := Config{Attempts: 5, Interval: time.Millisecond, Timeout: time.Second}

	t.Run("all healthy after retries", func(t *testing.T) {
		cfg := cfg
		cfg.Targets = Targets{{Name: "courses", URL: flaky.URL}}
		assert.Equal(t, 0, run(context.Background(), cfg, discardLogger()))
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("one unhealthy target fails the run", func(t *testing.T) {
		cfg := cfg
		cfg.Targets = Targets{{Name: "courses", URL: flaky.URL}, {Name: "payments", URL: down.URL}}
		assert.Equal(t, 1, run(context.Background(), cfg, discardLogger()))
	})
}
