// Command smoke polls GET /health on every deployed service and exits non-zero
// when any of them stays unhealthy.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"course-reservation/internal/client"
	"course-reservation/internal/pkg/retry"

	"github.com/kelseyhightower/envconfig"
)

type Target struct {
	Name string
	URL  string
}

// Targets decodes "name=url,name=url".
type Targets []Target

func (t *Targets) Decode(value string) error {
	var out Targets
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, url, ok := strings.Cut(item, "=")
		if !ok || name == "" || url == "" {
			return fmt.Errorf("invalid smoke target %q, want name=url", item)
		}
		out = append(out, Target{Name: name, URL: url})
	}
	*t = out
	return nil
}

type Config struct {
	Targets  Targets       `envconfig:"SMOKE_TARGETS" required:"true"`
	Attempts uint64        `envconfig:"SMOKE_ATTEMPTS" default:"10"`
	Interval time.Duration `envconfig:"SMOKE_INTERVAL" default:"2s"`
	Timeout  time.Duration `envconfig:"SMOKE_TIMEOUT" default:"3s"`
}

type result struct {
	target Target
	err    error
}

func check(ctx context.Context, hc *http.Client, cfg Config, t Target, logger *slog.Logger) error {
	attempts := cfg.Attempts
	if attempts == 0 {
		attempts = 1
	}
	policy := retry.Policy{InitialInterval: cfg.Interval, MaxInterval: cfg.Interval, MaxRetries: attempts - 1}

	return retry.Do(ctx, policy,
		func(ctx context.Context) error {
			return client.CheckHealth(ctx, hc, t.URL, cfg.Timeout)
		},
		nil,
		func(err error, wait time.Duration) {
			logger.Debug("service not healthy yet", "service", t.Name, "url", t.URL, "wait", wait.String(), "error", err.Error())
		},
	)
}

func run(ctx context.Context, cfg Config, logger *slog.Logger) int {
	hc := &http.Client{}
	results := make([]result, len(cfg.Targets))

	var wg sync.WaitGroup
	for i, t := range cfg.Targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = result{target: t, err: check(ctx, hc, cfg, t, logger)}
		}()
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			logger.Error("service unhealthy", "service", r.target.Name, "url", r.target.URL, "error", r.err.Error())
			continue
		}
		logger.Info("service healthy", "service", r.target.Name, "url", r.target.URL)
	}

	if failed > 0 {
		logger.Error("smoke check failed", "unhealthy", failed, "total", len(results))
		return 1
	}
	logger.Info("smoke check passed", "total", len(results))
	return 0
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		logger.Error("failed to process env config", "error", err)
		os.Exit(2)
	}

	os.Exit(run(context.Background(), cfg, logger))
}
