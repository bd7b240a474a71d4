package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"course-reservation/internal/pkg/errs"
)

// CheckHealth reports nil when GET {baseURL}/health answers 200 within timeout.
func CheckHealth(ctx context.Context, hc *http.Client, baseURL string, timeout time.Duration) error {
	if hc == nil {
		hc = &http.Client{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/health", nil)
	if err != nil {
		return &Error{Kind: errs.KindInvalidArgument, Message: "build health request", Cause: err}
	}

	resp, err := hc.Do(req)
	if err != nil {
		return transportError(ctx, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &Error{Kind: errs.KindUnavailable, Message: fmt.Sprintf("health returned %d", resp.StatusCode)}
	}
	return nil
}
