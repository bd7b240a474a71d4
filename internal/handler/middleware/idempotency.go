package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"course-reservation/internal/handler/httperr"
	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

const (
	IdempotencyKeyHeader      = "Idempotency-Key"
	IdempotentReplayedHeader  = "Idempotent-Replayed"
	maxIdempotencyKeyLength   = 255
	idempotencyCleanupTimeout = 2 * time.Second

	// seconds a duplicate of an in-flight request is asked to wait
	inFlightRetryAfter = "1"
)

var (
	ErrIdempotencyKeyTooLong = fmt.Errorf("%w: Idempotency-Key exceeds %d characters", errs.ErrInvalidArgument, maxIdempotencyKeyLength)
	ErrIdempotencyInFlight   = fmt.Errorf("%w: a request with this Idempotency-Key is still being processed", errs.ErrConflict)
	ErrIdempotencyMismatch   = fmt.Errorf("%w: Idempotency-Key was already used with a different request", errs.ErrInvalidArgument)
)

type IdempotencyMiddleware struct {
	store  shared.IdempotencyStore
	ttl    time.Duration
	logger *slog.Logger
}

func NewIdempotencyMiddleware(store shared.IdempotencyStore, ttl time.Duration, logger *slog.Logger) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{store: store, ttl: ttl, logger: logger}
}

// Handle replays the stored response of a completed request carrying the same
// Idempotency-Key. Responses with status >= 500 are not stored so the caller
// can retry under the same key.
func (m *IdempotencyMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			httperr.Abort(c, ErrIdempotencyKeyTooLong)
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, fmt.Errorf("%w: %s", errs.ErrInvalidArgument, err.Error()), "Invalid request body", nil)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		ctx := c.Request.Context()
		scoped := m.scopedKey(c, key)
		fingerprint := requestFingerprint(c.Request.Method, c.Request.URL.Path, body)

		existing, claimed, err := m.store.Claim(ctx, scoped, fingerprint, m.ttl)
		if err != nil {
			m.logger.Error("idempotency claim failed", "key", key, "error", err.Error())
			// a claim that expired mid-check is as transient as one still held
			if errs.Is(err, errs.ErrConflict) {
				c.Header("Retry-After", inFlightRetryAfter)
			}
			httperr.Abort(c, err)
			return
		}

		if !claimed {
			m.replay(c, existing, fingerprint)
			return
		}

		rec := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		// the request context may already be cancelled here
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), idempotencyCleanupTimeout)
		defer cancel()

		status := rec.Status()
		if status >= http.StatusInternalServerError {
			if err := m.store.Release(cleanupCtx, scoped); err != nil {
				m.logger.Warn("idempotency release failed", "key", key, "error", err.Error())
			}
			return
		}

		record := shared.IdempotencyRecord{
			Fingerprint: fingerprint,
			StatusCode:  status,
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.buf.Bytes(),
		}
		if err := m.store.Complete(cleanupCtx, scoped, record, m.ttl); err != nil {
			m.logger.Warn("idempotency record not stored", "key", key, "error", err.Error())
		}
	}
}

func (m *IdempotencyMiddleware) replay(c *gin.Context, existing *shared.IdempotencyRecord, fingerprint string) {
	switch {
	case existing == nil || existing.Status != shared.IdempotencyStatusCompleted:
		c.Header("Retry-After", inFlightRetryAfter)
		httperr.Abort(c, ErrIdempotencyInFlight)
	case existing.Fingerprint != fingerprint:
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, ErrIdempotencyMismatch, ErrIdempotencyMismatch.Error(), nil)
	default:
		c.Header(IdempotentReplayedHeader, "true")
		c.Data(existing.StatusCode, existing.ContentType, existing.Body)
		c.Abort()
	}
}

// keys are scoped per caller and endpoint
func (m *IdempotencyMiddleware) scopedKey(c *gin.Context, key string) string {
	caller := "anonymous"
	if identity, ok := GetIdentity(c); ok {
		caller = identity.UserID
	}
	return strings.Join([]string{caller, c.Request.Method, c.Request.URL.Path, key}, "|")
}

func requestFingerprint(method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{0})
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

type recordingWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
