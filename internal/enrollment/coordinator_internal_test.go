//go:build unit

package enrollment

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"course-reservation/internal/client"
	"course-reservation/internal/domain/reservation"
	"course-reservation/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogTransition(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	attempt, err := reservation.NewAttempt("CS101", "student-1", 1, now)
	require.NoError(t, err)

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	logTransition(log, "confirm", attempt.Confirm(now))

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), `msg="illegal attempt transition"`)
	assert.Contains(t, buf.String(), "step=confirm")
	assert.Equal(t, reservation.StateRequested, attempt.State())

	buf.Reset()
	logTransition(log, "prerequisites checked", attempt.MarkPrerequisiteChecked(now))
	assert.Empty(t, buf.String())
}

func TestReleaseIsPermanent(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "timeout", err: &client.Error{Kind: errs.KindTimeout}, want: false},
		{name: "unavailable", err: &client.Error{Kind: errs.KindUnavailable}, want: false},
		{name: "internal", err: &client.Error{Kind: errs.KindInternal}, want: false},
		{name: "duplicate in flight", err: &client.Error{Kind: errs.KindConflict, InFlight: true}, want: false},
		{name: "settled conflict", err: &client.Error{Kind: errs.KindConflict}, want: true},
		{name: "invalid release", err: &client.Error{Kind: errs.KindInvalidRelease}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, releaseIsPermanent(tt.err))
		})
	}
}
