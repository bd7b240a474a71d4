//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"course-reservation/internal/domain/user"
	"course-reservation/internal/pkg/config"
	"course-reservation/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

// JWTHelper signs tokens the way the auth service does, with the shared secret.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID string, role user.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	return h.sign(t, duration, userID, role)
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID string, role user.Role) string {
	t.Helper()
	// well past the validator's clock skew leeway
	return h.sign(t, -5*time.Minute, userID, role)
}

func (h *JWTHelper) sign(t *testing.T, duration time.Duration, userID string, role user.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(jwt.Claims{
		UserID: userID,
		Email:  userID + "@example.edu",
		Role:   string(role),
	})
	require.NoError(t, err)
	return token
}
