package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"course-reservation/internal/domain/user"
	"course-reservation/internal/handler/httperr"
	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const ctxIdentityKey = "identity"

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthorized, "Access token required", nil)
			return
		}

		identity, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		SetIdentity(c, identity)
		c.Next()
	}
}

// RequireRoleAtLeast must run after RequireAuth. Rejections are 403 with kind Unauthorized.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("identity missing from context"), "Internal server error", nil)
			return
		}

		if !identity.Role.AtLeast(minRole) {
			httperr.AbortWithError(c, http.StatusForbidden, errs.ErrUnauthorized, "Insufficient permissions", nil)
			return
		}

		c.Next()
	}
}

func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func SetIdentity(c *gin.Context, identity user.Identity) {
	c.Set(ctxIdentityKey, identity)
}

func GetIdentity(c *gin.Context) (user.Identity, bool) {
	v, exists := c.Get(ctxIdentityKey)
	if !exists {
		return user.Identity{}, false
	}

	identity, ok := v.(user.Identity)
	return identity, ok
}
