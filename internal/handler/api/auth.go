package api

import (
	"net/http"

	resdto "course-reservation/internal/handler/dto/response"
	"course-reservation/internal/handler/httperr"
	"course-reservation/internal/handler/middleware"
	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	tokenValidator usecase.TokenValidator
}

func NewAuthHandler(tokenValidator usecase.TokenValidator) *AuthHandler {
	return &AuthHandler{
		tokenValidator: tokenValidator,
	}
}

// @Summary Verify token
// @Description Resolve a bearer token to the caller's identity
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.IdentityResponse
// @Failure 401 {object} httperr.Response
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthorized, "Access token required", nil)
		return
	}

	identity, err := h.tokenValidator.ValidateToken(token)
	if err != nil {
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
		return
	}

	resdto.OK(c, http.StatusOK, resdto.FromIdentity(identity))
}
