package api

import (
	"fmt"
	"net/http"

	"course-reservation/internal/handler/httperr"
	"course-reservation/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, fmt.Errorf("%w: %s", errs.ErrInvalidArgument, err.Error()), "Invalid request", nil)
		return false
	}
	return true
}
