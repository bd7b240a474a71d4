package httperr

import (
	"net/http"

	"course-reservation/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Kind                 string   `json:"kind"`
	Message              string   `json:"message"`
	MissingPrerequisites []string `json:"missingPrerequisites,omitempty"`
}

// Response is the failure envelope: {"success":false,"error":{...}}.
type Response struct {
	Status  int       `json:"-"`
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
	Detail  any       `json:"detail,omitempty"`
}

var statusByKind = map[errs.Kind]int{
	errs.KindNotFound:            http.StatusNotFound,
	errs.KindCapacityExceeded:    http.StatusConflict,
	errs.KindInvalidRelease:      http.StatusConflict,
	errs.KindPrerequisitesNotMet: http.StatusUnprocessableEntity,
	errs.KindCourseInactive:      http.StatusConflict,
	errs.KindInvalidArgument:     http.StatusBadRequest,
	errs.KindUnauthorized:        http.StatusUnauthorized,
	errs.KindConflict:            http.StatusConflict,
	errs.KindUnavailable:         http.StatusServiceUnavailable,
	errs.KindTimeout:             http.StatusGatewayTimeout,
	errs.KindInternal:            http.StatusInternalServerError,
}

func StatusFor(kind errs.Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Abort derives status and kind from err. Internal errors never leak their message.
func Abort(c *gin.Context, err error) {
	kind := errs.KindOf(err)
	msg := err.Error()
	if kind == errs.KindInternal {
		msg = "Internal server error"
	}
	AbortWithError(c, StatusFor(kind), err, msg, nil)
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Kind = string(errs.KindOf(err))
	resp.Error.Message = msg
	resp.Error.MissingPrerequisites = errs.MissingPrerequisites(err)
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
