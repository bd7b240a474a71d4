package api

import (
	"net/http"

	reqdto "course-reservation/internal/handler/dto/request"
	resdto "course-reservation/internal/handler/dto/response"
	"course-reservation/internal/handler/httperr"
	"course-reservation/internal/handler/middleware"
	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// LedgerHandler exposes the raw ledger and the reservation coordinator.
type LedgerHandler struct {
	ledger       commands.LedgerCommands
	reservations commands.ReservationCommands
}

func NewLedgerHandler(ledger commands.LedgerCommands, reservations commands.ReservationCommands) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, reservations: reservations}
}

// @Summary Reserve slots
// @Description Debit slots without a prerequisite check
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Replays the first response for the same key"
// @Param id path string true "Course ID"
// @Param request body reqdto.SlotsRequest true "Slots"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /courses/{id}/reserve [post]
func (h *LedgerHandler) Reserve(c *gin.Context) {
	var req reqdto.SlotsRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.ledger.Debit(c.Request.Context(), c.Param("id"), req.Slots)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resdto.OK(c, http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Release slots
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Replays the first response for the same key"
// @Param id path string true "Course ID"
// @Param request body reqdto.SlotsRequest true "Slots"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /courses/{id}/release [post]
func (h *LedgerHandler) Release(c *gin.Context) {
	var req reqdto.SlotsRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.ledger.Credit(c.Request.Context(), c.Param("id"), req.Slots)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resdto.OK(c, http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Reserve for enrollment
// @Description Check prerequisites, then debit. Students reserve only for themselves.
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Replays the first response for the same key"
// @Param id path string true "Course ID"
// @Param request body reqdto.EnrollmentRequest true "Enrollment"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /courses/{id}/enrollments [post]
func (h *LedgerHandler) ReserveForEnrollment(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthorized, "Unauthorized", nil)
		return
	}

	var req reqdto.EnrollmentRequest
	if !bindJSON(c, &req) {
		return
	}

	studentID := req.StudentID
	if studentID == "" {
		studentID = identity.UserID
	}
	if !identity.CanActFor(studentID) {
		httperr.AbortWithError(c, http.StatusForbidden, errs.ErrUnauthorized, "Students may only reserve for themselves", nil)
		return
	}

	view, err := h.reservations.ReserveForEnrollment(c.Request.Context(), c.Param("id"), studentID, req.Slots)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resdto.OK(c, http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Release for cancellation
// @Description Credit slots back; compensating releases are retried on transient failures
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Replays the first response for the same key"
// @Param id path string true "Course ID"
// @Param request body reqdto.CancellationRequest true "Cancellation"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 409 {object} httperr.Response
// @Router /courses/{id}/cancellations [post]
func (h *LedgerHandler) ReleaseForCancellation(c *gin.Context) {
	var req reqdto.CancellationRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.reservations.ReleaseForCancellation(c.Request.Context(), c.Param("id"), req.Slots, req.Compensating)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resdto.OK(c, http.StatusOK, resdto.FromAvailabilityView(view))
}
