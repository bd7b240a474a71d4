package api

import (
	"net/http"

	reqdto "course-reservation/internal/handler/dto/request"
	resdto "course-reservation/internal/handler/dto/response"
	"course-reservation/internal/handler/httperr"
	"course-reservation/internal/usecase/commands"
	"course-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	cmds commands.CourseCommands
	q    queries.CourseQueries
}

func NewCourseHandler(cmds commands.CourseCommands, q queries.CourseQueries) *CourseHandler {
	return &CourseHandler{cmds: cmds, q: q}
}

// @Summary Publish course
// @Description Create the availability record of a new course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PublishCourseRequest true "Publish course request"
// @Success 201 {object} resdto.CourseResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /courses [post]
func (h *CourseHandler) Publish(c *gin.Context) {
	var req reqdto.PublishCourseRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.cmds.PublishCourse(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.Header("Location", "/api/courses/"+view.CourseID)
	resdto.OK(c, http.StatusCreated, resdto.FromCourseView(view))
}

// @Summary Get course
// @Description Course snapshot including its prerequisites
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} resdto.CourseResponse
// @Failure 404 {object} httperr.Response
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	view, err := h.q.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resdto.OK(c, http.StatusOK, resdto.FromCourseView(view))
}

// @Summary Check availability
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 404 {object} httperr.Response
// @Router /courses/{id}/availability [get]
func (h *CourseHandler) Availability(c *gin.Context) {
	view, err := h.q.GetAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resdto.OK(c, http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Check prerequisites
// @Description Which of the course's prerequisites the student has not completed
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} resdto.PrerequisiteResponse
// @Failure 404 {object} httperr.Response
// @Router /courses/{id}/prerequisites/{studentId} [get]
func (h *CourseHandler) Prerequisites(c *gin.Context) {
	view, err := h.q.CheckPrerequisites(c.Request.Context(), c.Param("id"), c.Param("studentId"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resdto.OK(c, http.StatusOK, resdto.FromPrerequisiteView(view))
}

// @Summary Change course status
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param request body reqdto.ChangeStatusRequest true "Target status"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /courses/{id}/status [patch]
func (h *CourseHandler) ChangeStatus(c *gin.Context) {
	var req reqdto.ChangeStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.cmds.ChangeStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resdto.OK(c, http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Record completion
// @Description Mark a course as completed by a student
// @Tags students
// @Accept json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Param request body reqdto.RecordCompletionRequest true "Completed course"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Router /students/{studentId}/completions [post]
func (h *CourseHandler) RecordCompletion(c *gin.Context) {
	var req reqdto.RecordCompletionRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.cmds.RecordCompletion(c.Request.Context(), c.Param("studentId"), req.CourseID); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
