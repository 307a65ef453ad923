package handler

import (
	"github.com/gin-gonic/gin"

	"tec-planning/backend/internal/dto"
	"tec-planning/backend/internal/service"
	"tec-planning/backend/pkg/response"
)

// UserHandler endpoints under /users/me
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetProfile GET /users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := MustGetUser(c)
	if !ok {
		return
	}
	response.OK(c, h.userSvc.GetProfile(c.Request.Context(), user))
}

// UpdateProfile PUT /users/me
//
// Every field is optional. A new programCode replaces all course statuses and
// schedule entries of the user.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user, ok := MustGetUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.userSvc.UpdateProfile(c.Request.Context(), user, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, result)
}

// ListCourseStatuses GET /users/me/course-status
func (h *UserHandler) ListCourseStatuses(c *gin.Context) {
	user, ok := MustGetUser(c)
	if !ok {
		return
	}

	statuses, err := h.userSvc.ListCourseStatuses(c.Request.Context(), user)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, statuses)
}

// UpdateCourseStatus PUT /users/me/course-status/:courseCode
func (h *UserHandler) UpdateCourseStatus(c *gin.Context) {
	user, ok := MustGetUser(c)
	if !ok {
		return
	}

	// an unreadable body leaves Status empty, which the service rejects
	var req dto.UpdateCourseStatusRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.userSvc.UpdateCourseStatus(c.Request.Context(), user, c.Param("courseCode"), req.Status); err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, "Status updated")
}

// GetDashboard GET /users/me/dashboard
func (h *UserHandler) GetDashboard(c *gin.Context) {
	user, ok := MustGetUser(c)
	if !ok {
		return
	}

	dashboard, err := h.userSvc.GetDashboard(c.Request.Context(), user)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, dashboard)
}

// GetSchedule GET /users/me/schedule
func (h *UserHandler) GetSchedule(c *gin.Context) {
	user, ok := MustGetUser(c)
	if !ok {
		return
	}

	entries, err := h.userSvc.GetSchedule(c.Request.Context(), user)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, entries)
}

// GetCurriculum GET /users/me/curriculum
func (h *UserHandler) GetCurriculum(c *gin.Context) {
	user, ok := MustGetUser(c)
	if !ok {
		return
	}

	curriculum, err := h.userSvc.GetCurriculum(c.Request.Context(), user)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, curriculum)
}
