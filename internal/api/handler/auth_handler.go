package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"tec-planning/backend/internal/dto"
	"tec-planning/backend/internal/service"
	"tec-planning/backend/pkg/response"
)

// AuthHandler account endpoints
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	useJSONFieldNames()
	return &AuthHandler{authSvc: authSvc}
}

// Signup creates an account and returns a token for it
// POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		missing := missingFields(err, &req)
		if len(missing) == 0 {
			response.BadRequest(c, "Invalid request body")
			return
		}
		response.BadRequest(c, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	result, err := h.authSvc.Signup(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, result)
}

// Login exchanges credentials for a token
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, service.ErrCredentialsRequired)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout revokes the presented token
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		response.FromError(c, err)
		return
	}

	response.Message(c, "Logged out")
}
