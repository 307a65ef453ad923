package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tec-planning/backend/internal/service"
)

// Handler aggregates every HTTP handler
type Handler struct {
	Auth    *AuthHandler
	Program *ProgramHandler
	User    *UserHandler
	Export  *ExportHandler
}

// NewHandler creates the handler set
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth),
		Program: NewProgramHandler(svc.Program),
		User:    NewUserHandler(svc.User),
		Export:  NewExportHandler(svc.Export),
	}
}

// Health liveness check
// GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
