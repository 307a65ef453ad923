package handler

import (
	"github.com/gin-gonic/gin"

	"tec-planning/backend/internal/dto"
	"tec-planning/backend/internal/service"
	"tec-planning/backend/pkg/response"
)

// ProgramHandler public catalogue endpoints
type ProgramHandler struct {
	programSvc service.ProgramService
}

// NewProgramHandler creates ProgramHandler
func NewProgramHandler(programSvc service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programSvc: programSvc}
}

// ListPrograms program summaries sorted by name
// GET /programs
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	programs, err := h.programSvc.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, programs)
}

// GetProgram program with its block/course tree
// GET /programs/:code
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	program, err := h.programSvc.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, program)
}

// ListSections course offerings of a program
// GET /programs/:code/sections?term=
func (h *ProgramHandler) ListSections(c *gin.Context) {
	var q dto.SectionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	sections, err := h.programSvc.ListSections(c.Request.Context(), c.Param("code"), q.Term)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, sections)
}
