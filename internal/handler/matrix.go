package handler

import (
	"net/http"

	"skill-matrix/internal/middleware"
	"skill-matrix/internal/service"

	"github.com/gin-gonic/gin"
)

type MatrixHandler struct{ matrix *service.MatrixService }

func NewMatrixHandler(matrix *service.MatrixService) *MatrixHandler {
	return &MatrixHandler{matrix: matrix}
}

// GET /api/employee/approved-skill-matrix (Employee, Lead)
func (h *MatrixHandler) ApprovedSkillMatrix(c *gin.Context) {
	caller := middleware.GetCaller(c)
	matrix, err := h.matrix.ApprovedSkillMatrix(c.Request.Context(), caller.EmployeeID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, matrix)
}

// GET /api/team/skill-matrix (Lead)
func (h *MatrixHandler) TeamSkillMatrix(c *gin.Context) {
	caller := middleware.GetCaller(c)
	matrix, err := h.matrix.TeamSkillMatrix(c.Request.Context(), caller.EmployeeID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, matrix)
}
