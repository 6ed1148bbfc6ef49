package handler

import (
	"net/http"

	"skill-matrix/internal/logger"
	"skill-matrix/internal/middleware"
	"skill-matrix/internal/model"
	"skill-matrix/internal/service"

	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct{ workflow *service.WorkflowService }

func NewAssessmentHandler(workflow *service.WorkflowService) *AssessmentHandler {
	return &AssessmentHandler{workflow: workflow}
}

// POST /api/hrinitiate (HR)
func (h *AssessmentHandler) Initiate(c *gin.Context) {
	var req model.InitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	results, err := h.workflow.InitiateAssessments(c.Request.Context(), req.Quarter, req.Year)
	if err != nil {
		writeError(c, err)
		return
	}
	logger.Info("assessments initiated", "quarter", req.Quarter, "year", req.Year, "employees", len(results))
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GET /api/employee/my-assessment (Employee, Lead)
func (h *AssessmentHandler) MyAssessment(c *gin.Context) {
	caller := middleware.GetCaller(c)
	assessment, err := h.workflow.CurrentAssessment(c.Request.Context(), caller.EmployeeID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

// POST /api/employee/submit-assessment (Employee, Lead)
func (h *AssessmentHandler) SubmitAssessment(c *gin.Context) {
	var req model.SubmitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	caller := middleware.GetCaller(c)

	updated, err := h.workflow.SubmitEmployeeRatings(c.Request.Context(), caller.EmployeeID, req.AssessmentID, req.Ratings)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// GET /api/lead/team-assessments (Lead)
func (h *AssessmentHandler) TeamAssessments(c *gin.Context) {
	caller := middleware.GetCaller(c)
	assessments, err := h.workflow.TeamSubmittedAssessments(c.Request.Context(), caller.EmployeeID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessments)
}

// POST /api/lead/submit-rating (Lead)
func (h *AssessmentHandler) SubmitLeadRating(c *gin.Context) {
	var req model.SubmitLeadRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	caller := middleware.GetCaller(c)

	updated, err := h.workflow.SubmitLeadRatings(c.Request.Context(), caller.EmployeeID,
		req.AssessmentID, req.EmployeeID, req.LeadComments, req.Ratings)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// GET /api/hr/pending-assessments (HR)
func (h *AssessmentHandler) PendingAssessments(c *gin.Context) {
	caller := middleware.GetCaller(c)
	assessments, err := h.workflow.HRPendingAssessments(c.Request.Context(), caller.EmployeeID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessments)
}

// POST /api/hr/approve-assessment (HR)
func (h *AssessmentHandler) ApproveAssessment(c *gin.Context) {
	var req model.ApproveAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	caller := middleware.GetCaller(c)

	decision, err := h.workflow.ApproveByHR(c.Request.Context(), caller.EmployeeID,
		req.AssessmentID, req.EmployeeID, req.HrComments, *req.HrApprove)
	if err != nil {
		writeError(c, err)
		return
	}
	logger.Info("hr decision recorded", "assessment_id", decision.AssessmentID, "approved", decision.HrApproved)
	c.JSON(http.StatusOK, decision)
}
