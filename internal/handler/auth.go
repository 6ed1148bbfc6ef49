package handler

import (
	"net/http"

	"skill-matrix/internal/logger"
	"skill-matrix/internal/middleware"
	"skill-matrix/internal/model"
	"skill-matrix/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ auth *service.AuthService }

func NewAuthHandler(auth *service.AuthService) *AuthHandler { return &AuthHandler{auth: auth} }

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("login failed", "email", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	role, _ := model.ParseRoleKind(user.Role)
	token, err := middleware.IssueToken(model.Caller{
		EmployeeID:    user.EmployeeID,
		Name:          user.EmployeeName,
		Role:          role,
		DesignationID: user.DesignationID,
		TeamID:        user.TeamID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}

	logger.Info("login ok", "uid", user.EmployeeID, "role", user.Role)
	c.JSON(http.StatusOK, model.LoginResponse{Token: token, User: *user})
}

// POST /api/auth/register (HR)
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	emp, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	logger.Info("employee registered", "employee_id", emp.EmployeeID, "email", emp.Email)
	c.JSON(http.StatusCreated, emp)
}

// GET /api/auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	caller := middleware.GetCaller(c)
	entry, err := h.auth.Profile(c.Request.Context(), caller.EmployeeID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// POST /api/auth/update-password
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req model.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	caller := middleware.GetCaller(c)
	if err := h.auth.UpdatePassword(c.Request.Context(), caller.EmployeeID, req.OldPassword, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/auth/employees (HR, Lead)
func (h *AuthHandler) Employees(c *gin.Context) {
	caller := middleware.GetCaller(c)
	entries, err := h.auth.Employees(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
