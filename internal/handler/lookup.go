package handler

import (
	"net/http"
	"strconv"

	"skill-matrix/internal/service"

	"github.com/gin-gonic/gin"
)

type LookupHandler struct{ lookup *service.LookupService }

func NewLookupHandler(lookup *service.LookupService) *LookupHandler {
	return &LookupHandler{lookup: lookup}
}

// GET /api/lookup/roles
func (h *LookupHandler) Roles(c *gin.Context) {
	roles, err := h.lookup.Roles(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

// GET /api/lookup/designations
func (h *LookupHandler) Designations(c *gin.Context) {
	designations, err := h.lookup.Designations(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, designations)
}

// GET /api/lookup/teams
func (h *LookupHandler) Teams(c *gin.Context) {
	teams, err := h.lookup.Teams(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// GET /api/lookup/categories
func (h *LookupHandler) Categories(c *gin.Context) {
	categories, err := h.lookup.Categories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GET /api/lookup/hr-list
func (h *LookupHandler) HRList(c *gin.Context) {
	list, err := h.lookup.HRList(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/skills
func (h *LookupHandler) Skills(c *gin.Context) {
	skills, err := h.lookup.Skills(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

// GET /api/skills/:id/levels
func (h *LookupHandler) SkillLevels(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid skill id"})
		return
	}
	levels, err := h.lookup.SkillLevels(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, levels)
}

// GET /api/designations/:id/thresholds
func (h *LookupHandler) Thresholds(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid designation id"})
		return
	}
	thresholds, err := h.lookup.ThresholdsByDesignation(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, thresholds)
}

// GET /api/hr/teams (HR)
func (h *LookupHandler) TeamOverviews(c *gin.Context) {
	overviews, err := h.lookup.TeamOverviews(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, overviews)
}

// GET /api/hr/teams/:id/members (HR)
func (h *LookupHandler) TeamMembers(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team id"})
		return
	}
	members, err := h.lookup.TeamMembers(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}
