package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"skill-matrix/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(roles ...model.RoleKind) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/api", JWTAuth())
	if len(roles) > 0 {
		group = group.Group("", RequireRole(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		caller := GetCaller(c)
		c.JSON(http.StatusOK, gin.H{"uid": caller.EmployeeID, "role": string(caller.Role)})
	})
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_MissingToken(t *testing.T) {
	w := doRequest(newTestRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_GarbageToken(t *testing.T) {
	w := doRequest(newTestRouter(), "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_SetsCaller(t *testing.T) {
	token, err := IssueToken(model.Caller{EmployeeID: 7, Name: "Alice", Role: model.RoleEmployee, DesignationID: 2, TeamID: 3})
	require.NoError(t, err)

	w := doRequest(newTestRouter(), token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uid":7`)
	assert.Contains(t, w.Body.String(), `"role":"Employee"`)
}

func TestRequireRole_ForbidsMismatch(t *testing.T) {
	token, err := IssueToken(model.Caller{EmployeeID: 7, Role: model.RoleEmployee})
	require.NoError(t, err)

	w := doRequest(newTestRouter(model.RoleHR), token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_AllowsAnyListedRole(t *testing.T) {
	token, err := IssueToken(model.Caller{EmployeeID: 5, Role: model.RoleLead})
	require.NoError(t, err)

	w := doRequest(newTestRouter(model.RoleHR, model.RoleLead), token)
	assert.Equal(t, http.StatusOK, w.Code)
}
