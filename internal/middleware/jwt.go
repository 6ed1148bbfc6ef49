package middleware

import (
	"net/http"
	"strings"
	"time"

	"skill-matrix/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte("skill-matrix-secret")

// SetSecret overrides the signing key from config before the router starts.
func SetSecret(s string) {
	if s != "" {
		jwtSecret = []byte(s)
	}
}

// IssueToken signs the caller identity the workflow trusts downstream.
func IssueToken(c model.Caller) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":            c.EmployeeID,
		"name":           c.Name,
		"role":           string(c.Role),
		"designation_id": c.DesignationID,
		"team_id":        c.TeamID,
		"exp":            time.Now().Add(7 * 24 * time.Hour).Unix(),
	}).SignedString(jwtSecret)
}

func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		token, err := jwt.Parse(auth[7:], func(t *jwt.Token) (interface{}, error) {
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		claims := token.Claims.(jwt.MapClaims)

		roleName, _ := claims["role"].(string)
		role, ok := model.ParseRoleKind(roleName)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown role"})
			return
		}

		caller := model.Caller{
			EmployeeID: intClaim(claims, "uid"),
			Role:       role,
		}
		caller.Name, _ = claims["name"].(string)
		caller.DesignationID = intClaim(claims, "designation_id")
		caller.TeamID = intClaim(claims, "team_id")
		c.Set("caller", caller)

		// Renew when less than a day remains.
		if exp, ok := claims["exp"].(float64); ok {
			if time.Until(time.Unix(int64(exp), 0)) < 24*time.Hour {
				if newToken, err := IssueToken(caller); err == nil {
					c.Header("X-New-Token", newToken)
				}
			}
		}

		c.Next()
	}
}

// RequireRole gates a route group to the given roles. The role set is closed;
// anything the token carries outside it never gets past JWTAuth.
func RequireRole(roles ...model.RoleKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := GetCaller(c)
		for _, r := range roles {
			if caller.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// GetCaller returns the authenticated caller set by JWTAuth.
func GetCaller(c *gin.Context) model.Caller {
	v, _ := c.Get("caller")
	caller, _ := v.(model.Caller)
	return caller
}

func intClaim(claims jwt.MapClaims, key string) int {
	if f, ok := claims[key].(float64); ok {
		return int(f)
	}
	return 0
}
