package middleware

import (
	"net/http"
	"strings"

	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the Bearer token and stores the claims in the
// request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RoleMiddleware rejects requests whose token carries a different role.
func RoleMiddleware(requiredRole models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := currentRole(c)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}
		if role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient permissions"})
			return
		}
		c.Next()
	}
}

func currentRole(c *gin.Context) models.UserRole {
	roleVal, exists := c.Get("role")
	if !exists {
		return ""
	}
	switch v := roleVal.(type) {
	case models.UserRole:
		return v
	case string:
		return models.UserRole(v)
	default:
		return ""
	}
}

// GetUserID returns the authenticated user's ID, or "" when the request
// never passed AuthMiddleware.
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}
	id, ok := userID.(string)
	if !ok {
		return ""
	}
	return id
}
