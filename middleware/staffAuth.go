package middleware

import (
	"net/http"
	"strings"

	"lengolf/utils"

	"github.com/gin-gonic/gin"
)

// StaffAuthMiddleware validates the staff JWT and stores the staff identity
// on the request context. Approval decisions are always attributed to a
// specific staff member.
func StaffAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		staffID, name, err := utils.ExtractStaffFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("staffID", staffID)
		c.Set("staffName", name)
		c.Next()
	}
}
