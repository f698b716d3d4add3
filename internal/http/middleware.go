package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"spicemart-backend/pkg/auth"
)

const userIDKey = "userId"

// AuthRequired gates end-user routes on a bearer token and exposes the
// token's subject to the handlers.
func AuthRequired(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authorized, login again"})
			return
		}

		userID, err := tokens.VerifyUser(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// AdminRequired gates admin routes. The token travels in its own header
// and its payload must equal the configured shared secrets; there is no
// admin user identity behind it.
func AdminRequired(tokens *auth.Tokens, adminEmail, adminPassword string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader("token")
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authorized"})
			return
		}

		payload, err := tokens.VerifyAdmin(tokenStr)
		if err != nil || adminEmail == "" || payload != adminEmail+adminPassword {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authorized"})
			return
		}
		c.Next()
	}
}
