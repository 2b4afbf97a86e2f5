package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/monishaRema/zep-shift-server/internal/models"
	"github.com/monishaRema/zep-shift-server/internal/services"
)

const identityKey = "userEmail"

// RequireAuth extracts the bearer token, verifies it and attaches the
// caller's email to the context. Missing credentials are 401; a token
// that fails verification is 403.
func RequireAuth(verifier services.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"message": "Unauthorized: No auth header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.JSON(401, gin.H{"message": "Unauthorized: No token"})
			c.Abort()
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(403, gin.H{"message": "Forbidden: Invalid token"})
			c.Abort()
			return
		}

		c.Set(identityKey, identity.Email)
		c.Next()
	}
}

// AdminOnly looks up the verified caller's user record and rejects
// anyone without the admin role. Must run after RequireAuth.
func AdminOnly(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(identityKey)
		if email == "" {
			c.JSON(401, gin.H{"message": "Unauthorized access - no email found."})
			c.Abort()
			return
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil || user.Role != models.RoleAdmin {
			c.JSON(403, gin.H{"message": "Forbidden - Admins only."})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CallerEmail returns the verified email set by RequireAuth.
func CallerEmail(c *gin.Context) string {
	return c.GetString(identityKey)
}
