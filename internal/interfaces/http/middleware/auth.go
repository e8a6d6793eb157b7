// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/activity"
	"github.com/your-org/inventory-backend/internal/domain/user"
	"github.com/your-org/inventory-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// AuthMiddleware validates the bearer token and loads the active account
// behind it. Deactivated and deleted accounts are rejected even while their
// tokens are still unexpired.
func AuthMiddleware(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		var account user.User
		err = db.Where("id = ? AND is_active = ?", claims.UserID, true).First(&account).Error
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Account not found or deactivated",
			})
			c.Abort()
			return
		}

		c.Set("user_id", account.ID)
		c.Set("user_email", account.Email)
		c.Set("user_fullname", account.FullName)
		c.Set("user_role", string(account.Role))
		c.Set("is_superuser", account.IsSuperuser)

		c.Next()
	}
}

// GetUserIDFromContext extracts user ID from gin context
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetActorFromContext builds the activity actor for the authenticated user
func GetActorFromContext(c *gin.Context) (activity.Actor, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return activity.Actor{}, false
	}
	return activity.Actor{
		ID:       userID.(uint),
		Email:    c.GetString("user_email"),
		FullName: c.GetString("user_fullname"),
	}, true
}

// IsSuperuserFromContext checks if the authenticated user is a superuser
func IsSuperuserFromContext(c *gin.Context) bool {
	isSuperuser, exists := c.Get("is_superuser")
	if !exists {
		return false
	}
	return isSuperuser.(bool)
}
