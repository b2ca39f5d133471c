package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/Shishir2405/notenex-api/internal/config"
	"github.com/Shishir2405/notenex-api/internal/models"
)

func unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"message": message,
	})
	c.Abort()
}

// AuthRequired validates the bearer token and rejects banned or
// deactivated accounts regardless of token validity.
func AuthRequired(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Authorization header required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			unauthorized(c, "Invalid authorization format")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			unauthorized(c, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauthorized(c, "Invalid token claims")
			return
		}

		userID, _ := claims["user_id"].(string)
		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			unauthorized(c, "Account not found")
			return
		}

		if user.IsBanned && (user.BanExpiresAt == nil || user.BanExpiresAt.After(time.Now())) {
			unauthorized(c, "Account is banned")
			return
		}
		if !user.IsActive {
			unauthorized(c, "Account is deactivated")
			return
		}

		c.Set("user_id", user.ID.String())
		c.Set("role", string(user.Role))
		c.Next()
	}
}

func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != string(models.RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
