package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Shishir2405/notenex-api/internal/config"
	"github.com/Shishir2405/notenex-api/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
	College  string `json:"college"`
	Course   string `json:"course"`
	Semester string `json:"semester"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

func Register(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		// Username and email are both unique
		var existing int64
		if err := db.Model(&models.User{}).
			Where("email = ? OR username = ?", req.Email, req.Username).
			Count(&existing).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to create user")
			return
		}
		if existing > 0 {
			respondError(c, http.StatusConflict, "Username or email already exists")
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		user := models.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: string(hashedPassword),
			Role:         models.RoleStudent,
			FullName:     req.FullName,
			College:      req.College,
			Course:       req.Course,
			Semester:     req.Semester,
		}
		user.RecalculateScore()

		if err := db.Create(&user).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to create user")
			return
		}

		accessToken, err := generateToken(user.ID, user.Role, cfg.JWTSecret, cfg.JWTAccessExpiry)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to generate token")
			return
		}
		refreshToken, err := generateToken(user.ID, user.Role, cfg.JWTSecret, cfg.JWTRefreshExpiry)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to generate refresh token")
			return
		}

		respondData(c, http.StatusCreated, AuthResponse{
			User:         &user,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		})
	}
}

func Login(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		// Banned accounts are rejected even with valid credentials
		if user.IsBanned && (user.BanExpiresAt == nil || user.BanExpiresAt.After(time.Now())) {
			respondError(c, http.StatusUnauthorized, "Account is banned")
			return
		}
		if !user.IsActive {
			respondError(c, http.StatusUnauthorized, "Account is deactivated")
			return
		}

		accessToken, err := generateToken(user.ID, user.Role, cfg.JWTSecret, cfg.JWTAccessExpiry)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to generate token")
			return
		}
		refreshToken, err := generateToken(user.ID, user.Role, cfg.JWTSecret, cfg.JWTRefreshExpiry)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to generate refresh token")
			return
		}

		respondData(c, http.StatusOK, AuthResponse{
			User:         &user,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		})
	}
}

func GetCurrentUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var user models.User
		if err := db.Preload("Warnings").First(&user, "id = ?", userID).Error; err != nil {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}

		respondData(c, http.StatusOK, user)
	}
}

func generateToken(userID uuid.UUID, role models.UserRole, secret string, expiry string) (string, error) {
	duration, err := time.ParseDuration(expiry)
	if err != nil {
		duration = 15 * time.Minute
	}

	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"exp":     time.Now().Add(duration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
