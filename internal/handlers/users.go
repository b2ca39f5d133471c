package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Shishir2405/notenex-api/internal/models"
)

type UpdateProfileRequest struct {
	FullName  string `json:"full_name" binding:"max=100"`
	College   string `json:"college" binding:"max=200"`
	Course    string `json:"course" binding:"max=200"`
	Semester  string `json:"semester" binding:"max=50"`
	Bio       string `json:"bio" binding:"max=2000"`
	AvatarURL string `json:"avatar_url" binding:"max=500"`
}

func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}

		user.FullName = req.FullName
		user.College = req.College
		user.Course = req.Course
		user.Semester = req.Semester
		user.Bio = req.Bio
		user.AvatarURL = req.AvatarURL

		if err := db.Save(&user).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to update profile")
			return
		}

		respondData(c, http.StatusOK, user)
	}
}

// GetPublicProfile returns another user's public profile and stats.
func GetPublicProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid user ID")
			return
		}

		var user models.User
		if err := db.
			Select("id", "username", "full_name", "college", "course", "semester", "bio", "avatar_url",
				"total_uploads", "total_downloads", "contributor_score", "trust_ranking", "created_at").
			First(&user, "id = ?", userID).Error; err != nil {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}

		var approvedNotes int64
		db.Model(&models.Note{}).
			Where("uploaded_by = ? AND is_approved = ?", userID, true).
			Count(&approvedNotes)

		respondData(c, http.StatusOK, gin.H{
			"user":           user,
			"approved_notes": approvedNotes,
		})
	}
}

// ListBookmarks returns the caller's bookmarked notes. Notes that have
// since lost approval stay hidden here too.
func ListBookmarks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var notes []models.Note
		err := db.Model(&models.Note{}).
			Select("notes.*, "+
				"(SELECT COUNT(*) FROM note_likes WHERE note_likes.note_id = notes.id) AS like_count, "+
				"(SELECT COUNT(*) FROM note_comments WHERE note_comments.note_id = notes.id) AS comment_count").
			Joins("JOIN user_bookmarks ub ON notes.id = ub.note_id AND ub.user_id = ?", userID).
			Where("notes.is_approved = ?", true).
			Preload("Uploader").
			Order("notes.created_at DESC").
			Find(&notes).Error
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch bookmarks")
			return
		}

		respondData(c, http.StatusOK, notes)
	}
}

// ListDownloadHistory returns the caller's download history, one entry
// per note regardless of repeat downloads.
func ListDownloadHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var records []models.DownloadRecord
		err := db.Where("user_id = ?", userID).
			Preload("Note").
			Order("created_at DESC").
			Find(&records).Error
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch download history")
			return
		}

		respondData(c, http.StatusOK, records)
	}
}

// ListMyNotes returns the caller's own uploads in every moderation
// state, with the rejection reason visible.
func ListMyNotes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var notes []models.Note
		err := db.Model(&models.Note{}).
			Select("notes.*, "+
				"(SELECT COUNT(*) FROM note_likes WHERE note_likes.note_id = notes.id) AS like_count, "+
				"(SELECT COUNT(*) FROM note_comments WHERE note_comments.note_id = notes.id) AS comment_count").
			Where("notes.uploaded_by = ?", userID).
			Order("notes.created_at DESC").
			Find(&notes).Error
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch notes")
			return
		}

		respondData(c, http.StatusOK, notes)
	}
}
