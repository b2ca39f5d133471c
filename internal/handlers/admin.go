package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Shishir2405/notenex-api/internal/models"
	"github.com/Shishir2405/notenex-api/internal/services"
)

type RejectNoteRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type UpdateQualityRequest struct {
	Quality    string   `json:"quality" binding:"required"`
	IsVerified *bool    `json:"is_verified"`
	IsPremium  *bool    `json:"is_premium"`
	Price      *float64 `json:"price"`
}

type BanUserRequest struct {
	Reason    string     `json:"reason" binding:"required,max=500"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type WarnUserRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

func ListPendingNotes(discovery *services.DiscoveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

		notes, pagination, err := discovery.ListPending(page, limit)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch pending notes")
			return
		}

		respondPage(c, http.StatusOK, notes, pagination)
	}
}

func ListReportedNotes(discovery *services.DiscoveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

		notes, pagination, err := discovery.ListReported(page, limit)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch reported notes")
			return
		}

		respondPage(c, http.StatusOK, notes, pagination)
	}
}

// ApproveNote makes a note discoverable. Works from the pending and
// the rejected state alike; any prior rejection reason is cleared.
func ApproveNote(db *gorm.DB, search *services.SearchService, activity *services.ActivityService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		noteID, adminID, ok := parseIDs(c)
		if !ok {
			return
		}

		var note models.Note
		if err := db.First(&note, "id = ?", noteID).Error; err != nil {
			respondError(c, http.StatusNotFound, "Note not found")
			return
		}

		note.Approve(adminID)
		if err := db.Save(&note).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to approve note")
			return
		}

		go func() {
			if err := search.IndexNote(note); err != nil {
				log.Warn("failed to index approved note", zap.String("note_id", note.ID.String()), zap.Error(err))
			}
			activity.CreateActivity(adminID, models.ActivityNoteApproved, &note.ID, nil)
		}()

		respondData(c, http.StatusOK, note)
	}
}

// RejectNote hides a note with a mandatory reason. Reachable from any
// state, including approved.
func RejectNote(db *gorm.DB, search *services.SearchService, activity *services.ActivityService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		noteID, adminID, ok := parseIDs(c)
		if !ok {
			return
		}

		var req RejectNoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		var note models.Note
		if err := db.First(&note, "id = ?", noteID).Error; err != nil {
			respondError(c, http.StatusNotFound, "Note not found")
			return
		}

		note.Reject(req.Reason)
		if err := db.Save(&note).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to reject note")
			return
		}

		go func() {
			if err := search.DeleteNote(note.ID.String()); err != nil {
				log.Warn("failed to deindex rejected note", zap.String("note_id", note.ID.String()), zap.Error(err))
			}
			activity.CreateActivity(adminID, models.ActivityNoteRejected, &note.ID, map[string]interface{}{
				"reason": req.Reason,
			})
		}()

		respondData(c, http.StatusOK, note)
	}
}

func UpdateNoteQuality(db *gorm.DB, search *services.SearchService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		noteID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid note ID")
			return
		}

		var req UpdateQualityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		quality := models.QualityTier(req.Quality)
		if !models.QualityTiers[quality] {
			respondError(c, http.StatusBadRequest, "Invalid quality tier")
			return
		}
		if req.Price != nil && *req.Price < 0 {
			respondError(c, http.StatusBadRequest, "Price must be non-negative")
			return
		}

		var note models.Note
		if err := db.First(&note, "id = ?", noteID).Error; err != nil {
			respondError(c, http.StatusNotFound, "Note not found")
			return
		}

		note.Quality = quality
		if req.IsVerified != nil {
			note.IsVerified = *req.IsVerified
		}
		if req.IsPremium != nil {
			note.IsPremium = *req.IsPremium
		}
		if req.Price != nil {
			note.Price = *req.Price
		}

		if err := db.Save(&note).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to update note")
			return
		}

		// Keep the search document in sync for already-indexed notes.
		if note.IsApproved {
			go func() {
				if err := search.IndexNote(note); err != nil {
					log.Warn("failed to reindex updated note", zap.String("note_id", note.ID.String()), zap.Error(err))
				}
			}()
		}

		respondData(c, http.StatusOK, note)
	}
}

// ResolveReports clears a note's reports wholesale without touching
// its approval state.
func ResolveReports(engagement *services.EngagementService) gin.HandlerFunc {
	return func(c *gin.Context) {
		noteID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid note ID")
			return
		}

		if err := engagement.ResolveReports(noteID); err != nil {
			if errors.Is(err, services.ErrNoteNotFound) {
				respondError(c, http.StatusNotFound, "Note not found")
				return
			}
			respondError(c, http.StatusInternalServerError, "Failed to resolve reports")
			return
		}

		respondMessage(c, http.StatusOK, "Reports resolved")
	}
}

// DeleteNote removes a note permanently: bookmark links, download
// history, the stored file and the search document go with it. The
// uploader's counters are monotonic and stay as they are.
func DeleteNote(db *gorm.DB, storage *services.StorageService, search *services.SearchService, activity *services.ActivityService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		noteID, adminID, ok := parseIDs(c)
		if !ok {
			return
		}

		var note models.Note
		if err := db.First(&note, "id = ?", noteID).Error; err != nil {
			respondError(c, http.StatusNotFound, "Note not found")
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec("DELETE FROM user_bookmarks WHERE note_id = ?", noteID).Error; err != nil {
				return err
			}
			if err := tx.Where("note_id = ?", noteID).Delete(&models.DownloadRecord{}).Error; err != nil {
				return err
			}
			if err := tx.Where("note_id = ?", noteID).Delete(&models.NoteLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("note_id = ?", noteID).Delete(&models.NoteComment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("note_id = ?", noteID).Delete(&models.NoteReport{}).Error; err != nil {
				return err
			}
			return tx.Delete(&note).Error
		})
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to delete note")
			return
		}

		if err := storage.DeleteFile(c.Request.Context(), note.FilePath); err != nil {
			log.Warn("failed to delete stored file", zap.String("object", note.FilePath), zap.Error(err))
		}

		go func() {
			if err := search.DeleteNote(note.ID.String()); err != nil {
				log.Warn("failed to deindex deleted note", zap.String("note_id", note.ID.String()), zap.Error(err))
			}
			activity.CreateActivity(adminID, models.ActivityNoteDeleted, nil, map[string]interface{}{
				"title": note.Title,
			})
		}()

		respondMessage(c, http.StatusOK, "Note deleted")
	}
}

func ListUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		var users []models.User
		if err := db.Preload("Warnings").
			Order("created_at desc").
			Limit(limit).
			Offset(offset).
			Find(&users).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch users")
			return
		}

		respondData(c, http.StatusOK, users)
	}
}

func BanUser(db *gorm.DB, email *services.EmailService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid user ID")
			return
		}

		var req BanUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		if user.Role == models.RoleAdmin {
			respondError(c, http.StatusForbidden, "Cannot ban an admin account")
			return
		}

		user.IsBanned = true
		user.BanReason = &req.Reason
		user.BanExpiresAt = req.ExpiresAt

		if err := db.Save(&user).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to ban user")
			return
		}

		go func() {
			if err := email.SendBanNotice(user.Email, user.Username, req.Reason); err != nil {
				log.Warn("failed to send ban notice", zap.String("user_id", user.ID.String()), zap.Error(err))
			}
		}()

		respondData(c, http.StatusOK, user)
	}
}

func UnbanUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid user ID")
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}

		user.IsBanned = false
		user.BanReason = nil
		user.BanExpiresAt = nil

		if err := db.Save(&user).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to unban user")
			return
		}

		respondData(c, http.StatusOK, user)
	}
}

func WarnUser(db *gorm.DB, email *services.EmailService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid user ID")
			return
		}
		adminID, err := uuid.Parse(c.GetString("user_id"))
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid user ID")
			return
		}

		var req WarnUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}

		warning := models.UserWarning{
			UserID:   userID,
			Reason:   req.Reason,
			IssuedBy: adminID,
		}
		if err := db.Create(&warning).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to warn user")
			return
		}

		go func() {
			if err := email.SendWarningNotice(user.Email, user.Username, req.Reason); err != nil {
				log.Warn("failed to send warning notice", zap.String("user_id", user.ID.String()), zap.Error(err))
			}
		}()

		respondData(c, http.StatusCreated, warning)
	}
}
