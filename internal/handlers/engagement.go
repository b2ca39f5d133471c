package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shishir2405/notenex-api/internal/models"
	"github.com/Shishir2405/notenex-api/internal/services"
)

type CommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

type ReportRequest struct {
	Reason      string `json:"reason" binding:"required"`
	Description string `json:"description" binding:"max=1000"`
}

func parseIDs(c *gin.Context) (noteID, userID uuid.UUID, ok bool) {
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid note ID")
		return noteID, userID, false
	}
	userID, err = uuid.Parse(c.GetString("user_id"))
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid user ID")
		return noteID, userID, false
	}
	return noteID, userID, true
}

func ToggleLike(engagement *services.EngagementService) gin.HandlerFunc {
	return func(c *gin.Context) {
		noteID, userID, ok := parseIDs(c)
		if !ok {
			return
		}

		liked, count, err := engagement.ToggleLike(noteID, userID)
		if err != nil {
			if errors.Is(err, services.ErrNoteNotFound) {
				respondError(c, http.StatusNotFound, "Note not found")
				return
			}
			respondError(c, http.StatusInternalServerError, "Failed to toggle like")
			return
		}

		respondData(c, http.StatusOK, gin.H{
			"liked":      liked,
			"like_count": count,
		})
	}
}

func ToggleBookmark(engagement *services.EngagementService) gin.HandlerFunc {
	return func(c *gin.Context) {
		noteID, userID, ok := parseIDs(c)
		if !ok {
			return
		}

		bookmarked, err := engagement.ToggleBookmark(noteID, userID)
		if err != nil {
			if errors.Is(err, services.ErrNoteNotFound) {
				respondError(c, http.StatusNotFound, "Note not found")
				return
			}
			respondError(c, http.StatusInternalServerError, "Failed to toggle bookmark")
			return
		}

		respondData(c, http.StatusOK, gin.H{"bookmarked": bookmarked})
	}
}

func AddComment(engagement *services.EngagementService) gin.HandlerFunc {
	return func(c *gin.Context) {
		noteID, userID, ok := parseIDs(c)
		if !ok {
			return
		}

		var req CommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		comment, err := engagement.AddComment(noteID, userID, req.Content)
		if err != nil {
			if errors.Is(err, services.ErrNoteNotFound) {
				respondError(c, http.StatusNotFound, "Note not found")
				return
			}
			respondError(c, http.StatusInternalServerError, "Failed to add comment")
			return
		}

		respondData(c, http.StatusCreated, comment)
	}
}

func ReportNote(engagement *services.EngagementService) gin.HandlerFunc {
	return func(c *gin.Context) {
		noteID, userID, ok := parseIDs(c)
		if !ok {
			return
		}

		var req ReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		reason := models.ReportReason(req.Reason)
		if !models.ReportReasons[reason] {
			respondError(c, http.StatusBadRequest, "Invalid report reason")
			return
		}

		if err := engagement.Report(noteID, userID, reason, req.Description); err != nil {
			switch {
			case errors.Is(err, services.ErrNoteNotFound):
				respondError(c, http.StatusNotFound, "Note not found")
			case errors.Is(err, services.ErrDuplicateReport):
				respondError(c, http.StatusConflict, "You have already reported this note")
			default:
				respondError(c, http.StatusInternalServerError, "Failed to report note")
			}
			return
		}

		respondMessage(c, http.StatusCreated, "Note reported")
	}
}
