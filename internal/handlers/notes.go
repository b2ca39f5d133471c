package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Shishir2405/notenex-api/internal/config"
	"github.com/Shishir2405/notenex-api/internal/models"
	"github.com/Shishir2405/notenex-api/internal/services"
)

const MaxFileSize = 50 * 1024 * 1024 // 50 MB

// splitList parses a comma-separated form field into a trimmed list.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func UploadNote(db *gorm.DB, cfg *config.Config, storage *services.StorageService, tika *services.TextExtractionService, engagement *services.EngagementService, activity *services.ActivityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.GetString("user_id"))
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid user ID")
			return
		}

		if err := c.Request.ParseMultipartForm(MaxFileSize); err != nil {
			respondError(c, http.StatusBadRequest, "File too large")
			return
		}

		title := strings.TrimSpace(c.PostForm("title"))
		subject := strings.TrimSpace(c.PostForm("subject"))
		if title == "" || subject == "" {
			respondError(c, http.StatusBadRequest, "Title and subject are required")
			return
		}

		file, header, err := c.Request.FormFile("file")
		if err != nil {
			respondError(c, http.StatusBadRequest, "No file uploaded")
			return
		}
		defer file.Close()

		if header.Size > MaxFileSize {
			respondError(c, http.StatusBadRequest, "File exceeds 50MB limit")
			return
		}

		ext := strings.ToLower(filepath.Ext(header.Filename))
		fileType, ok := models.AllowedFileTypes[ext]
		if !ok {
			respondError(c, http.StatusBadRequest, "Unsupported file type")
			return
		}

		isPremium := c.PostForm("is_premium") == "true"
		price := 0.0
		if isPremium {
			price, err = strconv.ParseFloat(c.DefaultPostForm("price", "0"), 64)
			if err != nil || price < 0 {
				respondError(c, http.StatusBadRequest, "Invalid price")
				return
			}
		}

		var uploader models.User
		if err := db.First(&uploader, "id = ?", userID).Error; err != nil {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}

		// Unique object key in storage
		objectKey := fmt.Sprintf("%s%s", uuid.New().String(), ext)
		contentType := header.Header.Get("Content-Type")

		if err := storage.UploadFile(c.Request.Context(), file, objectKey, header.Size, contentType); err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to upload file")
			return
		}

		// Extract text for search indexing (best effort)
		var extractedText string
		if services.IsTextExtractable(fileType) {
			if text, err := tika.ExtractText(file); err == nil {
				extractedText = text
			}
		}

		note := models.Note{
			Title:           title,
			Description:     c.PostForm("description"),
			Subject:         subject,
			Semester:        c.PostForm("semester"),
			Course:          c.PostForm("course"),
			College:         c.PostForm("college"),
			Tags:            datatypes.JSONSlice[string](splitList(c.PostForm("tags"))),
			Topics:          datatypes.JSONSlice[string](splitList(c.PostForm("topics"))),
			FilePath:        objectKey,
			OriginalName:    header.Filename,
			FileType:        fileType,
			FileSize:        header.Size,
			StorageProvider: services.ProviderMinIO,
			UploadedBy:      userID,
			AuthorName:      uploader.FullName,
			ContentText:     extractedText,
			Quality:         models.QualityMedium,
			IsPremium:       isPremium,
			Price:           price,
		}

		if err := db.Create(&note).Error; err != nil {
			// Best-effort cleanup of the orphaned object
			storage.DeleteFile(c.Request.Context(), objectKey)
			respondError(c, http.StatusInternalServerError, "Failed to save note")
			return
		}

		// Uploads are credited immediately even though the note waits
		// for approval before it is discoverable.
		if err := engagement.RecordUpload(userID); err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to update uploader stats")
			return
		}

		noteID := note.ID
		go func() {
			activity.CreateActivity(userID, models.ActivityNoteUploaded, &noteID, nil)
		}()

		respondData(c, http.StatusCreated, note)
	}
}

// ListNotes is the general discovery listing: approved notes only,
// filtered and sorted per query parameters.
func ListNotes(discovery *services.DiscoveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

		filter := services.NoteFilter{
			Subject:  c.Query("subject"),
			Semester: c.Query("semester"),
			College:  c.Query("college"),
			Course:   c.Query("course"),
			Quality:  c.Query("quality"),
			Premium:  c.Query("isPremium"),
			Search:   c.Query("search"),
			SortBy:   c.DefaultQuery("sortBy", services.SortRecent),
			Page:     page,
			Limit:    limit,
		}

		notes, pagination, err := discovery.ListApproved(filter)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch notes")
			return
		}

		respondPage(c, http.StatusOK, notes, pagination)
	}
}

// GetNote returns a single note and records a view. Unapproved notes
// are only visible to their uploader and to admins.
func GetNote(db *gorm.DB, engagement *services.EngagementService) gin.HandlerFunc {
	return func(c *gin.Context) {
		noteID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid note ID")
			return
		}

		var note models.Note
		err = db.Select("notes.*, "+
			"(SELECT COUNT(*) FROM note_likes WHERE note_likes.note_id = notes.id) AS like_count, "+
			"(SELECT COUNT(*) FROM note_comments WHERE note_comments.note_id = notes.id) AS comment_count").
			Preload("Uploader").
			First(&note, "notes.id = ?", noteID).Error
		if err != nil {
			respondError(c, http.StatusNotFound, "Note not found")
			return
		}

		if !note.IsApproved {
			userID := c.GetString("user_id")
			role := c.GetString("role")
			if note.UploadedBy.String() != userID && role != string(models.RoleAdmin) {
				respondError(c, http.StatusNotFound, "Note not found")
				return
			}
		}

		if err := engagement.RecordView(noteID); err == nil {
			note.ViewCount++
		}

		respondData(c, http.StatusOK, note)
	}
}

func DownloadNote(db *gorm.DB, storage *services.StorageService, engagement *services.EngagementService) gin.HandlerFunc {
	return func(c *gin.Context) {
		noteID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid note ID")
			return
		}
		userID, err := uuid.Parse(c.GetString("user_id"))
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid user ID")
			return
		}

		// Unapproved notes are downloadable only by their uploader and
		// by admins, matching their visibility on the detail endpoint.
		var visible models.Note
		if err := db.Select("id", "uploaded_by", "is_approved").First(&visible, "id = ?", noteID).Error; err != nil {
			respondError(c, http.StatusNotFound, "Note not found")
			return
		}
		if !visible.IsApproved && visible.UploadedBy != userID && c.GetString("role") != string(models.RoleAdmin) {
			respondError(c, http.StatusNotFound, "Note not found")
			return
		}

		// Premium notes are not payment-gated; any authenticated user
		// may download.
		note, err := engagement.RecordDownload(noteID, userID)
		if err != nil {
			if errors.Is(err, services.ErrNoteNotFound) {
				respondError(c, http.StatusNotFound, "Note not found")
				return
			}
			respondError(c, http.StatusInternalServerError, "Failed to record download")
			return
		}

		obj, err := storage.DownloadFile(c.Request.Context(), note.FilePath)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to retrieve file")
			return
		}
		defer obj.Close()

		stat, err := obj.Stat()
		if err != nil {
			respondError(c, http.StatusNotFound, "File not found in storage")
			return
		}

		extraHeaders := map[string]string{
			"Content-Disposition": fmt.Sprintf("attachment; filename=\"%s\"", note.OriginalName),
		}

		c.DataFromReader(http.StatusOK, stat.Size, stat.ContentType, obj, extraHeaders)
	}
}

func GetNoteComments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		noteID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid note ID")
			return
		}

		var comments []models.NoteComment
		if err := db.Where("note_id = ?", noteID).
			Preload("User").
			Order("created_at asc").
			Find(&comments).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch comments")
			return
		}

		respondData(c, http.StatusOK, comments)
	}
}
