package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Shishir2405/notenex-api/internal/models"
)

var (
	ErrNoteNotFound    = errors.New("note not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateReport = errors.New("note already reported by this user")
)

// EngagementService records user interactions with notes. Counter
// mutations go through single-statement SQL increments so concurrent
// requests on the same note never lose updates; list-shaped state
// (likes, reports, download history) is guarded by unique keys inside
// transactions.
type EngagementService struct {
	db *gorm.DB
}

func NewEngagementService(db *gorm.DB) *EngagementService {
	return &EngagementService{db: db}
}

// RecordView increments the note's view counter. Repeat views by the
// same viewer all count.
func (s *EngagementService) RecordView(noteID uuid.UUID) error {
	res := s.db.Model(&models.Note{}).Where("id = ?", noteID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// RecordDownload increments the note's download counter on every call.
// The downloader's history gains an entry only on their first download
// of this note, and only that first download credits the uploader:
// the uploader's total_downloads counter increments and their
// contributor score is recomputed. The note-level counter stays
// undeduplicated on purpose.
func (s *EngagementService) RecordDownload(noteID, userID uuid.UUID) (*models.Note, error) {
	var note models.Note
	if err := s.db.First(&note, "id = ?", noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Note{}).Where("id = ?", noteID).
			UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error; err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.DownloadRecord{}).
			Where("user_id = ? AND note_id = ?", userID, noteID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		record := models.DownloadRecord{UserID: userID, NoteID: noteID}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).Where("id = ?", note.UploadedBy).
			UpdateColumn("total_downloads", gorm.Expr("total_downloads + 1")).Error; err != nil {
			return err
		}

		return recalculateScore(tx, note.UploadedBy)
	})
	if err != nil {
		return nil, err
	}

	note.DownloadCount++
	return &note, nil
}

// RecordUpload credits the uploader for a newly created note and
// recomputes their score.
func (s *EngagementService) RecordUpload(userID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("total_uploads", gorm.Expr("total_uploads + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return recalculateScore(tx, userID)
	})
}

// recalculateScore rereads the user's counters and stores the derived
// score and tier. Always a full recompute, never an increment.
func recalculateScore(tx *gorm.DB, userID uuid.UUID) error {
	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}
	user.RecalculateScore()
	return tx.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{
			"contributor_score": user.ContributorScore,
			"trust_ranking":     user.TrustRanking,
		}).Error
}

// ToggleLike likes the note if the user has no like entry, otherwise
// removes it. Returns the resulting state and the new like count.
func (s *EngagementService) ToggleLike(noteID, userID uuid.UUID) (bool, int64, error) {
	var exists int64
	if err := s.db.Model(&models.Note{}).Where("id = ?", noteID).Count(&exists).Error; err != nil {
		return false, 0, err
	}
	if exists == 0 {
		return false, 0, ErrNoteNotFound
	}

	var liked bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("note_id = ? AND user_id = ?", noteID, userID).Delete(&models.NoteLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}
		liked = true
		return tx.Create(&models.NoteLike{NoteID: noteID, UserID: userID}).Error
	})
	if err != nil {
		return false, 0, err
	}

	var count int64
	if err := s.db.Model(&models.NoteLike{}).Where("note_id = ?", noteID).Count(&count).Error; err != nil {
		return liked, 0, err
	}
	return liked, count, nil
}

// AddComment appends a comment. Comments have no edit or delete path.
func (s *EngagementService) AddComment(noteID, userID uuid.UUID, content string) (*models.NoteComment, error) {
	var exists int64
	if err := s.db.Model(&models.Note{}).Where("id = ?", noteID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNoteNotFound
	}

	comment := models.NoteComment{
		NoteID:  noteID,
		UserID:  userID,
		Content: content,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("User").First(&comment, "id = ?", comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ToggleBookmark adds or removes the note in the user's bookmark list.
// The note itself is untouched.
func (s *EngagementService) ToggleBookmark(noteID, userID uuid.UUID) (bool, error) {
	var exists int64
	if err := s.db.Model(&models.Note{}).Where("id = ?", noteID).Count(&exists).Error; err != nil {
		return false, err
	}
	if exists == 0 {
		return false, ErrNoteNotFound
	}

	var count int64
	if err := s.db.Table("user_bookmarks").
		Where("user_id = ? AND note_id = ?", userID, noteID).
		Count(&count).Error; err != nil {
		return false, err
	}

	if count > 0 {
		err := s.db.Exec("DELETE FROM user_bookmarks WHERE user_id = ? AND note_id = ?", userID, noteID).Error
		return false, err
	}
	err := s.db.Exec("INSERT INTO user_bookmarks (user_id, note_id) VALUES (?, ?)", userID, noteID).Error
	return true, err
}

// Report files a report against the note. A second report by the same
// user is a conflict, not a second entry.
func (s *EngagementService) Report(noteID, userID uuid.UUID, reason models.ReportReason, description string) error {
	var exists int64
	if err := s.db.Model(&models.Note{}).Where("id = ?", noteID).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return ErrNoteNotFound
	}

	var reported int64
	if err := s.db.Model(&models.NoteReport{}).
		Where("note_id = ? AND user_id = ?", noteID, userID).
		Count(&reported).Error; err != nil {
		return err
	}
	if reported > 0 {
		return ErrDuplicateReport
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		report := models.NoteReport{
			NoteID:      noteID,
			UserID:      userID,
			Reason:      reason,
			Description: description,
		}
		if err := tx.Create(&report).Error; err != nil {
			return err
		}
		return tx.Model(&models.Note{}).Where("id = ?", noteID).
			UpdateColumn("is_reported", true).Error
	})
}

// ResolveReports clears a note's reports wholesale. Approval state is
// untouched.
func (s *EngagementService) ResolveReports(noteID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", noteID).Delete(&models.NoteReport{}).Error; err != nil {
			return err
		}
		res := tx.Model(&models.Note{}).Where("id = ?", noteID).
			UpdateColumn("is_reported", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoteNotFound
		}
		return nil
	})
}
