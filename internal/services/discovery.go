package services

import (
	"gorm.io/gorm"

	"github.com/Shishir2405/notenex-api/internal/models"
)

// FilterAll is the sentinel clients send for "no filter on this field".
const FilterAll = "all"

const (
	SortRecent  = "recent"
	SortPopular = "popular"
	SortLikes   = "likes"
	SortViews   = "views"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// noteListColumns annotates each row with its like and comment counts.
// The counts are never stored; they are the size of the child lists at
// read time.
const noteListColumns = "notes.*, " +
	"(SELECT COUNT(*) FROM note_likes WHERE note_likes.note_id = notes.id) AS like_count, " +
	"(SELECT COUNT(*) FROM note_comments WHERE note_comments.note_id = notes.id) AS comment_count"

// NoteFilter is a discovery request: optional categorical filters, an
// optional free-text search, a sort key and offset pagination.
type NoteFilter struct {
	Subject  string
	Semester string
	College  string
	Course   string
	Quality  string
	Premium  string // "", "all", "true" or "false"
	Search   string
	SortBy   string
	Page     int
	Limit    int
}

// Normalize clamps pagination and falls back to the default sort for
// unknown keys.
func (f *NoteFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	switch f.SortBy {
	case SortRecent, SortPopular, SortLikes, SortViews:
	default:
		f.SortBy = SortRecent
	}
}

// SortClause maps a sort key to its ORDER BY clause. "popular" orders
// by downloads then views.
func SortClause(sortBy string) string {
	switch sortBy {
	case SortPopular:
		return "notes.download_count DESC, notes.view_count DESC"
	case SortLikes:
		return "like_count DESC"
	case SortViews:
		return "notes.view_count DESC"
	default:
		return "notes.created_at DESC"
	}
}

// Pagination is the page metadata returned with every listing.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalNotes  int64 `json:"totalNotes"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// NewPagination computes page metadata: totalPages = ceil(total/limit).
func NewPagination(total int64, page, limit int) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalNotes:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// DiscoveryService translates discovery requests into note queries.
// Non-admin listings always carry is_approved = true; no filter
// combination can override it.
type DiscoveryService struct {
	db *gorm.DB
}

func NewDiscoveryService(db *gorm.DB) *DiscoveryService {
	return &DiscoveryService{db: db}
}

// approved builds the filtered base query over approved notes.
func (s *DiscoveryService) approved(f NoteFilter) *gorm.DB {
	query := s.db.Model(&models.Note{}).Where("notes.is_approved = ?", true)

	if f.Subject != "" && f.Subject != FilterAll {
		query = query.Where("notes.subject = ?", f.Subject)
	}
	if f.Semester != "" && f.Semester != FilterAll {
		query = query.Where("notes.semester = ?", f.Semester)
	}
	if f.College != "" && f.College != FilterAll {
		query = query.Where("notes.college = ?", f.College)
	}
	if f.Course != "" && f.Course != FilterAll {
		query = query.Where("notes.course = ?", f.Course)
	}
	if f.Quality != "" && f.Quality != FilterAll {
		query = query.Where("notes.quality = ?", f.Quality)
	}
	if f.Premium != "" && f.Premium != FilterAll {
		query = query.Where("notes.is_premium = ?", f.Premium == "true")
	}

	// Substring OR-match for the general listing endpoint. The
	// dedicated search endpoint goes through Meilisearch instead and
	// has its own minimum-length rule.
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		query = query.Where(
			"(notes.title ILIKE ? OR notes.description ILIKE ? OR notes.tags::text ILIKE ? OR notes.topics::text ILIKE ?)",
			pattern, pattern, pattern, pattern)
	}

	return query
}

// ListApproved returns one ordered page of approved notes plus its
// pagination metadata.
func (s *DiscoveryService) ListApproved(f NoteFilter) ([]models.Note, Pagination, error) {
	f.Normalize()

	var total int64
	if err := s.approved(f).Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	var notes []models.Note
	err := s.approved(f).
		Select(noteListColumns).
		Preload("Uploader").
		Order(SortClause(f.SortBy)).
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&notes).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	return notes, NewPagination(total, f.Page, f.Limit), nil
}

// ListPending returns notes awaiting moderation: unapproved and not
// yet rejected. Admin surface only.
func (s *DiscoveryService) ListPending(page, limit int) ([]models.Note, Pagination, error) {
	f := NoteFilter{Page: page, Limit: limit}
	f.Normalize()

	base := func() *gorm.DB {
		return s.db.Model(&models.Note{}).
			Where("notes.is_approved = ? AND notes.rejection_reason IS NULL", false)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	var notes []models.Note
	err := base().
		Select(noteListColumns).
		Preload("Uploader").
		Order("notes.created_at ASC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&notes).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	return notes, NewPagination(total, f.Page, f.Limit), nil
}

// ListReported returns notes with unresolved reports. Admin surface
// only.
func (s *DiscoveryService) ListReported(page, limit int) ([]models.Note, Pagination, error) {
	f := NoteFilter{Page: page, Limit: limit}
	f.Normalize()

	base := func() *gorm.DB {
		return s.db.Model(&models.Note{}).Where("notes.is_reported = ?", true)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	var notes []models.Note
	err := base().
		Select(noteListColumns).
		Preload("Uploader").
		Preload("Reports").
		Order("notes.updated_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&notes).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	return notes, NewPagination(total, f.Page, f.Limit), nil
}
