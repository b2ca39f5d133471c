package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDoc  FileType = "doc"
	FileTypeDocx FileType = "docx"
	FileTypeTxt  FileType = "txt"
	FileTypeJpg  FileType = "jpg"
	FileTypeJpeg FileType = "jpeg"
	FileTypePng  FileType = "png"
)

// AllowedFileTypes maps upload file extensions to the stored file type.
var AllowedFileTypes = map[string]FileType{
	".pdf":  FileTypePDF,
	".doc":  FileTypeDoc,
	".docx": FileTypeDocx,
	".txt":  FileTypeTxt,
	".jpg":  FileTypeJpg,
	".jpeg": FileTypeJpeg,
	".png":  FileTypePng,
}

type QualityTier string

const (
	QualityLow     QualityTier = "low"
	QualityMedium  QualityTier = "medium"
	QualityHigh    QualityTier = "high"
	QualityPremium QualityTier = "premium"
)

var QualityTiers = map[QualityTier]bool{
	QualityLow:     true,
	QualityMedium:  true,
	QualityHigh:    true,
	QualityPremium: true,
}

type Note struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Subject     string    `gorm:"size:200;not null;index" json:"subject"`
	Semester    string    `gorm:"size:50;index" json:"semester"`
	Course      string    `gorm:"size:200;index" json:"course"`
	College     string    `gorm:"size:200;index" json:"college"`

	Tags   datatypes.JSONSlice[string] `json:"tags"`
	Topics datatypes.JSONSlice[string] `json:"topics"`

	// File attributes
	FilePath        string   `gorm:"size:500;not null" json:"file_path"`
	OriginalName    string   `gorm:"size:255;not null" json:"original_name"`
	FileType        FileType `gorm:"type:varchar(10);not null" json:"file_type"`
	FileSize        int64    `gorm:"not null" json:"file_size"`
	StorageProvider string   `gorm:"size:50;default:'minio'" json:"storage_provider"`

	// Ownership
	UploadedBy uuid.UUID `gorm:"type:uuid;not null;index" json:"uploaded_by"`
	AuthorName string    `gorm:"size:100" json:"author_name"`

	// Extracted text for search indexing
	ContentText string `gorm:"type:text" json:"content_text,omitempty"`

	// Engagement counters (monotonic, incremented atomically in SQL)
	ViewCount     int64 `gorm:"not null;default:0" json:"view_count"`
	DownloadCount int64 `gorm:"not null;default:0" json:"download_count"`

	// Moderation state
	IsApproved      bool       `gorm:"default:false;index" json:"is_approved"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `gorm:"size:500" json:"rejection_reason,omitempty"`
	IsReported      bool       `gorm:"default:false;index" json:"is_reported"`

	// Quality metadata
	Quality    QualityTier `gorm:"type:varchar(20);default:'medium'" json:"quality"`
	IsVerified bool        `gorm:"default:false" json:"is_verified"`
	IsPremium  bool        `gorm:"default:false;index" json:"is_premium"`
	Price      float64     `gorm:"not null;default:0;check:price >= 0" json:"price"`

	// Regenerated from title/description/subject on save
	SearchKeywords datatypes.JSONSlice[string] `json:"search_keywords,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Uploader User          `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
	Likes    []NoteLike    `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
	Comments []NoteComment `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Reports  []NoteReport  `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE" json:"reports,omitempty"`

	// Computed at read time
	LikeCount    int64 `gorm:"->;-:migration" json:"like_count"`
	CommentCount int64 `gorm:"->;-:migration" json:"comment_count"`
}

func (Note) TableName() string {
	return "notes"
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps the denormalized keyword set in sync with the
// searchable text fields.
func (n *Note) BeforeSave(tx *gorm.DB) error {
	if n.Title != "" {
		n.SearchKeywords = datatypes.JSONSlice[string](SearchKeywords(n.Title, n.Description, n.Subject))
	}
	return nil
}

// Approve moves the note to the approved state. A previously set
// rejection reason is cleared so a rejected note can be re-approved.
func (n *Note) Approve(adminID uuid.UUID) {
	now := time.Now()
	n.IsApproved = true
	n.ApprovedBy = &adminID
	n.ApprovedAt = &now
	n.RejectionReason = nil
}

// Reject moves the note to the rejected state. Reachable from any
// state, including approved.
func (n *Note) Reject(reason string) {
	n.IsApproved = false
	n.ApprovedBy = nil
	n.ApprovedAt = nil
	n.RejectionReason = &reason
}

// IsRejected distinguishes rejected notes from pending ones, both of
// which carry is_approved=false.
func (n *Note) IsRejected() bool {
	return !n.IsApproved && n.RejectionReason != nil
}

type NoteLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	NoteID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_note_user_like" json:"note_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_note_user_like" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (NoteLike) TableName() string {
	return "note_likes"
}

func (l *NoteLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type NoteComment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	NoteID    uuid.UUID `gorm:"type:uuid;not null;index" json:"note_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Content   string    `gorm:"size:1000;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (NoteComment) TableName() string {
	return "note_comments"
}

func (c *NoteComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type ReportReason string

const (
	ReportInappropriate ReportReason = "inappropriate"
	ReportCopyright     ReportReason = "copyright"
	ReportSpam          ReportReason = "spam"
	ReportIncorrect     ReportReason = "incorrect"
	ReportOther         ReportReason = "other"
)

var ReportReasons = map[ReportReason]bool{
	ReportInappropriate: true,
	ReportCopyright:     true,
	ReportSpam:          true,
	ReportIncorrect:     true,
	ReportOther:         true,
}

type NoteReport struct {
	ID          uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	NoteID      uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_note_user_report" json:"note_id"`
	UserID      uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_note_user_report" json:"user_id"`
	Reason      ReportReason `gorm:"type:varchar(30);not null" json:"reason"`
	Description string       `gorm:"size:1000" json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (NoteReport) TableName() string {
	return "note_reports"
}

func (r *NoteReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
