package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Shishir2405/notenex-api/internal/scoring"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);default:'student'" json:"role"`

	// Profile
	FullName  string `gorm:"size:100" json:"full_name"`
	College   string `gorm:"size:200" json:"college"`
	Course    string `gorm:"size:200" json:"course"`
	Semester  string `gorm:"size:50" json:"semester"`
	Bio       string `gorm:"type:text" json:"bio"`
	AvatarURL string `gorm:"size:500" json:"avatar_url"`

	// Engagement counters (monotonic)
	TotalUploads   int `gorm:"not null;default:0" json:"total_uploads"`
	TotalDownloads int `gorm:"not null;default:0" json:"total_downloads"`

	// Derived from the counters, see RecalculateScore
	ContributorScore int             `gorm:"not null;default:0;index" json:"contributor_score"`
	TrustRanking     scoring.Ranking `gorm:"type:varchar(20);default:'Bronze'" json:"trust_ranking"`

	// Moderation state
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	IsBanned     bool       `gorm:"default:false" json:"is_banned"`
	BanReason    *string    `gorm:"size:500" json:"ban_reason,omitempty"`
	BanExpiresAt *time.Time `json:"ban_expires_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Bookmarks       []Note           `gorm:"many2many:user_bookmarks;" json:"bookmarks,omitempty"`
	DownloadRecords []DownloadRecord `gorm:"foreignKey:UserID" json:"download_records,omitempty"`
	Warnings        []UserWarning    `gorm:"foreignKey:UserID" json:"warnings,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// RecalculateScore rederives the contributor score and trust ranking
// from the current counters. Idempotent.
func (u *User) RecalculateScore() {
	u.ContributorScore = scoring.Score(u.TotalUploads, u.TotalDownloads)
	u.TrustRanking = scoring.RankingFor(u.ContributorScore)
}

// DownloadRecord is a user's download-history entry. The unique
// (user_id, note_id) key makes the history idempotent per note even
// though the note's own download counter keeps counting repeats.
type DownloadRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_note_download" json:"user_id"`
	NoteID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_note_download" json:"note_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Note Note `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE" json:"note,omitempty"`
}

func (DownloadRecord) TableName() string {
	return "download_records"
}

func (d *DownloadRecord) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

type UserWarning struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Reason    string    `gorm:"size:500;not null" json:"reason"`
	IssuedBy  uuid.UUID `gorm:"type:uuid;not null" json:"issued_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserWarning) TableName() string {
	return "user_warnings"
}

func (w *UserWarning) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
