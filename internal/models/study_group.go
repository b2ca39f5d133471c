package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudyGroup struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Subject     string    `gorm:"size:200;index" json:"subject"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Creator User        `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Members []User      `gorm:"many2many:study_group_members;" json:"members,omitempty"`
	Posts   []GroupPost `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`

	// Computed at read time
	MemberCount int64 `gorm:"->;-:migration" json:"member_count"`
}

func (StudyGroup) TableName() string {
	return "study_groups"
}

func (g *StudyGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// GroupPost is an append-only discussion entry in a study group.
type GroupPost struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;index" json:"group_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Content   string    `gorm:"size:2000;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (GroupPost) TableName() string {
	return "group_posts"
}

func (p *GroupPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
