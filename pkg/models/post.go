package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostVisibility string

const (
	VisibilityPublic  PostVisibility = "public"
	VisibilityPrivate PostVisibility = "private"
)

type Post struct {
	ID         string         `gorm:"type:uuid;primary_key" json:"id"`
	AuthorID   string         `gorm:"type:uuid;not null;index" json:"author_id"`
	Title      string         `gorm:"type:varchar(100);not null" json:"title"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	Visibility PostVisibility `gorm:"type:varchar(10);default:'public'" json:"visibility"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Visibility == "" {
		p.Visibility = VisibilityPublic
	}
	return nil
}
