package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow is the follower-graph edge: FollowerID follows FollowedID.
// Edges are hard deleted on unfollow, like Like rows, so the unique
// pair index never blocks a re-follow.
type Follow struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	FollowerID string    `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair" json:"follower_id"`
	FollowedID string    `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID" json:"-"`
	Followed User `gorm:"foreignKey:FollowedID" json:"-"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}
