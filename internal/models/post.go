package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is an authored entry. IsLive is the canonical publish flag:
// false means the post is a draft visible only to its author, true means it
// is published. The transition is one-directional; a live post never goes
// back to draft.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	Content   string         `gorm:"not null" json:"content"`
	AuthorID  uint           `gorm:"not null;index" json:"author_id"`
	IsLive    bool           `gorm:"not null;default:false" json:"is_live"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Author   User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}
