package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment belongs to exactly one Post and follows the same one-directional
// publish lifecycle as Post (IsLive false = draft, true = published).
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Content   string         `gorm:"not null" json:"content"`
	PostID    uint           `gorm:"not null;index" json:"post_id"`
	AuthorID  uint           `gorm:"not null;index" json:"author_id"`
	IsLive    bool           `gorm:"not null;default:false" json:"is_live"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Post   Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
