package models

import "time"

// RevokedToken is a sign-out record. Protected routes reject any bearer token
// present here; Redis keeps a fast-path copy with a TTL matching the token's
// remaining validity.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	JWT       string    `gorm:"uniqueIndex;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
