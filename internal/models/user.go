// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a microblog account.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Settings *UserSettings `gorm:"foreignKey:UserID" json:"settings,omitempty"`
	Posts    []Post        `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
	Comments []Comment     `gorm:"foreignKey:AuthorID" json:"comments,omitempty"`
}

// UserSettings governs redaction of User fields on read. Exactly one row per
// user, created together with the User at sign-up.
type UserSettings struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	ShowEmail bool      `json:"show_email"`
	ShowName  bool      `json:"show_name"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserAuth holds sign-in credentials, kept apart from the profile row.
// Created in the same transaction as the User.
type UserAuth struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	UserID     uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Email      string    `gorm:"unique;not null" json:"-"`
	Username   string    `gorm:"unique;not null" json:"-"`
	Password   string    `gorm:"not null" json:"-"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UserInfo is the redacted read model returned by the accounts API.
// Email and Name are nil when the owner's settings hide them.
type UserInfo struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
	Name     *string `json:"name"`
}
