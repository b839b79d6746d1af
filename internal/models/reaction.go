package models

import "time"

// ResourceType discriminates the content kind a Reactable points at, so a
// single reactions table can reference posts and comments without duplicating
// schema.
type ResourceType string

const (
	ResourceTypePost    ResourceType = "post"
	ResourceTypeComment ResourceType = "comment"
)

// Reactable is the polymorphic join row between a content entity and its
// reactions. It is created in the same transaction as the owning Post or
// Comment and never standalone; the (resource_id, resource_type) pair is
// unique.
type Reactable struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	ResourceID   uint         `gorm:"not null;uniqueIndex:idx_resource" json:"resource_id"`
	ResourceType ResourceType `gorm:"not null;uniqueIndex:idx_resource" json:"resource_type"`

	Reactions []Reaction `gorm:"foreignKey:ReactableID" json:"reactions,omitempty"`
}

// ReactionReference is a catalog entry for an allowed reaction kind.
// The catalog is seeded idempotently at startup and immutable afterwards.
type ReactionReference struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// Reaction records one user's reaction to one reactable resource.
// The (user_id, reactable_id) pair is unique: a user holds at most one
// reaction per resource, and re-reacting replaces the kind.
type Reaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_reactable" json:"user_id"`
	ReactableID uint      `gorm:"not null;uniqueIndex:idx_user_reactable" json:"reactable_id"`
	ReactionID  uint      `gorm:"not null" json:"reaction_id"`
	CreatedAt   time.Time `json:"created_at"`

	User      User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Reactable Reactable         `gorm:"foreignKey:ReactableID" json:"-"`
	Kind      ReactionReference `gorm:"foreignKey:ReactionID" json:"kind,omitempty"`
}
