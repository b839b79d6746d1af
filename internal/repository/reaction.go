package repository

import (
	"context"
	"errors"

	"microblog/internal/cache"
	"microblog/internal/models"

	"gorm.io/gorm"
)

// ReactionRepository covers the reaction-kind catalog, the polymorphic
// reactable join and reaction rows themselves.
type ReactionRepository interface {
	ListReferences(ctx context.Context) ([]models.ReactionReference, error)
	GetReference(ctx context.Context, id uint) (*models.ReactionReference, error)
	GetReactable(ctx context.Context, resourceID uint, resourceType models.ResourceType) (*models.Reactable, error)
	Upsert(ctx context.Context, userID, reactableID, reactionID uint) (*models.Reaction, error)
	ListByReactable(ctx context.Context, reactableID uint) ([]*models.Reaction, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// ListReferences returns the seeded catalog, cache-aside since it only
// changes on deploys.
func (r *reactionRepository) ListReferences(ctx context.Context) ([]models.ReactionReference, error) {
	var refs []models.ReactionReference
	err := cache.Aside(ctx, cache.ReactionsKey(), &refs, cache.ReactionsTTL, func() error {
		return r.db.WithContext(ctx).Order("id").Find(&refs).Error
	})
	return refs, err
}

func (r *reactionRepository) GetReference(ctx context.Context, id uint) (*models.ReactionReference, error) {
	var ref models.ReactionReference
	err := r.db.WithContext(ctx).First(&ref, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *reactionRepository) GetReactable(ctx context.Context, resourceID uint, resourceType models.ResourceType) (*models.Reactable, error) {
	var reactable models.Reactable
	err := r.db.WithContext(ctx).
		Where("resource_id = ? AND resource_type = ?", resourceID, resourceType).
		First(&reactable).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reactable, nil
}

// Upsert stores the user's reaction. The (user_id, reactable_id) unique index
// makes repeat reactions atomic: re-reacting replaces the kind instead of
// appending a second row.
func (r *reactionRepository) Upsert(ctx context.Context, userID, reactableID, reactionID uint) (*models.Reaction, error) {
	if err := r.db.WithContext(ctx).Exec(
		`INSERT INTO reactions (user_id, reactable_id, reaction_id, created_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, reactable_id) DO UPDATE SET reaction_id = excluded.reaction_id`,
		userID, reactableID, reactionID,
	).Error; err != nil {
		return nil, err
	}

	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Preload("Kind").
		Where("user_id = ? AND reactable_id = ?", userID, reactableID).
		First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) ListByReactable(ctx context.Context, reactableID uint) ([]*models.Reaction, error) {
	var reactions []*models.Reaction
	err := r.db.WithContext(ctx).
		Preload("Kind").
		Where("reactable_id = ?", reactableID).
		Order("created_at ASC").
		Find(&reactions).Error
	return reactions, err
}
