// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"microblog/internal/cache"
	"microblog/internal/models"

	"gorm.io/gorm"
)

// LiveFilter selects which publish states a listing returns.
type LiveFilter int

const (
	LiveAll LiveFilter = iota
	LiveOnly
	DraftsOnly
)

func applyLiveFilter(db *gorm.DB, filter LiveFilter) *gorm.DB {
	switch filter {
	case LiveOnly:
		return db.Where("is_live = ?", true)
	case DraftsOnly:
		return db.Where("is_live = ?", false)
	default:
		return db
	}
}

// PostRepository defines the interface for post data operations.
// Get methods return (nil, nil) when the row does not exist.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint, filter LiveFilter) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id, authorID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post and its reactable association in one transaction.
// If the association insert fails the post insert rolls back with it, so no
// caller ever observes a post without its reactable row.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		reactable := &models.Reactable{
			ResourceID:   post.ID,
			ResourceType: models.ResourceTypePost,
		}
		return tx.Create(reactable).Error
	})
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).First(&post, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, filter LiveFilter) ([]*models.Post, error) {
	var posts []*models.Post
	err := applyLiveFilter(r.db.WithContext(ctx).Where("author_id = ?", authorID), filter).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

// Delete removes the post only when both id and author match. The returned
// count is zero for "does not exist" and "not owned" alike; the service maps
// both to the same not-found failure.
func (r *postRepository) Delete(ctx context.Context, id, authorID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		Delete(&models.Post{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		cache.InvalidatePost(ctx, id)
	}
	return res.RowsAffected, nil
}
