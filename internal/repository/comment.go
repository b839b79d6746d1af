package repository

import (
	"context"
	"errors"

	"microblog/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
// Get methods return (nil, nil) when the row does not exist.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListLiveByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id, authorID uint) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts the comment and its reactable association atomically,
// mirroring the post creation transaction.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		reactable := &models.Reactable{
			ResourceID:   comment.ID,
			ResourceType: models.ResourceTypeComment,
		}
		return tx.Create(reactable).Error
	})
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListLiveByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND is_live = ?", postID, true).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// Delete removes the comment only when both id and author match; zero rows
// affected covers missing and non-owned rows alike.
func (r *commentRepository) Delete(ctx context.Context, id, authorID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		Delete(&models.Comment{})
	return res.RowsAffected, res.Error
}
