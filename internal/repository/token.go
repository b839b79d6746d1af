package repository

import (
	"context"

	"microblog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenRepository persists revoked bearer tokens. The database is the source
// of truth; the cache layer only mirrors it for fast lookups.
type TokenRepository interface {
	Revoke(ctx context.Context, jwt string) error
	IsRevoked(ctx context.Context, jwt string) (bool, error)
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// Revoke records the token. Revoking an already-revoked token is a no-op.
func (r *tokenRepository) Revoke(ctx context.Context, jwt string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.RevokedToken{JWT: jwt}).Error
}

func (r *tokenRepository) IsRevoked(ctx context.Context, jwt string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RevokedToken{}).
		Where("jwt = ?", jwt).
		Count(&count).Error
	return count > 0, err
}
