package repository

import (
	"context"
	"errors"

	"microblog/internal/cache"
	"microblog/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for account data operations.
// Get methods return (nil, nil) when the row does not exist.
type UserRepository interface {
	CreateWithAuth(ctx context.Context, user *models.User, settings *models.UserSettings, auth *models.UserAuth) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	GetSettings(ctx context.Context, userID uint) (*models.UserSettings, error)
	UpdateSettings(ctx context.Context, userID uint, showEmail, showName bool) (*models.UserSettings, error)
	GetAuthByEmail(ctx context.Context, email string) (*models.UserAuth, error)
	GetAuthByUsername(ctx context.Context, username string) (*models.UserAuth, error)
	MarkVerified(ctx context.Context, userID uint) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateWithAuth inserts the user, its settings and its credentials in one
// transaction; a sign-up either fully exists or not at all.
func (r *userRepository) CreateWithAuth(ctx context.Context, user *models.User, settings *models.UserSettings, auth *models.UserAuth) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		settings.UserID = user.ID
		if err := tx.Create(settings).Error; err != nil {
			return err
		}
		auth.UserID = user.ID
		return tx.Create(auth).Error
	})
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		return r.db.WithContext(ctx).First(&user, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) GetSettings(ctx context.Context, userID uint) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings overwrites both visibility flags unconditionally.
func (r *userRepository) UpdateSettings(ctx context.Context, userID uint, showEmail, showName bool) (*models.UserSettings, error) {
	res := r.db.WithContext(ctx).
		Model(&models.UserSettings{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"show_email": showEmail,
			"show_name":  showName,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	cache.InvalidateUser(ctx, userID)
	return r.GetSettings(ctx, userID)
}

func (r *userRepository) GetAuthByEmail(ctx context.Context, email string) (*models.UserAuth, error) {
	var auth models.UserAuth
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&auth).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &auth, nil
}

func (r *userRepository) GetAuthByUsername(ctx context.Context, username string) (*models.UserAuth, error) {
	var auth models.UserAuth
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&auth).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &auth, nil
}

func (r *userRepository) MarkVerified(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.UserAuth{}).
		Where("user_id = ?", userID).
		Update("is_verified", true)
	return res.RowsAffected, res.Error
}
