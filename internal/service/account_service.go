package service

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/repository"
)

// AccountService exposes account profiles with settings-driven redaction.
type AccountService struct {
	userRepo repository.UserRepository
}

// NewAccountService creates a new account service
func NewAccountService(userRepo repository.UserRepository) *AccountService {
	return &AccountService{userRepo: userRepo}
}

// GetUserInfo returns the public view of an account. Fields the owner has
// hidden come back as null rather than being omitted, so clients can tell
// "hidden" apart from "never set".
func (s *AccountService) GetUserInfo(ctx context.Context, userID uint) (*models.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundWithMessage("User does not exist")
	}

	settings, err := s.userRepo.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, models.NewNotFoundWithMessage("User does not exist")
	}

	info := &models.UserInfo{
		ID:       user.ID,
		Username: user.Username,
	}
	if settings.ShowEmail {
		info.Email = &user.Email
	}
	if settings.ShowName {
		info.Name = &user.Name
	}
	return info, nil
}

// GetProfile returns the full, unredacted account row for its owner.
func (s *AccountService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundWithMessage("User does not exist")
	}
	return user, nil
}

// UpdateSettings overwrites both visibility flags for the calling user.
func (s *AccountService) UpdateSettings(ctx context.Context, userID uint, showEmail, showName bool) (*models.UserSettings, error) {
	settings, err := s.userRepo.UpdateSettings(ctx, userID, showEmail, showName)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, models.NewNotFoundWithMessage("User does not exist")
	}
	return settings, nil
}
