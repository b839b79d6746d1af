package service

import (
	"context"
	"errors"
	"testing"

	"microblog/internal/models"
	"microblog/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, uint) (*models.Post, error)
	listByAuthorFn func(context.Context, uint, repository.LiveFilter) ([]*models.Post, error)
	updateFn       func(context.Context, *models.Post) error
	deleteFn       func(context.Context, uint, uint) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint, filter repository.LiveFilter) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID, filter)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id, authorID uint) (int64, error) {
	return s.deleteFn(ctx, id, authorID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listByAuthorFn: func(_ context.Context, _ uint, _ repository.LiveFilter) ([]*models.Post, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn: func(_ context.Context, _, _ uint) (int64, error) { return 1, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn         func(context.Context, *models.Comment) error
	getByIDFn        func(context.Context, uint) (*models.Comment, error)
	listLiveByPostFn func(context.Context, uint) ([]*models.Comment, error)
	listByAuthorFn   func(context.Context, uint) ([]*models.Comment, error)
	updateFn         func(context.Context, *models.Comment) error
	deleteFn         func(context.Context, uint, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListLiveByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listLiveByPostFn(ctx, postID)
}
func (s *commentRepoStub) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Comment, error) {
	return s.listByAuthorFn(ctx, authorID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id, authorID uint) (int64, error) {
	return s.deleteFn(ctx, id, authorID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:         func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:        func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listLiveByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		listByAuthorFn:   func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:         func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:         func(_ context.Context, _, _ uint) (int64, error) { return 1, nil },
	}
}

// reactionRepoStub is a stub for repository.ReactionRepository.
type reactionRepoStub struct {
	listReferencesFn  func(context.Context) ([]models.ReactionReference, error)
	getReferenceFn    func(context.Context, uint) (*models.ReactionReference, error)
	getReactableFn    func(context.Context, uint, models.ResourceType) (*models.Reactable, error)
	upsertFn          func(context.Context, uint, uint, uint) (*models.Reaction, error)
	listByReactableFn func(context.Context, uint) ([]*models.Reaction, error)
}

func (s *reactionRepoStub) ListReferences(ctx context.Context) ([]models.ReactionReference, error) {
	return s.listReferencesFn(ctx)
}
func (s *reactionRepoStub) GetReference(ctx context.Context, id uint) (*models.ReactionReference, error) {
	return s.getReferenceFn(ctx, id)
}
func (s *reactionRepoStub) GetReactable(ctx context.Context, resourceID uint, resourceType models.ResourceType) (*models.Reactable, error) {
	return s.getReactableFn(ctx, resourceID, resourceType)
}
func (s *reactionRepoStub) Upsert(ctx context.Context, userID, reactableID, reactionID uint) (*models.Reaction, error) {
	return s.upsertFn(ctx, userID, reactableID, reactionID)
}
func (s *reactionRepoStub) ListByReactable(ctx context.Context, reactableID uint) ([]*models.Reaction, error) {
	return s.listByReactableFn(ctx, reactableID)
}

func noopReactionRepo() *reactionRepoStub {
	return &reactionRepoStub{
		listReferencesFn: func(_ context.Context) ([]models.ReactionReference, error) { return nil, nil },
		getReferenceFn: func(_ context.Context, id uint) (*models.ReactionReference, error) {
			return &models.ReactionReference{ID: id, Name: "like"}, nil
		},
		getReactableFn: func(_ context.Context, resourceID uint, resourceType models.ResourceType) (*models.Reactable, error) {
			return &models.Reactable{ID: 1, ResourceID: resourceID, ResourceType: resourceType}, nil
		},
		upsertFn: func(_ context.Context, userID, reactableID, reactionID uint) (*models.Reaction, error) {
			return &models.Reaction{UserID: userID, ReactableID: reactableID, ReactionID: reactionID}, nil
		},
		listByReactableFn: func(_ context.Context, _ uint) ([]*models.Reaction, error) { return nil, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createWithAuthFn          func(context.Context, *models.User, *models.UserSettings, *models.UserAuth) error
	getByIDFn                 func(context.Context, uint) (*models.User, error)
	existsByEmailOrUsernameFn func(context.Context, string, string) (bool, error)
	getSettingsFn             func(context.Context, uint) (*models.UserSettings, error)
	updateSettingsFn          func(context.Context, uint, bool, bool) (*models.UserSettings, error)
	getAuthByEmailFn          func(context.Context, string) (*models.UserAuth, error)
	getAuthByUsernameFn       func(context.Context, string) (*models.UserAuth, error)
	markVerifiedFn            func(context.Context, uint) (int64, error)
}

func (s *userRepoStub) CreateWithAuth(ctx context.Context, user *models.User, settings *models.UserSettings, auth *models.UserAuth) error {
	return s.createWithAuthFn(ctx, user, settings, auth)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	return s.existsByEmailOrUsernameFn(ctx, email, username)
}
func (s *userRepoStub) GetSettings(ctx context.Context, userID uint) (*models.UserSettings, error) {
	return s.getSettingsFn(ctx, userID)
}
func (s *userRepoStub) UpdateSettings(ctx context.Context, userID uint, showEmail, showName bool) (*models.UserSettings, error) {
	return s.updateSettingsFn(ctx, userID, showEmail, showName)
}
func (s *userRepoStub) GetAuthByEmail(ctx context.Context, email string) (*models.UserAuth, error) {
	return s.getAuthByEmailFn(ctx, email)
}
func (s *userRepoStub) GetAuthByUsername(ctx context.Context, username string) (*models.UserAuth, error) {
	return s.getAuthByUsernameFn(ctx, username)
}
func (s *userRepoStub) MarkVerified(ctx context.Context, userID uint) (int64, error) {
	return s.markVerifiedFn(ctx, userID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createWithAuthFn: func(_ context.Context, u *models.User, _ *models.UserSettings, _ *models.UserAuth) error {
			u.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Email: "alice@example.com", Username: "alice", Name: "Alice"}, nil
		},
		existsByEmailOrUsernameFn: func(_ context.Context, _, _ string) (bool, error) { return false, nil },
		getSettingsFn: func(_ context.Context, userID uint) (*models.UserSettings, error) {
			return &models.UserSettings{UserID: userID}, nil
		},
		updateSettingsFn: func(_ context.Context, userID uint, showEmail, showName bool) (*models.UserSettings, error) {
			return &models.UserSettings{UserID: userID, ShowEmail: showEmail, ShowName: showName}, nil
		},
		getAuthByEmailFn:    func(_ context.Context, _ string) (*models.UserAuth, error) { return nil, nil },
		getAuthByUsernameFn: func(_ context.Context, _ string) (*models.UserAuth, error) { return nil, nil },
		markVerifiedFn:      func(_ context.Context, _ uint) (int64, error) { return 1, nil },
	}
}

// tokenRepoStub is a stub for repository.TokenRepository.
type tokenRepoStub struct {
	revokeFn    func(context.Context, string) error
	isRevokedFn func(context.Context, string) (bool, error)
}

func (s *tokenRepoStub) Revoke(ctx context.Context, jwt string) error {
	return s.revokeFn(ctx, jwt)
}
func (s *tokenRepoStub) IsRevoked(ctx context.Context, jwt string) (bool, error) {
	return s.isRevokedFn(ctx, jwt)
}

func noopTokenRepo() *tokenRepoStub {
	return &tokenRepoStub{
		revokeFn:    func(_ context.Context, _ string) error { return nil },
		isRevokedFn: func(_ context.Context, _ string) (bool, error) { return false, nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeConflict)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeUnauthorized)
}
