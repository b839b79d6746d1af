package server

import (
	"context"

	"microblog/internal/mailer"
	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
)

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) ListByAuthor(ctx context.Context, authorID uint, filter repository.LiveFilter) ([]*models.Post, error) {
	args := m.Called(ctx, authorID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id, authorID uint) (int64, error) {
	args := m.Called(ctx, id, authorID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListLiveByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id, authorID uint) (int64, error) {
	args := m.Called(ctx, id, authorID)
	return args.Get(0).(int64), args.Error(1)
}

// MockReactionRepository is a mock of the ReactionRepository interface
type MockReactionRepository struct {
	mock.Mock
}

func (m *MockReactionRepository) ListReferences(ctx context.Context) ([]models.ReactionReference, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReactionReference), args.Error(1)
}

func (m *MockReactionRepository) GetReference(ctx context.Context, id uint) (*models.ReactionReference, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReactionReference), args.Error(1)
}

func (m *MockReactionRepository) GetReactable(ctx context.Context, resourceID uint, resourceType models.ResourceType) (*models.Reactable, error) {
	args := m.Called(ctx, resourceID, resourceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reactable), args.Error(1)
}

func (m *MockReactionRepository) Upsert(ctx context.Context, userID, reactableID, reactionID uint) (*models.Reaction, error) {
	args := m.Called(ctx, userID, reactableID, reactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reaction), args.Error(1)
}

func (m *MockReactionRepository) ListByReactable(ctx context.Context, reactableID uint) ([]*models.Reaction, error) {
	args := m.Called(ctx, reactableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Reaction), args.Error(1)
}

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateWithAuth(ctx context.Context, user *models.User, settings *models.UserSettings, auth *models.UserAuth) error {
	args := m.Called(ctx, user, settings, auth)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	args := m.Called(ctx, email, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetSettings(ctx context.Context, userID uint) (*models.UserSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSettings), args.Error(1)
}

func (m *MockUserRepository) UpdateSettings(ctx context.Context, userID uint, showEmail, showName bool) (*models.UserSettings, error) {
	args := m.Called(ctx, userID, showEmail, showName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSettings), args.Error(1)
}

func (m *MockUserRepository) GetAuthByEmail(ctx context.Context, email string) (*models.UserAuth, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserAuth), args.Error(1)
}

func (m *MockUserRepository) GetAuthByUsername(ctx context.Context, username string) (*models.UserAuth, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserAuth), args.Error(1)
}

func (m *MockUserRepository) MarkVerified(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenRepository is a mock of the TokenRepository interface
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Revoke(ctx context.Context, jwt string) error {
	args := m.Called(ctx, jwt)
	return args.Error(0)
}

func (m *MockTokenRepository) IsRevoked(ctx context.Context, jwt string) (bool, error) {
	args := m.Called(ctx, jwt)
	return args.Bool(0), args.Error(1)
}

// testMocks bundles every mock a handler test may need.
type testMocks struct {
	posts     *MockPostRepository
	comments  *MockCommentRepository
	reactions *MockReactionRepository
	users     *MockUserRepository
	tokens    *MockTokenRepository
}

// newTestServer wires a Server over fresh mocks.
func newTestServer() (*Server, *testMocks) {
	m := &testMocks{
		posts:     new(MockPostRepository),
		comments:  new(MockCommentRepository),
		reactions: new(MockReactionRepository),
		users:     new(MockUserRepository),
		tokens:    new(MockTokenRepository),
	}

	s := &Server{
		postRepo:     m.posts,
		commentRepo:  m.comments,
		reactionRepo: m.reactions,
		userRepo:     m.users,
		tokenRepo:    m.tokens,
	}
	s.reactionSvc = service.NewReactionService(m.reactions)
	s.postService = service.NewPostService(m.posts, s.reactionSvc)
	s.commentService = service.NewCommentService(m.comments, m.posts, s.reactionSvc)
	s.accountService = service.NewAccountService(m.users)
	s.authService = service.NewAuthService(m.users, m.tokens, mailer.NewLogMailer(), "test-secret", "http://localhost:8370")

	return s, m
}

// asUser injects an authenticated user, standing in for AuthRequired.
func asUser(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		c.Locals("token", "test-token")
		return c.Next()
	}
}
