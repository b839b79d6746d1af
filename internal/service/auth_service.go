package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"microblog/internal/cache"
	"microblog/internal/mailer"
	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/validation"
)

const (
	tokenLifetime = 7 * 24 * time.Hour
	tokenIssuer   = "microblog-api"
	tokenAudience = "microblog-client"
)

// AuthService handles sign-up, verification, sign-in and token revocation.
type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	mailer    mailer.Mailer
	jwtSecret string
	baseURL   string
}

type SignUpInput struct {
	Email    string
	Username string
	Name     string
	Password string
}

type SignInInput struct {
	// Login is the account's email or username.
	Login    string
	Password string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	m mailer.Mailer,
	jwtSecret, baseURL string,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mailer:    m,
		jwtSecret: jwtSecret,
		baseURL:   baseURL,
	}
}

// SignUp creates the account, its settings and its credentials, then sends
// the verification mail. The account cannot sign in until verified.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*models.User, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	exists, err := s.userRepo.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewConflictError("User with email or username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:    in.Email,
		Username: in.Username,
		Name:     in.Name,
	}
	settings := &models.UserSettings{ShowEmail: false, ShowName: false}
	auth := &models.UserAuth{
		Email:    in.Email,
		Username: in.Username,
		Password: string(hash),
	}
	if err := s.userRepo.CreateWithAuth(ctx, user, settings, auth); err != nil {
		return nil, err
	}

	link := mailer.VerificationLink(s.baseURL, user.ID)
	if err := s.mailer.SendVerification(ctx, user.Email, link); err != nil {
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// Verify activates a freshly created account.
func (s *AuthService) Verify(ctx context.Context, userID uint) error {
	rows, err := s.userRepo.MarkVerified(ctx, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.NewNotFoundWithMessage("User does not exist")
	}
	return nil
}

// SignIn checks the credentials and issues a signed bearer token. The same
// message covers a missing account and a wrong password.
func (s *AuthService) SignIn(ctx context.Context, in SignInInput) (string, error) {
	var auth *models.UserAuth
	var err error
	if strings.Contains(in.Login, "@") {
		auth, err = s.userRepo.GetAuthByEmail(ctx, in.Login)
	} else {
		auth, err = s.userRepo.GetAuthByUsername(ctx, in.Login)
	}
	if err != nil {
		return "", err
	}
	if auth == nil {
		return "", models.NewUnauthorizedError("Wrong credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(auth.Password), []byte(in.Password)); err != nil {
		return "", models.NewUnauthorizedError("Wrong credentials")
	}
	if !auth.IsVerified {
		return "", models.NewUnauthorizedError("Account is not verified")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   jwtSubject(auth.UserID),
		Issuer:    tokenIssuer,
		Audience:  jwt.ClaimStrings{tokenAudience},
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return signed, nil
}

// SignOut revokes the presented token. The database row is the source of
// truth; the cache entry only short-circuits subsequent lookups and expires
// together with the token itself.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if err := s.tokenRepo.Revoke(ctx, token); err != nil {
		return err
	}
	cache.MarkTokenRevoked(ctx, token, remainingValidity(token, s.jwtSecret))
	return nil
}

// IsRevoked answers from the cache when it can, falling back to the database.
func (s *AuthService) IsRevoked(ctx context.Context, token string) (bool, error) {
	if revoked, ok := cache.IsTokenRevoked(ctx, token); ok {
		return revoked, nil
	}
	return s.tokenRepo.IsRevoked(ctx, token)
}

// ParseToken validates the signature and registered claims and returns the
// authenticated user id.
func (s *AuthService) ParseToken(tokenStr string) (uint, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return 0, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid or expired token")
	}
	userID, err := parseSubject(claims.Subject)
	if err != nil {
		return 0, models.NewUnauthorizedError("Invalid or expired token")
	}
	return userID, nil
}

func jwtSubject(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

func parseSubject(sub string) (uint, error) {
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// remainingValidity reads the token's own expiry so the cache entry never
// outlives the token. Signature failures return 0 and skip the cache.
func remainingValidity(tokenStr, secret string) time.Duration {
	parsed, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return 0
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ExpiresAt == nil {
		return 0
	}
	return time.Until(claims.ExpiresAt.Time)
}
