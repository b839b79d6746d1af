// Package mailer delivers account-verification mail. The provider is an
// external collaborator; the default implementation only logs the message so
// development and tests never need real credentials.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"microblog/internal/middleware"
)

// Mailer sends the sign-up verification message for a freshly created account.
type Mailer interface {
	SendVerification(ctx context.Context, email, verificationLink string) error
}

// LogMailer writes the message to the structured log instead of sending it.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer returns a Mailer backed by the application logger.
func NewLogMailer() *LogMailer {
	return &LogMailer{logger: middleware.Logger}
}

func (m *LogMailer) SendVerification(ctx context.Context, email, verificationLink string) error {
	m.logger.InfoContext(ctx, "verification mail",
		slog.String("to", email),
		slog.String("link", verificationLink),
	)
	return nil
}

// VerificationLink builds the link a new user must follow to activate the
// account.
func VerificationLink(baseURL string, userID uint) string {
	return fmt.Sprintf("%s/auth/verify?user=%d", baseURL, userID)
}
