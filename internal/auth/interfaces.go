package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/account360/account360-api/internal/user"
)

// TokenService defines the interface for token creation and validation.
// The production implementation is PasetoService (PASETO v4.local).
type TokenService interface {
	CreateToken(userID uuid.UUID, purpose Purpose, duration time.Duration) (string, error)
	VerifyToken(tokenStr string, purpose Purpose) (*TokenClaims, error)
}

// UserStore is the slice of the user repository the auth flow needs.
type UserStore interface {
	Create(ctx context.Context, u *user.User) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	MarkVerified(ctx context.Context, userID uuid.UUID) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	UpdateProfilePic(ctx context.Context, userID uuid.UUID, profilePic string) error
}

// Mailer defines the interface for outbound auth emails
type Mailer interface {
	SendVerificationEmail(ctx context.Context, toEmail, name, token string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, name, token string) error
}
