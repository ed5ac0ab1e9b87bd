package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/account360/account360-api/internal/logging"
	"github.com/account360/account360-api/internal/user"
)

var (
	ErrFieldsRequired           = errors.New("all fields are required")
	ErrInvalidEmailFormat       = errors.New("invalid email format")
	ErrDomainNotAllowed         = errors.New("email domain is not allowed, use a valid email address")
	ErrPasswordTooShort         = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrEmailNotVerified         = errors.New("email not verified, please verify before logging in")
	ErrVerificationEmailFailed  = errors.New("verification email failed to send")
	ErrPasswordResetEmailFailed = errors.New("password reset email failed to send")
)

// Service orchestrates the register -> verify -> login flow, password
// recovery, and the Google OAuth continuation.
type Service struct {
	users           UserStore
	tokens          TokenService
	mailer          Mailer
	logger          *logging.Logger
	sessionDuration time.Duration
	emailDuration   time.Duration // verification and reset token lifetime
	allowedDomains  []string
}

func NewService(
	users UserStore,
	tokens TokenService,
	mailer Mailer,
	logger *logging.Logger,
	sessionDuration time.Duration,
	emailDuration time.Duration,
	allowedDomains []string,
) *Service {
	return &Service{
		users:           users,
		tokens:          tokens,
		mailer:          mailer,
		logger:          logger,
		sessionDuration: sessionDuration,
		emailDuration:   emailDuration,
		allowedDomains:  allowedDomains,
	}
}

// RegisterInput carries the registration fields. ProfilePic is optional.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Contact    string
	ProfilePic string
}

// Register creates a new unverified user and sends the verification email.
// When mail delivery fails the user is NOT rolled back: the returned user is
// non-nil together with ErrVerificationEmailFailed so the caller can report
// the partial outcome.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*user.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Contact == "" {
		return nil, ErrFieldsRequired
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, ErrInvalidEmailFormat
	}
	if !s.domainAllowed(in.Email) {
		return nil, ErrDomainNotAllowed
	}
	if len(in.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	passwordHash, err := hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.users.Create(ctx, &user.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: passwordHash,
		Contact:      in.Contact,
		ProfilePic:   in.ProfilePic,
		IsVerified:   false,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, user.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.sendVerificationEmail(ctx, newUser); err != nil {
		// Registration stands; the user stays pending verification and is
		// told to contact an administrator.
		s.logger.Warn("failed to send verification email", "email", newUser.Email, "error", err)
		return newUser, ErrVerificationEmailFailed
	}

	return newUser, nil
}

// VerifyEmail flips is_verified using the emailed token. Verifying twice is
// harmless: the second call succeeds and leaves the flag set.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.tokens.VerifyToken(token, PurposeVerify)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return ErrInvalidToken
	}

	if err := s.users.MarkVerified(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to verify email: %w", err)
	}

	return nil
}

// Login authenticates a user and returns a session token with the sanitized
// user record. Verification is checked before the password so unverified
// accounts always get ErrEmailNotVerified, never ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrFieldsRequired
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, "", user.ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !existing.IsVerified {
		return nil, "", ErrEmailNotVerified
	}

	if !verifyPassword(existing.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(existing.ID, PurposeSession, s.sessionDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session token: %w", err)
	}

	return existing, token, nil
}

// GoogleProfile is the identity assertion from Google, already authenticated
// by the OAuth provider before this service runs.
type GoogleProfile struct {
	Email   string
	Name    string
	Picture string
}

// GoogleResult tells the HTTP layer which continuation to redirect to.
type GoogleResult struct {
	User     *user.User
	Token    string // session token, set only when Verified
	Verified bool
}

// GoogleLogin looks the user up by email, creating an OAuth-only account
// (empty password, unverified) on first login. Unverified users are pushed
// into the same email-verification flow as local registration.
func (s *Service) GoogleLogin(ctx context.Context, profile GoogleProfile) (*GoogleResult, error) {
	if profile.Email == "" {
		return nil, ErrFieldsRequired
	}

	existing, err := s.users.GetByEmail(ctx, profile.Email)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}

		name := profile.Name
		if name == "" {
			name = "Google User"
		}
		existing, err = s.users.Create(ctx, &user.User{
			Name:       name,
			Email:      profile.Email,
			ProfilePic: profile.Picture,
			IsVerified: false,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	} else if profile.Picture != "" && existing.ProfilePic != profile.Picture {
		if err := s.users.UpdateProfilePic(ctx, existing.ID, profile.Picture); err != nil {
			s.logger.Warn("failed to update profile picture", "user_id", existing.ID, "error", err)
		} else {
			existing.ProfilePic = profile.Picture
		}
	}

	if !existing.IsVerified {
		// Best effort: the user lands on the "please verify" destination
		// either way and can ask for another email.
		if err := s.sendVerificationEmail(ctx, existing); err != nil {
			s.logger.Warn("failed to send verification email", "email", existing.Email, "error", err)
		}
		return &GoogleResult{User: existing, Verified: false}, nil
	}

	token, err := s.tokens.CreateToken(existing.ID, PurposeSession, s.sessionDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create session token: %w", err)
	}

	return &GoogleResult{User: existing, Token: token, Verified: true}, nil
}

// ForgotPassword emails a reset link. Unlike registration, mail failure is a
// hard error: the user has no other way to recover the account.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	token, err := s.tokens.CreateToken(existing.ID, PurposeReset, s.emailDuration)
	if err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, existing.Email, existing.Name, token); err != nil {
		s.logger.Error("failed to send password reset email", "email", existing.Email, "error", err)
		return ErrPasswordResetEmailFailed
	}

	return nil
}

// ResetPassword stores a new password for the token's subject. Does not
// touch is_verified.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return ErrFieldsRequired
	}
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}

	claims, err := s.tokens.VerifyToken(token, PurposeReset)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return ErrInvalidToken
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *Service) sendVerificationEmail(ctx context.Context, u *user.User) error {
	token, err := s.tokens.CreateToken(u.ID, PurposeVerify, s.emailDuration)
	if err != nil {
		return fmt.Errorf("failed to create verification token: %w", err)
	}

	return s.mailer.SendVerificationEmail(ctx, u.Email, u.Name, token)
}

func (s *Service) domainAllowed(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	for _, allowed := range s.allowedDomains {
		if domain == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
