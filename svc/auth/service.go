package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/watersmet/identity/pkg/logger"
	"github.com/watersmet/identity/pkg/sanitizer"
	"github.com/watersmet/identity/svc/user"
)

// Notifier is the outbound-email collaborator. Verification-code
// delivery must succeed or the caller hears about it; the welcome
// message is fire-and-forget.
type Notifier interface {
	SendVerificationCode(ctx context.Context, to, code, name string) error
	SendWelcome(ctx context.Context, to, name string) error
}

// Service orchestrates login, registration, verification codes and
// Google reconciliation on top of the credential store.
type Service struct {
	store    user.Store
	tokens   *TokenService
	notifier Notifier
	log      *slog.Logger

	otpNow otpClock
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger. Defaults to a discard logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates the auth service.
func NewService(store user.Store, tokens *TokenService, notifier Notifier, opts ...Option) *Service {
	s := &Service{
		store:    store,
		tokens:   tokens,
		notifier: notifier,
		log:      logger.NewDiscard(),
		otpNow:   realClock,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoginResult is what a successful login hands back to the boundary: a
// bearer token and the public profile of the authenticated user.
type LoginResult struct {
	Token string
	User  user.User
}

// Login authenticates an email/password pair.
//
// The generic invalid-credentials error covers both unknown emails and
// wrong passwords. Accounts created through Google, and local accounts
// whose password hash is missing, are refused with guidance instead of
// the generic message: the user holds no usable password, so "invalid
// credentials" would send them in circles.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.store.ByEmailWithSecrets(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user for login: %w", err)
	}

	if !u.Active {
		return nil, ErrAccountInactive
	}

	if u.Provider == user.ProviderGoogle && !u.HasPassword() {
		return nil, ErrGoogleAccount
	}
	if !u.HasPassword() {
		// A local user with no hash is a broken record; it must never
		// authenticate.
		return nil, ErrNoPasswordSet
	}

	ok, err := user.VerifyPassword(u.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user logged in", logger.UserID(u.ID.String()), logger.Component("auth"))

	return &LoginResult{Token: token, User: u.Public()}, nil
}

// RegisterParams is the validated registration input.
type RegisterParams struct {
	FullName    string
	Email       string
	Password    string
	PhoneNumber string
	Role        user.Role
}

// Register creates a local, unverified user. Sending the verification
// code is a separate call the boundary makes afterwards; when that
// dispatch fails the user simply stays unverified until a resend.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*user.User, error) {
	created, err := s.store.Create(ctx, user.CreateParams{
		FullName:    sanitizer.TrimName(params.FullName),
		Email:       params.Email,
		Password:    params.Password,
		PhoneNumber: params.PhoneNumber,
		Role:        params.Role,
		Provider:    user.ProviderLocal,
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user registered", logger.UserID(created.ID.String()), logger.Component("auth"))
	return created, nil
}

// ValidateToken exposes token validation to the boundary.
func (s *Service) ValidateToken(ctx context.Context, raw string) (*Identity, error) {
	return s.tokens.Validate(ctx, raw)
}
