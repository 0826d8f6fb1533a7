package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/watersmet/identity/pkg/logger"
	"github.com/watersmet/identity/svc/user"
)

// otpValidity is the window a verification code stays usable.
const otpValidity = 10 * time.Minute

type otpClock func() time.Time

func realClock() time.Time { return time.Now() }

var otpRange = big.NewInt(900000)

// generateOTP returns a uniformly random 6-digit code from a
// cryptographically secure source. Codes gate account activation and
// must not be guessable.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpRange)
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// SendOTP issues a fresh verification code for the user, persists it
// with a 10-minute expiry and emails it. A previously active code is
// overwritten. When delivery fails the error is surfaced so the user
// knows to retry: a code they never saw is no better than no code.
func (s *Service) SendOTP(ctx context.Context, userID uuid.UUID) error {
	u, err := s.store.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return ErrUnknownUser
		}
		return err
	}
	if u.EmailVerified {
		return ErrAlreadyVerified
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	expiresAt := s.otpNow().Add(otpValidity)
	if err := s.store.SaveVerificationCode(ctx, userID, code, expiresAt); err != nil {
		return err
	}

	if err := s.notifier.SendVerificationCode(ctx, u.Email, code, u.FullName); err != nil {
		s.log.ErrorContext(ctx, "verification code delivery failed",
			logger.UserID(userID.String()), logger.Error(err), logger.Component("otp"))
		return errors.Join(ErrCodeDelivery, err)
	}

	s.log.InfoContext(ctx, "verification code sent", logger.UserID(userID.String()), logger.Component("otp"))
	return nil
}

// VerifyOTP checks the submitted code against the stored one. On success
// the user becomes verified, the code is cleared and a welcome email
// goes out best-effort: the verified flag is already persisted, so a
// delivery hiccup there is logged and swallowed.
func (s *Service) VerifyOTP(ctx context.Context, userID uuid.UUID, submitted string) error {
	u, err := s.store.ByIDWithSecrets(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return ErrUnknownUser
		}
		return err
	}
	if u.EmailVerified {
		return ErrAlreadyVerified
	}

	// Code and expiry are written together; if either half is missing
	// the pair counts as absent.
	if !u.HasActiveCode() {
		return ErrNoCode
	}
	if s.otpNow().After(*u.VerificationExpiresAt) {
		return ErrCodeExpired
	}
	if u.VerificationCode != submitted {
		return ErrCodeMismatch
	}

	if err := s.store.MarkEmailVerified(ctx, userID); err != nil {
		return err
	}

	// Cached identities still carry EmailVerified=false for up to the
	// cache TTL; drop the entry so the change is visible immediately.
	s.tokens.InvalidateIdentity(userID)

	if err := s.notifier.SendWelcome(ctx, u.Email, u.FullName); err != nil {
		s.log.ErrorContext(ctx, "welcome email failed",
			logger.UserID(userID.String()), logger.Error(err), logger.Component("otp"))
	}

	s.log.InfoContext(ctx, "email verified", logger.UserID(userID.String()), logger.Component("otp"))
	return nil
}

// ResendOTP reissues a verification code. It is exactly SendOTP: the
// active code is overwritten and the 10-minute window restarts.
func (s *Service) ResendOTP(ctx context.Context, userID uuid.UUID) error {
	return s.SendOTP(ctx, userID)
}
