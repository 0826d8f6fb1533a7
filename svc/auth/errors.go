package auth

import "errors"

// Credential errors. Each rejection names the corrective action where
// one exists; the generic invalid-credentials message deliberately does
// not reveal whether the email is registered.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrGoogleAccount      = errors.New(`this account was created with Google, please use "Continue with Google" to login`)
	ErrNoPasswordSet      = errors.New("this account has no password set, please use social login or reset your password")
)

// Token errors. Expired and malformed are distinct so callers can render
// different UX for a stale session versus a tampered token.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrUnauthorized   = errors.New("user not found or inactive")
)

// Verification-code errors.
var (
	ErrUnknownUser     = errors.New("user not found")
	ErrAlreadyVerified = errors.New("email already verified")
	ErrNoCode          = errors.New("no verification code found, please request a new one")
	ErrCodeExpired     = errors.New("verification code expired, please request a new one")
	ErrCodeMismatch    = errors.New("invalid verification code")
	ErrCodeDelivery    = errors.New("could not send verification email, please try again")
)

// ErrProviderExchange covers any failure talking to the OAuth provider:
// code exchange, profile fetch or a malformed payload.
var ErrProviderExchange = errors.New("could not authenticate with provider")
