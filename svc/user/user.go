package user

import (
	"time"

	"github.com/google/uuid"
)

// Role describes what a user is allowed to do on the platform.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// Roles lists every valid role value.
var Roles = []string{string(RoleCustomer), string(RoleDriver), string(RoleManager), string(RoleAdmin)}

// Provider identifies the authentication method that owns a user's
// credential.
type Provider string

const (
	ProviderLocal  Provider = "local"
	ProviderGoogle Provider = "google"
)

// User is a user record. PasswordHash, VerificationCode and
// VerificationExpiresAt are populated only by the WithSecrets read
// variants; default projections leave them zero.
type User struct {
	ID          uuid.UUID
	FullName    string
	Email       string
	PhoneNumber string
	Role        Role
	Provider    Provider
	GoogleID    string

	EmailVerified bool
	Active        bool

	PasswordHash          string
	VerificationCode      string
	VerificationExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPassword reports whether a password hash is stored. Pure-OAuth
// accounts have none.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// HasActiveCode reports whether a usable verification code is present.
// Code and expiry are set together; if either is missing the pair is
// treated as absent.
func (u *User) HasActiveCode() bool {
	return u.VerificationCode != "" && u.VerificationExpiresAt != nil
}

// Public returns a copy with all secret fields cleared, safe to hand to
// any caller.
func (u User) Public() User {
	u.PasswordHash = ""
	u.VerificationCode = ""
	u.VerificationExpiresAt = nil
	return u
}
