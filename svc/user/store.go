package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CreateParams carries the fields accepted when creating a user. Zero
// Role and Provider default to customer/local. Password may be plaintext
// (it is hashed before the write) or an existing bcrypt digest.
type CreateParams struct {
	FullName      string
	Email         string
	Password      string
	PhoneNumber   string
	Role          Role
	Provider      Provider
	GoogleID      string
	EmailVerified bool
}

func (p CreateParams) withDefaults() CreateParams {
	if p.Role == "" {
		p.Role = RoleCustomer
	}
	if p.Provider == "" {
		p.Provider = ProviderLocal
	}
	return p
}

// UpdateParams carries a partial update; nil fields are left untouched.
type UpdateParams struct {
	FullName    *string
	Email       *string
	Password    *string
	PhoneNumber *string
	Role        *Role
}

// Store is the persistence contract for user records.
//
// ByID, ByEmail and ByGoogleID return the default projection (no
// secrets) and ErrUserNotFound when absent. The WithSecrets variants
// additionally expose the password hash and verification-code fields.
type Store interface {
	Create(ctx context.Context, params CreateParams) (*User, error)
	ByID(ctx context.Context, id uuid.UUID) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
	ByGoogleID(ctx context.Context, googleID string) (*User, error)
	ByIDWithSecrets(ctx context.Context, id uuid.UUID) (*User, error)
	ByEmailWithSecrets(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)

	// Update merges params into the record and fails with
	// ErrEmailAlreadyExists when the new email belongs to another user.
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*User, error)

	// SoftDelete marks the record inactive. The row is never erased.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// LinkGoogle attaches a Google identity: sets the google id, flips
	// the provider to google and marks the email verified. The password
	// hash, if any, is untouched.
	LinkGoogle(ctx context.Context, id uuid.UUID, googleID string) (*User, error)

	// SaveVerificationCode stores code and expiry in a single write,
	// replacing any previous pair.
	SaveVerificationCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error

	// MarkEmailVerified sets EmailVerified and clears the code/expiry
	// pair in a single write.
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
}
