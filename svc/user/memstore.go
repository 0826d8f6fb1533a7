package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/watersmet/identity/pkg/sanitizer"
)

// MemStore is an in-memory Store used in tests and for local runs
// without Postgres. It enforces the same uniqueness rules as the SQL
// schema.
type MemStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*User

	// now is swappable for expiry tests.
	now func() time.Time
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		users: make(map[uuid.UUID]*User),
		now:   time.Now,
	}
}

func (s *MemStore) Create(ctx context.Context, params CreateParams) (*User, error) {
	params = params.withDefaults()
	email := sanitizer.NormalizeEmail(params.Email)

	hash, err := normalizePassword(params.Password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return nil, ErrEmailAlreadyExists
		}
		if params.GoogleID != "" && u.GoogleID == params.GoogleID {
			return nil, ErrGoogleIDLinked
		}
	}

	now := s.now()
	u := &User{
		ID:            uuid.New(),
		FullName:      params.FullName,
		Email:         email,
		PhoneNumber:   params.PhoneNumber,
		Role:          params.Role,
		Provider:      params.Provider,
		GoogleID:      params.GoogleID,
		EmailVerified: params.EmailVerified,
		Active:        true,
		PasswordHash:  hash,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.users[u.ID] = u

	public := u.Public()
	return &public, nil
}

func (s *MemStore) ByID(ctx context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	public := u.Public()
	return &public, nil
}

func (s *MemStore) ByEmail(ctx context.Context, email string) (*User, error) {
	email = sanitizer.NormalizeEmail(email)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			public := u.Public()
			return &public, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemStore) ByGoogleID(ctx context.Context, googleID string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if googleID != "" {
		for _, u := range s.users {
			if u.GoogleID == googleID {
				public := u.Public()
				return &public, nil
			}
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemStore) ByIDWithSecrets(ctx context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *MemStore) ByEmailWithSecrets(ctx context.Context, email string) (*User, error) {
	email = sanitizer.NormalizeEmail(email)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemStore) List(ctx context.Context) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		public := u.Public()
		out = append(out, &public)
	}
	return out, nil
}

func (s *MemStore) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	if params.Email != nil {
		email := sanitizer.NormalizeEmail(*params.Email)
		for otherID, other := range s.users {
			if otherID != id && other.Email == email {
				return nil, ErrEmailAlreadyExists
			}
		}
		u.Email = email
	}
	if params.FullName != nil {
		u.FullName = *params.FullName
	}
	if params.PhoneNumber != nil {
		u.PhoneNumber = *params.PhoneNumber
	}
	if params.Role != nil {
		u.Role = *params.Role
	}
	if params.Password != nil {
		hash, err := normalizePassword(*params.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = s.now()

	public := u.Public()
	return &public, nil
}

func (s *MemStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Active = false
	u.UpdatedAt = s.now()
	return nil
}

func (s *MemStore) LinkGoogle(ctx context.Context, id uuid.UUID, googleID string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	for otherID, other := range s.users {
		if otherID != id && other.GoogleID == googleID {
			return nil, ErrGoogleIDLinked
		}
	}

	u.GoogleID = googleID
	u.Provider = ProviderGoogle
	u.EmailVerified = true
	u.UpdatedAt = s.now()

	public := u.Public()
	return &public, nil
}

func (s *MemStore) SaveVerificationCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.VerificationCode = code
	u.VerificationExpiresAt = &expiresAt
	u.UpdatedAt = s.now()
	return nil
}

func (s *MemStore) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.EmailVerified = true
	u.VerificationCode = ""
	u.VerificationExpiresAt = nil
	u.UpdatedAt = s.now()
	return nil
}
