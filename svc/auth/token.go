package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/watersmet/identity/pkg/cache"
	"github.com/watersmet/identity/svc/user"
)

// identityCacheTTL bounds how long role/email changes may remain
// invisible to token validation after a write.
const identityCacheTTL = 5 * time.Minute

// JWTConfig is the signer configuration supplied at process start.
type JWTConfig struct {
	Secret string        `env:"JWT_SECRET,required"`                  // Secret is the HMAC signing key, at least 32 bytes.
	TTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`             // TTL is the structural token lifetime.
	Issuer string        `env:"JWT_ISSUER" envDefault:"watersmet-identity"` // Issuer is the iss claim value.
}

// Claims is the session token payload: subject carries the user id.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the resolved, cacheable view of a validated token's
// subject.
type Identity struct {
	ID            uuid.UUID
	Email         string
	Role          user.Role
	EmailVerified bool
}

// TokenService mints and validates bearer session tokens. Validation
// resolves the subject against the credential store through a 5-minute
// per-subject cache, so a burst of authenticated requests costs one
// store read.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	store  user.Store
	cache  *cache.TTLCache[string, Identity]
}

// NewTokenService creates a TokenService. The secret must be non-empty;
// an empty signer secret is a misconfiguration worth failing on.
func NewTokenService(cfg JWTConfig, store user.Store) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("auth: missing JWT secret")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("auth: JWT TTL must be positive")
	}
	return &TokenService{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		store:  store,
		cache:  cache.NewTTL[string, Identity](identityCacheTTL),
	}, nil
}

// Issue signs a session token for u with subject, email and role claims.
func (s *TokenService) Issue(u *user.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: u.Email,
		Role:  string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies the token signature and structural expiry, then
// resolves the subject to a live identity. Signature, shape and expiry
// problems come back as ErrTokenMalformed or ErrTokenExpired; a subject
// that no longer exists or is inactive comes back as ErrUnauthorized.
func (s *TokenService) Validate(ctx context.Context, raw string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return s.resolveIdentity(ctx, claims.Subject)
}

// resolveIdentity returns the cached identity for subject or loads it
// from the store. Concurrent misses for the same subject may both load
// and both write the cache; the values derive from the same
// authoritative read, so last writer wins harmlessly.
func (s *TokenService) resolveIdentity(ctx context.Context, subject string) (*Identity, error) {
	if identity, ok := s.cache.Get(subject); ok {
		return &identity, nil
	}

	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, ErrTokenMalformed
	}

	u, err := s.store.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("load token subject: %w", err)
	}
	if !u.Active {
		return nil, ErrUnauthorized
	}

	identity := Identity{
		ID:            u.ID,
		Email:         u.Email,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
	}
	s.cache.Set(subject, identity)

	return &identity, nil
}

// InvalidateIdentity drops the cached identity for a user, forcing the
// next validation to re-read the store.
func (s *TokenService) InvalidateIdentity(id uuid.UUID) {
	s.cache.Delete(id.String())
}

// StartCacheSweeper evicts expired identity entries in the background
// until stop is closed.
func (s *TokenService) StartCacheSweeper(interval time.Duration, stop <-chan struct{}) {
	s.cache.StartSweeper(interval, stop)
}
