package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/watersmet/identity/pkg/logger"
	"github.com/watersmet/identity/pkg/sanitizer"
	"github.com/watersmet/identity/svc/user"
)

// GoogleProfile is the subset of the Google userinfo payload the
// platform cares about.
type GoogleProfile struct {
	GoogleID string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"name"`
	Picture  string `json:"picture"`
}

// ProviderAdapter abstracts an external OAuth provider. The concrete
// Google adapter lives behind it so reconciliation logic stays testable
// without network calls.
type ProviderAdapter interface {
	// AuthURL returns the provider consent page URL for the given
	// anti-CSRF state value.
	AuthURL(state string) string
	// ResolveProfile exchanges the authorization code and fetches the
	// provider's profile for the authenticated account.
	ResolveProfile(ctx context.Context, code string) (*GoogleProfile, error)
}

// GoogleOAuthConfig carries the Google OAuth client credentials.
type GoogleOAuthConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID,required"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET,required"`
	RedirectURL  string `env:"GOOGLE_REDIRECT_URL,required"`
}

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleAdapter struct {
	oauth *oauth2.Config
}

// NewGoogleAdapter builds the production Google OAuth adapter.
func NewGoogleAdapter(cfg GoogleOAuthConfig) (ProviderAdapter, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil, errors.New("auth: incomplete google oauth config")
	}
	return &googleAdapter{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}, nil
}

func (g *googleAdapter) AuthURL(state string) string {
	return g.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (g *googleAdapter) ResolveProfile(ctx context.Context, code string) (*GoogleProfile, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Join(ErrProviderExchange, err)
	}

	resp, err := g.oauth.Client(ctx, token).Get(googleUserinfoURL)
	if err != nil {
		return nil, errors.Join(ErrProviderExchange, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: userinfo returned %s", ErrProviderExchange, resp.Status)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, errors.Join(ErrProviderExchange, err)
	}
	if profile.GoogleID == "" || profile.Email == "" {
		return nil, fmt.Errorf("%w: userinfo payload missing id or email", ErrProviderExchange)
	}
	return &profile, nil
}

// LoginWithGoogle resolves the authorization code into a profile,
// reconciles it against the user store and issues a session token.
func (s *Service) LoginWithGoogle(ctx context.Context, provider ProviderAdapter, code string) (*LoginResult, error) {
	profile, err := provider.ResolveProfile(ctx, code)
	if err != nil {
		return nil, err
	}

	u, err := s.ReconcileGoogle(ctx, profile)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: u.Public()}, nil
}

// ReconcileGoogle maps a Google profile onto a platform user. Match
// order: by Google ID first, then by email (the account gets the Google
// identity linked, keeping any local password), otherwise a new
// verified Google-provider user is created. Google has already verified
// the email, so no OTP round-trip is required.
func (s *Service) ReconcileGoogle(ctx context.Context, profile *GoogleProfile) (*user.User, error) {
	email := sanitizer.NormalizeEmail(profile.Email)

	u, err := s.store.ByGoogleID(ctx, profile.GoogleID)
	switch {
	case err == nil:
		if !u.Active {
			return nil, ErrAccountInactive
		}
		return u, nil
	case !errors.Is(err, user.ErrUserNotFound):
		return nil, err
	}

	u, err = s.store.ByEmail(ctx, email)
	switch {
	case err == nil:
		if !u.Active {
			return nil, ErrAccountInactive
		}
		linked, err := s.store.LinkGoogle(ctx, u.ID, profile.GoogleID)
		if err != nil {
			return nil, err
		}
		s.tokens.InvalidateIdentity(u.ID)
		s.log.InfoContext(ctx, "google identity linked",
			logger.UserID(u.ID.String()), logger.Component("google"))
		return linked, nil
	case !errors.Is(err, user.ErrUserNotFound):
		return nil, err
	}

	created, err := s.store.Create(ctx, user.CreateParams{
		FullName:      sanitizer.TrimName(profile.FullName),
		Email:         email,
		Provider:      user.ProviderGoogle,
		GoogleID:      profile.GoogleID,
		EmailVerified: true,
	})
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "google user created",
		logger.UserID(created.ID.String()), logger.Component("google"))
	return created, nil
}
