package authapi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/watersmet/identity/pkg/logger"
	"github.com/watersmet/identity/svc/auth"
	"github.com/watersmet/identity/svc/user"
)

const stateCookie = "oauth_state"

// Module bundles the boundary handlers and their collaborators.
type Module struct {
	svc         *auth.Service
	google      auth.ProviderAdapter
	frontendURL string
	log         *slog.Logger
}

// Options configures a Module. Google and FrontendURL are optional:
// without an adapter the Google routes answer with a provider error,
// and without a frontend URL the callback returns a JSON body instead
// of redirecting.
type Options struct {
	Google      auth.ProviderAdapter
	FrontendURL string
	Logger      *slog.Logger
}

// New creates the boundary module.
func New(svc *auth.Service, opts Options) *Module {
	log := opts.Logger
	if log == nil {
		log = logger.NewDiscard()
	}
	return &Module{
		svc:         svc,
		google:      opts.Google,
		frontendURL: opts.FrontendURL,
		log:         log,
	}
}

// Router mounts every /auth route.
func (m *Module) Router() chi.Router {
	r := chi.NewRouter()

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", m.handleRegister)
		r.Post("/login", m.handleLogin)

		r.Post("/otp/send", m.handleSendOTP)
		r.Post("/otp/verify", m.handleVerifyOTP)
		r.Post("/otp/resend", m.handleResendOTP)

		r.Get("/google", m.handleGoogleRedirect)
		r.Get("/google/callback", m.handleGoogleCallback)

		r.Group(func(r chi.Router) {
			r.Use(m.requireAuth)
			r.Get("/profile", m.handleProfile)
		})
	})

	return r
}

type userResponse struct {
	ID            uuid.UUID `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	PhoneNumber   string    `json:"phone_number,omitempty"`
	Role          user.Role `json:"role"`
	Provider      string    `json:"provider"`
	EmailVerified bool      `json:"is_email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

func toUserResponse(u user.User) userResponse {
	return userResponse{
		ID:            u.ID,
		FullName:      u.FullName,
		Email:         u.Email,
		PhoneNumber:   u.PhoneNumber,
		Role:          u.Role,
		Provider:      string(u.Provider),
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (m *Module) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.normalize()
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	created, err := m.svc.Register(r.Context(), auth.RegisterParams{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Role:        user.Role(req.Role),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(*created))
}

func (m *Module) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.normalize()
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	result, err := m.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: result.Token, User: toUserResponse(result.User)})
}

type profileResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Role          user.Role `json:"role"`
	EmailVerified bool      `json:"is_email_verified"`
}

func (m *Module) handleProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, auth.ErrUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{
		ID:            identity.ID,
		Email:         identity.Email,
		Role:          identity.Role,
		EmailVerified: identity.EmailVerified,
	})
}

func (m *Module) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	m.dispatchOTP(w, r, m.svc.SendOTP)
}

func (m *Module) handleResendOTP(w http.ResponseWriter, r *http.Request) {
	m.dispatchOTP(w, r, m.svc.ResendOTP)
}

func (m *Module) dispatchOTP(w http.ResponseWriter, r *http.Request, send func(ctx context.Context, id uuid.UUID) error) {
	var req sendOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}
	id, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, errInvalidBody)
		return
	}

	if err := send(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (m *Module) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}
	id, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, errInvalidBody)
		return
	}

	if err := m.svc.VerifyOTP(r.Context(), id, req.Code); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

func (m *Module) handleGoogleRedirect(w http.ResponseWriter, r *http.Request) {
	if m.google == nil {
		writeError(w, auth.ErrProviderExchange)
		return
	}

	state, err := randomState()
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, m.google.AuthURL(state), http.StatusTemporaryRedirect)
}

func (m *Module) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if m.google == nil {
		writeError(w, auth.ErrProviderExchange)
		return
	}

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		writeError(w, auth.ErrUnauthorized)
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, errInvalidBody)
		return
	}

	result, err := m.svc.LoginWithGoogle(r.Context(), m.google, code)
	if err != nil {
		m.log.ErrorContext(r.Context(), "google callback failed", logger.Error(err), logger.Component("authapi"))
		writeError(w, err)
		return
	}

	// Burn the state cookie.
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/auth/google", MaxAge: -1, HttpOnly: true})

	if m.frontendURL != "" {
		target := m.frontendURL + "?token=" + url.QueryEscape(result.Token)
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: result.Token, User: toUserResponse(result.User)})
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
