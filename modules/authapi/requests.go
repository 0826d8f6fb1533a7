package authapi

import (
	"github.com/watersmet/identity/pkg/sanitizer"
	"github.com/watersmet/identity/pkg/validator"
	"github.com/watersmet/identity/svc/user"
)

type registerRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Role        string `json:"role,omitempty"`
}

// normalize cleans the payload in place before validation so the rules
// judge the values that would actually be stored.
func (r *registerRequest) normalize() {
	r.FullName = sanitizer.TrimName(r.FullName)
	r.Email = sanitizer.NormalizeEmail(r.Email)
}

func (r *registerRequest) validate() error {
	rules := []validator.Rule{
		validator.Required("full_name", r.FullName),
		validator.MaxLen("full_name", r.FullName, 120),
		validator.Required("email", r.Email),
		validator.ValidEmail("email", r.Email),
		validator.Required("password", r.Password),
		validator.StrongPassword("password", r.Password, validator.DefaultPasswordStrength),
	}
	if r.Role != "" {
		rules = append(rules, validator.OneOf("role", r.Role, user.Roles...))
	}
	return validator.Apply(rules...)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *loginRequest) normalize() {
	r.Email = sanitizer.NormalizeEmail(r.Email)
}

func (r *loginRequest) validate() error {
	return validator.Apply(
		validator.Required("email", r.Email),
		validator.ValidEmail("email", r.Email),
		validator.Required("password", r.Password),
	)
}

type sendOTPRequest struct {
	UserID string `json:"user_id"`
}

func (r *sendOTPRequest) validate() error {
	return validator.Apply(validator.Required("user_id", r.UserID))
}

type verifyOTPRequest struct {
	UserID string `json:"user_id"`
	Code   string `json:"code"`
}

func (r *verifyOTPRequest) validate() error {
	return validator.Apply(
		validator.Required("user_id", r.UserID),
		validator.Required("code", r.Code),
		validator.NumericCode("code", r.Code, 6),
	)
}
