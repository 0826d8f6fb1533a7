package authapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/watersmet/identity/pkg/validator"
	"github.com/watersmet/identity/svc/auth"
	"github.com/watersmet/identity/svc/user"
)

var errInvalidBody = errors.New("invalid request body")

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errInvalidBody
	}
	return nil
}

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError translates a domain error to its HTTP status. Anything
// unmapped is a 500 with a generic message so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: verrs.Error(), Fields: verrs.Fields()})
		return
	}

	// The sentinel's own message goes on the wire, never the wrapped
	// cause: delivery and provider errors may carry upstream detail.
	for _, m := range statusMap {
		if errors.Is(err, m.sentinel) {
			writeJSON(w, m.status, errorResponse{Error: m.sentinel.Error()})
			return
		}
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

var statusMap = []struct {
	sentinel error
	status   int
}{
	{errInvalidBody, http.StatusBadRequest},
	{user.ErrEmailAlreadyExists, http.StatusConflict},
	{user.ErrGoogleIDLinked, http.StatusConflict},
	{user.ErrUserNotFound, http.StatusNotFound},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized},
	{auth.ErrAccountInactive, http.StatusUnauthorized},
	{auth.ErrGoogleAccount, http.StatusUnauthorized},
	{auth.ErrNoPasswordSet, http.StatusUnauthorized},
	{auth.ErrTokenExpired, http.StatusUnauthorized},
	{auth.ErrTokenMalformed, http.StatusUnauthorized},
	{auth.ErrUnauthorized, http.StatusUnauthorized},
	{auth.ErrUnknownUser, http.StatusBadRequest},
	{auth.ErrAlreadyVerified, http.StatusBadRequest},
	{auth.ErrNoCode, http.StatusBadRequest},
	{auth.ErrCodeExpired, http.StatusBadRequest},
	{auth.ErrCodeMismatch, http.StatusBadRequest},
	{auth.ErrCodeDelivery, http.StatusBadGateway},
	{auth.ErrProviderExchange, http.StatusBadGateway},
}
