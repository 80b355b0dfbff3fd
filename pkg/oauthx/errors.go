// Package oauthx carries the OAuth2-style error envelope used across the
// auth endpoints.
package oauthx

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Error is an OAuth2-style error with its HTTP status. The Code is the wire
// value; Description is human-oriented and must not leak internals.
type Error struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func (e *Error) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return e.Code + ": " + e.Description
}

// WithDescription returns a copy with a different description.
func (e *Error) WithDescription(desc string) *Error {
	return &Error{StatusCode: e.StatusCode, Code: e.Code, Description: desc}
}

var (
	ErrInvalidRequest = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        "invalid_request",
		Description: "The request is missing a required parameter or is otherwise malformed.",
	}

	// ErrInvalidGrant deliberately covers every code redemption failure so
	// callers cannot probe which check rejected them.
	ErrInvalidGrant = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        "invalid_grant",
		Description: "The provided authorization grant is invalid, expired, or revoked.",
	}

	ErrUnsupportedGrantType = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        "unsupported_grant_type",
		Description: "The authorization grant type is not supported.",
	}

	ErrInvalidToken = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        "invalid_token",
		Description: "The access token is invalid or has expired.",
	}

	ErrUnauthorized = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        "unauthorized",
		Description: "Authentication is required.",
	}

	ErrMFARequired = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        "mfa_required",
		Description: "A valid second factor code is required.",
	}

	ErrForbidden = &Error{
		StatusCode:  http.StatusForbidden,
		Code:        "access_denied",
		Description: "The request was refused.",
	}

	ErrNotFound = &Error{
		StatusCode:  http.StatusNotFound,
		Code:        "not_found",
		Description: "The requested resource does not exist.",
	}

	ErrServerError = &Error{
		StatusCode:  http.StatusInternalServerError,
		Code:        "server_error",
		Description: "The server encountered an unexpected condition.",
	}
)

// WriteError writes err as a JSON error envelope. Non-*Error values collapse
// to server_error so internals never reach the wire.
func WriteError(w http.ResponseWriter, err error) {
	// A nil *Error smuggled inside a non-nil error interface must not
	// reach the envelope writer.
	var oe *Error
	if !errors.As(err, &oe) || oe == nil {
		oe = ErrServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.WriteHeader(oe.StatusCode)
	_ = json.NewEncoder(w).Encode(oe)
}
