package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes the service emits on its wire envelope.
const (
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeInvalidGrant         = "invalid_grant"
	ErrorCodeUnsupportedGrantType = "unsupported_grant_type"
	ErrorCodeInvalidToken         = "invalid_token"
	ErrorCodeUnauthorized         = "unauthorized"
	ErrorCodeMFARequired          = "mfa_required"
	ErrorCodeAccessDenied         = "access_denied"
	ErrorCodeNotFound             = "not_found"
	ErrorCodeServerError          = "server_error"
)

// APIError is the service's error envelope plus the HTTP status it arrived
// with.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// IsMFARequired reports whether err is the service asking for a second
// factor. Callers should collect a TOTP or backup code and retry the login
// with MfaCode set.
func IsMFARequired(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == ErrorCodeMFARequired
}

// parseErrorResponse turns a non-2xx response body into a typed error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var envelope APIError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Code != "" {
		envelope.StatusCode = resp.StatusCode
		return &envelope
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
