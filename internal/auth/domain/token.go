package domain

import "time"

// AccessToken is the opaque bearer capability returned from the token
// exchange. It grants access to the user-info lookup and nothing else; the
// holder cannot parse it. Stored by fingerprint, read-only after creation.
type AccessToken struct {
	TokenHash string
	SubjectID string
	ClientID  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenResponse is what the token endpoint returns on a successful
// authorization_code exchange.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"` // always "Bearer"
	ExpiresIn   int    `json:"expiresIn"` // seconds until the access token expires
	Scope       string `json:"scope"`
	IDToken     string `json:"idToken"`
}

// UserInfo is the profile projection returned by the user-info endpoint.
type UserInfo struct {
	ExternalID  string `json:"openId"`
	ClientID    string `json:"projectId"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	LoginMethod string `json:"loginMethod,omitempty"`
	Role        string `json:"role,omitempty"`
}
