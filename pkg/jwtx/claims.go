// Package jwtx signs and verifies the two JWT shapes this service mints:
// stateless session credentials carried in cookies, and ID assertions handed
// back from the token exchange. Both are HMAC-SHA256 with keys derived from
// the deployment secret; verification is pure key-and-claims checking with no
// store lookup.
package jwtx

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload of a session credential cookie. Subject is the
// stable external identifier and Audience carries the client the session was
// minted for.
type SessionClaims struct {
	jwt.RegisteredClaims

	Name string `json:"name,omitempty"`
}

// IDAssertionClaims is the payload of the signed identity assertion returned
// alongside the access token. OpenID duplicates Subject for consumers that
// read the flat field.
type IDAssertionClaims struct {
	jwt.RegisteredClaims

	OpenID   string `json:"openId"`
	ClientID string `json:"clientId"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}
