package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer mints HS256 tokens for one purpose with one derived key. Use
// separate Signers (with separate keys) for session credentials and ID
// assertions.
type Signer struct {
	key    []byte
	issuer string
}

func NewSigner(key []byte, issuer string) (*Signer, error) {
	if len(key) == 0 {
		return nil, errors.New("jwtx: empty signing key")
	}
	if issuer == "" {
		return nil, errors.New("jwtx: empty issuer")
	}
	return &Signer{key: key, issuer: issuer}, nil
}

// SignSession mints a session credential for the given subject and client.
func (s *Signer) SignSession(subject, clientID, name string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{clientID},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name: name,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// SignIDAssertion mints the identity assertion returned from the token
// exchange.
func (s *Signer) SignIDAssertion(subject, clientID, name, email string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := IDAssertionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{clientID},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		OpenID:   subject,
		ClientID: clientID,
		Name:     name,
		Email:    email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}
