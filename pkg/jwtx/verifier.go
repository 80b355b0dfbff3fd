package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("jwtx: invalid token")

// Verifier checks tokens minted by the matching Signer. Only HS256 is
// accepted; alg confusion fails closed.
type Verifier struct {
	key    []byte
	issuer string
}

func NewVerifier(key []byte, issuer string) (*Verifier, error) {
	if len(key) == 0 {
		return nil, errors.New("jwtx: empty verification key")
	}
	if issuer == "" {
		return nil, errors.New("jwtx: empty issuer")
	}
	return &Verifier{key: key, issuer: issuer}, nil
}

func (v *Verifier) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrInvalidToken
	}
	return v.key, nil
}

// VerifySession parses and validates a session credential. It returns nil on
// any failure: bad signature, expiry, wrong issuer, or missing identity
// claims. Callers treat nil as "not signed in", never as an error to surface.
func (v *Verifier) VerifySession(raw string) *SessionClaims {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, v.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil
	}
	if claims.Subject == "" || claims.Name == "" {
		return nil
	}
	return claims
}

// VerifyIDAssertion validates an identity assertion for the expected client.
func (v *Verifier) VerifyIDAssertion(raw, clientID string) (*IDAssertionClaims, error) {
	claims := &IDAssertionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, v.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(clientID),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.OpenID != claims.Subject {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
