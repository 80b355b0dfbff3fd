package domain

import "time"

// AuthorizationCode binds a single-use sign-in code to the client and
// redirect target it was minted for. Only the fingerprint of the opaque code
// is stored; redemption marks UsedAt exactly once.
type AuthorizationCode struct {
	ID          string
	CodeHash    string
	ClientID    string
	RedirectURI string
	SubjectID   string // Identity.ExternalID
	IssuedAt    time.Time
	ExpiresAt   time.Time
	UsedAt      *time.Time
}
