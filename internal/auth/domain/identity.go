package domain

import "time"

// Identity is a user record in the console's identity store. The store is
// owned by the surrounding application; the auth core only reads and upserts
// records by their stable external identifier and never deletes them.
type Identity struct {
	ID          string
	ExternalID  string // stable per login-provider identity, "provider:providerUserId"
	DisplayName string
	Email       string
	LoginMethod string // "email", "google", "microsoft", "apple", "mock"
	Role        string // "user" or "admin"
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastSignedIn time.Time
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool { return i.Role == "admin" }
