package domain

import "time"

// DeviceSession is the server-side record of one logged-in device/browser.
// Only the fingerprint of the opaque session token is stored. Sessions are
// soft-deleted (IsActive flipped) so the audit trail survives revocation.
type DeviceSession struct {
	ID             string    `json:"id"`
	SubjectID      string    `json:"-"`
	TokenHash      string    `json:"-"`
	DeviceName     string    `json:"deviceName"`
	UserAgent      string    `json:"userAgent"`
	IPAddress      string    `json:"ipAddress"`
	LastActivityAt time.Time `json:"lastActivityAt"`
	ExpiresAt      time.Time `json:"expiresAt"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// DeviceMeta captures the request attributes recorded at login completion.
type DeviceMeta struct {
	DeviceName string
	UserAgent  string
	IPAddress  string
}
