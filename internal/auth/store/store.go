// Package store defines the persistence contracts for the auth core. Drivers
// live under store/drivers and must satisfy these interfaces; services only
// ever see the interfaces.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/wukonglabs/wukong/internal/auth/domain"
)

// Sentinel errors shared by every driver.
var (
	ErrNotFound = errors.New("store: not found")

	// ErrCodeAlreadyUsed is returned by ConsumeAuthorizationCode when the
	// code exists but was already redeemed, including the losers of a
	// concurrent redemption race.
	ErrCodeAlreadyUsed = errors.New("store: authorization code already used")

	// ErrCodeExpired is returned by ConsumeAuthorizationCode when the code
	// exists, is unused, but is past its expiry.
	ErrCodeExpired = errors.New("store: authorization code expired")

	// ErrClientMismatch and ErrRedirectMismatch are returned by
	// ConsumeAuthorizationCode when the presented client or redirect does
	// not match what the code was minted for.
	ErrClientMismatch   = errors.New("store: client mismatch")
	ErrRedirectMismatch = errors.New("store: redirect mismatch")
)

// GrantStore holds the short-lived grant material: single-use authorization
// codes and the opaque access tokens minted from them. It is split from Store
// so a multi-instance deployment can back it with Redis while the durable
// tables stay in SQLite.
type GrantStore interface {
	// PutAuthorizationCode persists a freshly minted code record.
	PutAuthorizationCode(ctx context.Context, code domain.AuthorizationCode) error

	// ConsumeAuthorizationCode atomically redeems the code identified by
	// codeHash for the given client and redirect. Exactly one caller wins;
	// every other caller receives ErrCodeAlreadyUsed. Validation order is
	// existence, reuse, expiry, client, redirect.
	ConsumeAuthorizationCode(ctx context.Context, codeHash, clientID, redirectURI string, now time.Time) (domain.AuthorizationCode, error)

	// PutAccessToken persists an opaque access token record.
	PutAccessToken(ctx context.Context, token domain.AccessToken) error

	// GetAccessToken looks up a live access token by fingerprint. Expired
	// or unknown tokens return ErrNotFound.
	GetAccessToken(ctx context.Context, tokenHash string, now time.Time) (domain.AccessToken, error)

	// DeleteExpiredGrants removes codes and tokens past their expiry and
	// reports how many rows were purged. Drivers with native TTLs may
	// return zero.
	DeleteExpiredGrants(ctx context.Context, now time.Time) (int64, error)

	Close() error
}

// IdentityStore reads and upserts user records keyed by external identifier.
type IdentityStore interface {
	// UpsertIdentity creates the record if absent, otherwise refreshes
	// name, email, login method and last-signed-in, and returns the row.
	UpsertIdentity(ctx context.Context, identity domain.Identity) (domain.Identity, error)

	GetIdentityByExternalID(ctx context.Context, externalID string) (domain.Identity, error)
}

// MfaStore persists second-factor settings and the hashed backup-code pool.
type MfaStore interface {
	GetMfaSettings(ctx context.Context, subjectID string) (domain.MfaSettings, error)
	SaveMfaSettings(ctx context.Context, settings domain.MfaSettings) error

	// ReplaceBackupCodes swaps the subject's entire pool for the given
	// fingerprints in one transaction.
	ReplaceBackupCodes(ctx context.Context, subjectID string, codeHashes []string) error

	// ConsumeBackupCode deletes the matching code. It returns ErrNotFound
	// when no live code matches; at most one caller can succeed per code.
	ConsumeBackupCode(ctx context.Context, subjectID, codeHash string) error

	CountBackupCodes(ctx context.Context, subjectID string) (int, error)

	// DeleteMfa removes settings and all backup codes for the subject.
	DeleteMfa(ctx context.Context, subjectID string) error
}

// SessionStore persists device sessions. Revocation is a soft delete.
type SessionStore interface {
	CreateDeviceSession(ctx context.Context, session domain.DeviceSession) error
	GetDeviceSessionByToken(ctx context.Context, tokenHash string) (domain.DeviceSession, error)
	GetDeviceSession(ctx context.Context, subjectID, sessionID string) (domain.DeviceSession, error)

	// ListDeviceSessions returns the subject's active, unexpired sessions
	// ordered by most recent activity.
	ListDeviceSessions(ctx context.Context, subjectID string, now time.Time) ([]domain.DeviceSession, error)

	// RevokeDeviceSession deactivates one session. Revoking an already
	// revoked or unknown session returns ErrNotFound.
	RevokeDeviceSession(ctx context.Context, subjectID, sessionID string) error

	// RevokeAllDeviceSessions deactivates every active session for the
	// subject, optionally sparing one, and reports how many were revoked.
	RevokeAllDeviceSessions(ctx context.Context, subjectID, exceptSessionID string) (int64, error)

	// TouchDeviceSession bumps last-activity on a live session.
	TouchDeviceSession(ctx context.Context, sessionID string, at time.Time) error

	// DeactivateExpiredDeviceSessions flips active sessions past expiry
	// to inactive and reports how many were affected. Rows are never
	// hard-deleted; they remain as the account's sign-in history.
	DeactivateExpiredDeviceSessions(ctx context.Context, now time.Time) (int64, error)
}

// AuditStore appends and lists security log entries.
type AuditStore interface {
	AppendAuditEvent(ctx context.Context, event domain.AuditEvent) error

	// ListAuditEvents returns the subject's most recent events, newest
	// first, capped at limit.
	ListAuditEvents(ctx context.Context, subjectID string, limit int) ([]domain.AuditEvent, error)
}

// Store is the durable store behind the auth core. Grant material lives in a
// separate GrantStore, which the SQLite driver also satisfies for
// single-instance deployments.
type Store interface {
	IdentityStore
	MfaStore
	SessionStore
	AuditStore

	// Ping reports whether the backing database is reachable.
	Ping(ctx context.Context) error

	Close() error
}
