package domain

import "time"

// Audit event severities.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
)

// Audit event types emitted by the auth core.
const (
	EventSessionCreated        = "session_created"
	EventSessionRevoked        = "session_revoked"
	EventAllSessionsRevoked    = "all_sessions_revoked"
	EventMFAEnabled            = "mfa_enabled"
	EventMFADisabled           = "mfa_disabled"
	EventMFABackupCodeUsed     = "mfa_backup_code_used"
	EventMFACodesRegenerated   = "mfa_backup_codes_regenerated"
	EventMFAVerificationFailed = "mfa_verification_failed"
)

// AuditEvent is an append-only security log entry. Events are never mutated
// or deleted by this core.
type AuditEvent struct {
	ID          string    `json:"id"`
	SubjectID   string    `json:"-"`
	EventType   string    `json:"eventType"`
	Description string    `json:"description"`
	IPAddress   string    `json:"ipAddress,omitempty"`
	UserAgent   string    `json:"userAgent,omitempty"`
	Metadata    string    `json:"metadata,omitempty"` // optional JSON blob
	Severity    string    `json:"severity"`
	CreatedAt   time.Time `json:"createdAt"`
}
