package domain

import "time"

// MfaSettings holds the second-factor state for one subject. The backup-code
// pool lives in its own table (hashed); BackupCodesGenerated records whether
// a pool was ever issued so the UI can prompt for regeneration.
type MfaSettings struct {
	SubjectID            string
	TOTPSecret           string // base32, empty unless enrolled
	TOTPEnabled          bool
	BackupCodesGenerated bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// MfaEnrollment is the staged result of beginning TOTP enrollment. Nothing
// is persisted until the user confirms with a valid code.
type MfaEnrollment struct {
	Secret          string   `json:"secret"`
	ProvisioningURI string   `json:"provisioningUri"` // otpauth:// URL for QR rendering
	BackupCodes     []string `json:"backupCodes"`
}

// MfaVerifyResult reports the outcome of a second-factor check. Message is
// safe to surface to the end user.
type MfaVerifyResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
