package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// Token size constants (in bytes before encoding).
const (
	// TokenSize128 provides 128 bits of entropy (22 chars base64url).
	TokenSize128 = 16
	// TokenSize256 provides 256 bits of entropy (43 chars base64url).
	TokenSize256 = 32
)

// GenerateToken creates a cryptographically secure random token of the given
// byte length, returned as base64url without padding. Sign-in codes use
// TokenSize128; access tokens and device session tokens use TokenSize256.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token as
// base64url. Stores hold fingerprints only, never the raw token.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// backupCodeAlphabet deliberately excludes lowercase so codes survive being
// read aloud or retyped from paper.
const backupCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// BackupCodeLength is the character length of a recovery code.
const BackupCodeLength = 8

// GenerateBackupCode creates one human-typable recovery code.
func GenerateBackupCode() (string, error) {
	buf := make([]byte, BackupCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate backup code: %w", err)
	}

	out := make([]byte, BackupCodeLength)
	for i, b := range buf {
		out[i] = backupCodeAlphabet[int(b)%len(backupCodeAlphabet)]
	}
	return string(out), nil
}
