package authsdk

import (
	"context"
	"net/http"
)

// EnrollMFA begins TOTP enrollment. The returned secret and backup codes are
// surfaced exactly once; callers must show them to the user immediately.
func (s *Session) EnrollMFA(ctx context.Context) (*MfaEnrollment, error) {
	var out MfaEnrollment
	if err := s.doJSON(ctx, http.MethodPost, "/v1/mfa/enroll", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmMFA activates a staged enrollment with a current TOTP code.
func (s *Session) ConfirmMFA(ctx context.Context, code string) error {
	return s.doJSON(ctx, http.MethodPost, "/v1/mfa/confirm", mfaCodeRequest{Code: code}, nil)
}

// VerifyMFA checks a TOTP or backup code against the enabled second factor.
func (s *Session) VerifyMFA(ctx context.Context, code string) (*MfaVerifyResult, error) {
	var out MfaVerifyResult
	if err := s.doJSON(ctx, http.MethodPost, "/v1/mfa/verify", mfaCodeRequest{Code: code}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MFAStatus reports whether the second factor is enabled and how many backup
// codes remain.
func (s *Session) MFAStatus(ctx context.Context) (*MfaStatus, error) {
	var out MfaStatus
	if err := s.doJSON(ctx, http.MethodGet, "/v1/mfa/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegenerateBackupCodes replaces the backup code pool. Previous codes stop
// working immediately.
func (s *Session) RegenerateBackupCodes(ctx context.Context) ([]string, error) {
	var out backupCodesResponse
	if err := s.doJSON(ctx, http.MethodPost, "/v1/mfa/backup-codes", nil, &out); err != nil {
		return nil, err
	}
	return out.BackupCodes, nil
}

// DisableMFA turns the second factor off. It requires one final valid TOTP
// or backup code.
func (s *Session) DisableMFA(ctx context.Context, code string) error {
	return s.doJSON(ctx, http.MethodDelete, "/v1/mfa", mfaCodeRequest{Code: code}, nil)
}
