package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/wukonglabs/wukong/internal/auth/domain"
	"github.com/wukonglabs/wukong/internal/auth/store"
	"github.com/wukonglabs/wukong/pkg/cryptox"
	"github.com/wukonglabs/wukong/pkg/slogx"
)

var (
	ErrMFAAlreadyEnabled = errors.New("mfa already enabled")
	ErrMFANotEnrolled    = errors.New("mfa enrollment not started")
	ErrMFANotEnabled     = errors.New("mfa not enabled")
	ErrInvalidMFACode    = errors.New("invalid mfa code")
)

// BackupCodeCount is the size of a freshly issued recovery pool.
const BackupCodeCount = 10

const (
	totpPeriod     = 30
	totpSecretSize = 20

	// totpSkew accepts codes up to two steps either side of now, tolerating
	// clock drift between the server and the authenticator device.
	totpSkew = 2
)

// MFA manages TOTP enrollment and second-factor verification. Enrollment is
// staged: the secret and recovery pool are persisted disabled, and only a
// valid code flips the factor on.
type MFA struct {
	Store store.MfaStore
	Audit *Audit

	// Issuer is the account label shown in authenticator apps.
	Issuer string
}

func NewMFA(st store.MfaStore, audit *Audit, issuer string) *MFA {
	return &MFA{Store: st, Audit: audit, Issuer: issuer}
}

func validateTOTP(code, secret string) bool {
	ok, err := totp.ValidateCustom(code, secret, time.Now().UTC(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}

// Enabled reports whether the subject has a confirmed second factor.
func (m *MFA) Enabled(ctx context.Context, subjectID string) (bool, error) {
	settings, err := m.Store.GetMfaSettings(ctx, subjectID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return settings.TOTPEnabled, nil
}

// BeginEnrollment generates a fresh TOTP secret and recovery pool. The
// secret and codes are returned exactly once; re-running enrollment before
// confirmation replaces the staged state.
func (m *MFA) BeginEnrollment(ctx context.Context, subjectID string) (domain.MfaEnrollment, error) {
	settings, err := m.Store.GetMfaSettings(ctx, subjectID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return domain.MfaEnrollment{}, fmt.Errorf("load mfa settings: %w", err)
	}
	if settings.TOTPEnabled {
		return domain.MfaEnrollment{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      m.Issuer,
		AccountName: subjectID,
		Period:      totpPeriod,
		SecretSize:  totpSecretSize,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.MfaEnrollment{}, fmt.Errorf("generate totp secret: %w", err)
	}

	codes := make([]string, 0, BackupCodeCount)
	hashes := make([]string, 0, BackupCodeCount)
	for range BackupCodeCount {
		code, err := cryptox.GenerateBackupCode()
		if err != nil {
			return domain.MfaEnrollment{}, fmt.Errorf("generate backup code: %w", err)
		}
		codes = append(codes, code)
		hashes = append(hashes, cryptox.FingerprintToken(code))
	}

	if err := m.Store.SaveMfaSettings(ctx, domain.MfaSettings{
		SubjectID:            subjectID,
		TOTPSecret:           key.Secret(),
		TOTPEnabled:          false,
		BackupCodesGenerated: true,
	}); err != nil {
		return domain.MfaEnrollment{}, fmt.Errorf("stage mfa settings: %w", err)
	}
	if err := m.Store.ReplaceBackupCodes(ctx, subjectID, hashes); err != nil {
		return domain.MfaEnrollment{}, fmt.Errorf("stage backup codes: %w", err)
	}

	return domain.MfaEnrollment{
		Secret:          key.Secret(),
		ProvisioningURI: key.URL(),
		BackupCodes:     codes,
	}, nil
}

// ConfirmEnrollment turns the staged factor on once the user proves they hold
// the secret.
func (m *MFA) ConfirmEnrollment(ctx context.Context, subjectID, code string) error {
	settings, err := m.Store.GetMfaSettings(ctx, subjectID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && settings.TOTPSecret == "") {
		return ErrMFANotEnrolled
	}
	if err != nil {
		return fmt.Errorf("load mfa settings: %w", err)
	}
	if settings.TOTPEnabled {
		return ErrMFAAlreadyEnabled
	}

	if !validateTOTP(code, settings.TOTPSecret) {
		return ErrInvalidMFACode
	}

	settings.TOTPEnabled = true
	if err := m.Store.SaveMfaSettings(ctx, settings); err != nil {
		return fmt.Errorf("enable mfa: %w", err)
	}

	m.Audit.Record(ctx, domain.AuditEvent{
		SubjectID:   subjectID,
		EventType:   domain.EventMFAEnabled,
		Description: "Two-factor authentication enabled",
	})
	return nil
}

// Verify checks a second-factor code: first as TOTP, then as a single-use
// recovery code. Consuming the last recovery codes is reported so the UI can
// prompt for regeneration.
func (m *MFA) Verify(ctx context.Context, subjectID, code string) (domain.MfaVerifyResult, error) {
	log := slogx.FromContext(ctx)

	settings, err := m.Store.GetMfaSettings(ctx, subjectID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.MfaVerifyResult{}, ErrMFANotEnabled
	}
	if err != nil {
		return domain.MfaVerifyResult{}, fmt.Errorf("load mfa settings: %w", err)
	}
	if !settings.TOTPEnabled {
		return domain.MfaVerifyResult{}, ErrMFANotEnabled
	}

	code = strings.ToUpper(strings.TrimSpace(code))

	if validateTOTP(code, settings.TOTPSecret) {
		return domain.MfaVerifyResult{Success: true, Message: "Code verified"}, nil
	}

	if len(code) == cryptox.BackupCodeLength {
		err := m.Store.ConsumeBackupCode(ctx, subjectID, cryptox.FingerprintToken(code))
		if err == nil {
			remaining, countErr := m.Store.CountBackupCodes(ctx, subjectID)
			if countErr != nil {
				log.Error("backup code count failed", "subject", subjectID, "err", countErr)
			}

			m.Audit.Record(ctx, domain.AuditEvent{
				SubjectID:   subjectID,
				EventType:   domain.EventMFABackupCodeUsed,
				Description: fmt.Sprintf("Backup code used, %d remaining", remaining),
			})

			msg := "Backup code accepted"
			if remaining == 0 {
				msg = "Backup code accepted. No backup codes remain, generate new ones."
			}
			return domain.MfaVerifyResult{Success: true, Message: msg}, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return domain.MfaVerifyResult{}, fmt.Errorf("consume backup code: %w", err)
		}
	}

	m.Audit.Record(ctx, domain.AuditEvent{
		SubjectID:   subjectID,
		EventType:   domain.EventMFAVerificationFailed,
		Description: "Second factor verification failed",
		Severity:    domain.SeverityWarning,
	})
	return domain.MfaVerifyResult{}, ErrInvalidMFACode
}

// Disable removes the second factor after one final proof of possession.
func (m *MFA) Disable(ctx context.Context, subjectID, code string) error {
	if _, err := m.Verify(ctx, subjectID, code); err != nil {
		return err
	}

	if err := m.Store.DeleteMfa(ctx, subjectID); err != nil {
		return fmt.Errorf("delete mfa: %w", err)
	}

	m.Audit.Record(ctx, domain.AuditEvent{
		SubjectID:   subjectID,
		EventType:   domain.EventMFADisabled,
		Description: "Two-factor authentication disabled",
		Severity:    domain.SeverityWarning,
	})
	return nil
}

// RegenerateBackupCodes replaces the recovery pool, invalidating every
// previous code.
func (m *MFA) RegenerateBackupCodes(ctx context.Context, subjectID string) ([]string, error) {
	settings, err := m.Store.GetMfaSettings(ctx, subjectID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrMFANotEnabled
	}
	if err != nil {
		return nil, fmt.Errorf("load mfa settings: %w", err)
	}
	if !settings.TOTPEnabled {
		return nil, ErrMFANotEnabled
	}

	codes := make([]string, 0, BackupCodeCount)
	hashes := make([]string, 0, BackupCodeCount)
	for range BackupCodeCount {
		code, err := cryptox.GenerateBackupCode()
		if err != nil {
			return nil, fmt.Errorf("generate backup code: %w", err)
		}
		codes = append(codes, code)
		hashes = append(hashes, cryptox.FingerprintToken(code))
	}

	if err := m.Store.ReplaceBackupCodes(ctx, subjectID, hashes); err != nil {
		return nil, fmt.Errorf("replace backup codes: %w", err)
	}

	settings.BackupCodesGenerated = true
	if err := m.Store.SaveMfaSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("save mfa settings: %w", err)
	}

	m.Audit.Record(ctx, domain.AuditEvent{
		SubjectID:   subjectID,
		EventType:   domain.EventMFACodesRegenerated,
		Description: "Backup codes regenerated",
	})
	return codes, nil
}

// BackupCodesRemaining reports how many recovery codes are left unused.
func (m *MFA) BackupCodesRemaining(ctx context.Context, subjectID string) (int, error) {
	return m.Store.CountBackupCodes(ctx, subjectID)
}
