package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"

	"github.com/wukonglabs/wukong/internal/auth/domain"
	"github.com/wukonglabs/wukong/internal/auth/service"
)

func totpCode(t *testing.T, secret string) string {
	t.Helper()

	code, err := totp.GenerateCode(secret, time.Now().UTC())
	require.NoError(t, err)
	return code
}

func enrollAndConfirm(t *testing.T, f *fixture) domain.MfaEnrollment {
	t.Helper()

	ctx := context.Background()
	enrollment, err := f.mfa.BeginEnrollment(ctx, testSubject)
	require.NoError(t, err)
	require.NoError(t, f.mfa.ConfirmEnrollment(ctx, testSubject, totpCode(t, enrollment.Secret)))
	return enrollment
}

func TestEnrollment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedIdentity(t)

	enrollment, err := f.mfa.BeginEnrollment(ctx, testSubject)
	require.NoError(t, err)
	require.NotEmpty(t, enrollment.Secret)
	require.Contains(t, enrollment.ProvisioningURI, "otpauth://totp/")
	require.Len(t, enrollment.BackupCodes, service.BackupCodeCount)
	for _, code := range enrollment.BackupCodes {
		require.Len(t, code, 8)
	}

	t.Run("not enabled until confirmed", func(t *testing.T) {
		enabled, err := f.mfa.Enabled(ctx, testSubject)
		require.NoError(t, err)
		require.False(t, enabled)
	})

	t.Run("confirm rejects bad code", func(t *testing.T) {
		require.ErrorIs(t, f.mfa.ConfirmEnrollment(ctx, testSubject, "000000"), service.ErrInvalidMFACode)
	})

	t.Run("confirm with valid code enables", func(t *testing.T) {
		require.NoError(t, f.mfa.ConfirmEnrollment(ctx, testSubject, totpCode(t, enrollment.Secret)))

		enabled, err := f.mfa.Enabled(ctx, testSubject)
		require.NoError(t, err)
		require.True(t, enabled)
	})

	t.Run("cannot re-enroll while enabled", func(t *testing.T) {
		_, err := f.mfa.BeginEnrollment(ctx, testSubject)
		require.ErrorIs(t, err, service.ErrMFAAlreadyEnabled)
	})
}

func TestConfirmWithoutEnrollment(t *testing.T) {
	f := newFixture(t)
	err := f.mfa.ConfirmEnrollment(context.Background(), testSubject, "123456")
	require.ErrorIs(t, err, service.ErrMFANotEnrolled)
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedIdentity(t)
	enrollment := enrollAndConfirm(t, f)

	t.Run("totp code", func(t *testing.T) {
		result, err := f.mfa.Verify(ctx, testSubject, totpCode(t, enrollment.Secret))
		require.NoError(t, err)
		require.True(t, result.Success)
	})

	t.Run("backup code is single use", func(t *testing.T) {
		backup := enrollment.BackupCodes[0]

		result, err := f.mfa.Verify(ctx, testSubject, backup)
		require.NoError(t, err)
		require.True(t, result.Success)

		remaining, err := f.mfa.BackupCodesRemaining(ctx, testSubject)
		require.NoError(t, err)
		require.Equal(t, service.BackupCodeCount-1, remaining)

		_, err = f.mfa.Verify(ctx, testSubject, backup)
		require.ErrorIs(t, err, service.ErrInvalidMFACode)
	})

	t.Run("backup code tolerates case and whitespace", func(t *testing.T) {
		backup := enrollment.BackupCodes[1]

		result, err := f.mfa.Verify(ctx, testSubject, "  "+strings.ToLower(backup)+" ")
		require.NoError(t, err)
		require.True(t, result.Success)
	})

	t.Run("stale totp code rejected", func(t *testing.T) {
		// Skew tolerance covers clock drift of two steps either way; a
		// code minted ten minutes ago is well outside the window.
		stale, err := totp.GenerateCode(enrollment.Secret, time.Now().UTC().Add(-10*time.Minute))
		require.NoError(t, err)

		_, err = f.mfa.Verify(ctx, testSubject, stale)
		require.ErrorIs(t, err, service.ErrInvalidMFACode)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := f.mfa.Verify(ctx, testSubject, "WRONG999")
		require.ErrorIs(t, err, service.ErrInvalidMFACode)
	})

	t.Run("failed attempts are audited", func(t *testing.T) {
		events, err := f.audit.List(ctx, testSubject, 50)
		require.NoError(t, err)

		var failures int
		for _, event := range events {
			if event.EventType == domain.EventMFAVerificationFailed {
				failures++
				require.Equal(t, domain.SeverityWarning, event.Severity)
			}
		}
		require.NotZero(t, failures)
	})
}

func TestVerifyWithoutMFA(t *testing.T) {
	f := newFixture(t)
	_, err := f.mfa.Verify(context.Background(), testSubject, "123456")
	require.ErrorIs(t, err, service.ErrMFANotEnabled)
}

func TestRegenerateBackupCodes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedIdentity(t)
	enrollment := enrollAndConfirm(t, f)

	fresh, err := f.mfa.RegenerateBackupCodes(ctx, testSubject)
	require.NoError(t, err)
	require.Len(t, fresh, service.BackupCodeCount)

	t.Run("old codes are invalidated", func(t *testing.T) {
		_, err := f.mfa.Verify(ctx, testSubject, enrollment.BackupCodes[0])
		require.ErrorIs(t, err, service.ErrInvalidMFACode)
	})

	t.Run("new codes work", func(t *testing.T) {
		result, err := f.mfa.Verify(ctx, testSubject, fresh[0])
		require.NoError(t, err)
		require.True(t, result.Success)
	})

	t.Run("requires enabled mfa", func(t *testing.T) {
		_, err := f.mfa.RegenerateBackupCodes(ctx, "google:nobody")
		require.ErrorIs(t, err, service.ErrMFANotEnabled)
	})
}

func TestDisable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedIdentity(t)
	enrollment := enrollAndConfirm(t, f)

	t.Run("requires valid code", func(t *testing.T) {
		require.ErrorIs(t, f.mfa.Disable(ctx, testSubject, "000000"), service.ErrInvalidMFACode)
	})

	t.Run("disables with totp", func(t *testing.T) {
		require.NoError(t, f.mfa.Disable(ctx, testSubject, totpCode(t, enrollment.Secret)))

		enabled, err := f.mfa.Enabled(ctx, testSubject)
		require.NoError(t, err)
		require.False(t, enabled)

		remaining, err := f.mfa.BackupCodesRemaining(ctx, testSubject)
		require.NoError(t, err)
		require.Zero(t, remaining)
	})
}
