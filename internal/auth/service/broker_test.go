package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wukonglabs/wukong/internal/auth/domain"
	"github.com/wukonglabs/wukong/internal/auth/service"
)

func TestIssueAndRedeemCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedIdentity(t)

	raw, err := f.broker.IssueCode(ctx, testSubject, testClientID, testRedirect)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	code, err := f.broker.RedeemCode(ctx, raw, testClientID, testRedirect)
	require.NoError(t, err)
	require.Equal(t, testSubject, code.SubjectID)

	_, err = f.broker.RedeemCode(ctx, raw, testClientID, testRedirect)
	require.ErrorIs(t, err, service.ErrCodeAlreadyUsed)
}

func TestRedeemCodeRejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedIdentity(t)

	raw, err := f.broker.IssueCode(ctx, testSubject, testClientID, testRedirect)
	require.NoError(t, err)

	t.Run("unknown code", func(t *testing.T) {
		_, err := f.broker.RedeemCode(ctx, "never-issued", testClientID, testRedirect)
		require.ErrorIs(t, err, service.ErrCodeNotFound)
	})

	t.Run("client mismatch", func(t *testing.T) {
		_, err := f.broker.RedeemCode(ctx, raw, "other-client", testRedirect)
		require.ErrorIs(t, err, service.ErrClientMismatch)
	})

	t.Run("redirect mismatch", func(t *testing.T) {
		_, err := f.broker.RedeemCode(ctx, raw, testClientID, "https://evil.example.com")
		require.ErrorIs(t, err, service.ErrRedirectMismatch)
	})

	t.Run("mismatches do not consume the code", func(t *testing.T) {
		_, err := f.broker.RedeemCode(ctx, raw, testClientID, testRedirect)
		require.NoError(t, err)
	})
}

func TestHousekeeperSweep(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedIdentity(t)

	// Issue a code and a device session that expire immediately.
	f.broker.CodeTTL = -1
	raw, err := f.broker.IssueCode(ctx, testSubject, testClientID, testRedirect)
	require.NoError(t, err)

	f.sessions.TTL = -1
	_, session, err := f.sessions.Create(ctx, testSubject, domain.DeviceMeta{})
	require.NoError(t, err)

	hk := service.NewHousekeeper(f.store, f.store)
	hk.Sweep(ctx)

	_, err = f.broker.RedeemCode(ctx, raw, testClientID, testRedirect)
	require.ErrorIs(t, err, service.ErrCodeNotFound)

	// The session row survives the sweep as sign-in history; only its
	// active flag is cleared.
	swept, err := f.store.GetDeviceSession(ctx, testSubject, session.ID)
	require.NoError(t, err)
	require.False(t, swept.IsActive)
}
