package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wukonglabs/wukong/internal/auth/domain"
	"github.com/wukonglabs/wukong/internal/auth/service"
)

var chromeMeta = domain.DeviceMeta{
	UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 Chrome/126.0 Safari/537.36",
	IPAddress: "203.0.113.1",
}

func TestCreateAndLiveness(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedIdentity(t)

	raw, session, err := f.sessions.Create(ctx, testSubject, chromeMeta)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	require.Equal(t, "Chrome on macOS", session.DeviceName)

	live, ok := f.sessions.IsLive(ctx, raw)
	require.True(t, ok)
	require.Equal(t, session.ID, live.ID)

	t.Run("unknown token is not live", func(t *testing.T) {
		_, ok := f.sessions.IsLive(ctx, "never-issued")
		require.False(t, ok)
	})

	t.Run("revoked session is not live", func(t *testing.T) {
		require.NoError(t, f.sessions.Revoke(ctx, testSubject, session.ID, chromeMeta))

		_, ok := f.sessions.IsLive(ctx, raw)
		require.False(t, ok)
	})

	t.Run("double revoke reports not found", func(t *testing.T) {
		err := f.sessions.Revoke(ctx, testSubject, session.ID, chromeMeta)
		require.ErrorIs(t, err, service.ErrSessionNotFound)
	})
}

func TestRevokeAllSparesCaller(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedIdentity(t)

	rawKeep, keep, err := f.sessions.Create(ctx, testSubject, chromeMeta)
	require.NoError(t, err)
	rawOther, _, err := f.sessions.Create(ctx, testSubject, domain.DeviceMeta{DeviceName: "Firefox on Linux"})
	require.NoError(t, err)
	rawThird, _, err := f.sessions.Create(ctx, testSubject, domain.DeviceMeta{DeviceName: "Safari on iOS"})
	require.NoError(t, err)

	revoked, err := f.sessions.RevokeAll(ctx, testSubject, keep.ID, chromeMeta)
	require.NoError(t, err)
	require.EqualValues(t, 2, revoked)

	_, ok := f.sessions.IsLive(ctx, rawKeep)
	require.True(t, ok)
	_, ok = f.sessions.IsLive(ctx, rawOther)
	require.False(t, ok)
	_, ok = f.sessions.IsLive(ctx, rawThird)
	require.False(t, ok)

	t.Run("revoke all is audited as warning", func(t *testing.T) {
		events, err := f.audit.List(ctx, testSubject, 50)
		require.NoError(t, err)

		var found bool
		for _, event := range events {
			if event.EventType == domain.EventAllSessionsRevoked {
				found = true
				require.Equal(t, domain.SeverityWarning, event.Severity)
			}
		}
		require.True(t, found)
	})
}

func TestListSessions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedIdentity(t)

	_, a, err := f.sessions.Create(ctx, testSubject, chromeMeta)
	require.NoError(t, err)
	_, b, err := f.sessions.Create(ctx, testSubject, domain.DeviceMeta{DeviceName: "Firefox on Linux"})
	require.NoError(t, err)

	sessions, err := f.sessions.List(ctx, testSubject)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	require.NoError(t, f.sessions.Revoke(ctx, testSubject, a.ID, chromeMeta))

	sessions, err = f.sessions.List(ctx, testSubject)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, b.ID, sessions[0].ID)
}

func TestRevokeByToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedIdentity(t)

	raw, _, err := f.sessions.Create(ctx, testSubject, chromeMeta)
	require.NoError(t, err)

	f.sessions.RevokeByToken(ctx, raw, chromeMeta)

	_, ok := f.sessions.IsLive(ctx, raw)
	require.False(t, ok)

	// Unknown tokens are a quiet no-op.
	f.sessions.RevokeByToken(ctx, "never-issued", chromeMeta)
}
