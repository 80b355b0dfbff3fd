package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/wukonglabs/wukong/internal/auth/domain"
	"github.com/wukonglabs/wukong/internal/auth/store"
)

func newTestGrantStore(t *testing.T) *GrantStore {
	t.Helper()

	mr := miniredis.RunT(t)
	g, err := NewGrantStore(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })
	return g
}

func seedCode(t *testing.T, g *GrantStore, codeHash string, now time.Time) domain.AuthorizationCode {
	t.Helper()

	code := domain.AuthorizationCode{
		ID:          "01TESTCODE",
		CodeHash:    codeHash,
		ClientID:    "console",
		RedirectURI: "https://console.example.com/callback",
		SubjectID:   "google:user-1",
		IssuedAt:    now,
		ExpiresAt:   now.Add(10 * time.Minute),
	}
	require.NoError(t, g.PutAuthorizationCode(context.Background(), code))
	return code
}

func TestConsumeAuthorizationCode(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("redeems once", func(t *testing.T) {
		g := newTestGrantStore(t)
		seeded := seedCode(t, g, "hash-1", now)

		code, err := g.ConsumeAuthorizationCode(ctx, "hash-1", seeded.ClientID, seeded.RedirectURI, now)
		require.NoError(t, err)
		require.Equal(t, seeded.SubjectID, code.SubjectID)

		_, err = g.ConsumeAuthorizationCode(ctx, "hash-1", seeded.ClientID, seeded.RedirectURI, now)
		require.ErrorIs(t, err, store.ErrCodeAlreadyUsed)
	})

	t.Run("unknown code", func(t *testing.T) {
		g := newTestGrantStore(t)

		_, err := g.ConsumeAuthorizationCode(ctx, "missing", "console", "https://x", now)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("expired code", func(t *testing.T) {
		g := newTestGrantStore(t)
		seeded := seedCode(t, g, "hash-2", now)

		_, err := g.ConsumeAuthorizationCode(ctx, "hash-2", seeded.ClientID, seeded.RedirectURI, now.Add(11*time.Minute))
		require.ErrorIs(t, err, store.ErrCodeExpired)
	})

	t.Run("client mismatch", func(t *testing.T) {
		g := newTestGrantStore(t)
		seeded := seedCode(t, g, "hash-3", now)

		_, err := g.ConsumeAuthorizationCode(ctx, "hash-3", "other-client", seeded.RedirectURI, now)
		require.ErrorIs(t, err, store.ErrClientMismatch)
	})

	t.Run("redirect mismatch", func(t *testing.T) {
		g := newTestGrantStore(t)
		seeded := seedCode(t, g, "hash-4", now)

		_, err := g.ConsumeAuthorizationCode(ctx, "hash-4", seeded.ClientID, "https://evil.example.com", now)
		require.ErrorIs(t, err, store.ErrRedirectMismatch)
	})

	t.Run("single winner under contention", func(t *testing.T) {
		g := newTestGrantStore(t)
		seeded := seedCode(t, g, "hash-5", now)

		const attempts = 16
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		for range attempts {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := g.ConsumeAuthorizationCode(ctx, "hash-5", seeded.ClientID, seeded.RedirectURI, now)
				if err == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				} else {
					require.ErrorIs(t, err, store.ErrCodeAlreadyUsed)
				}
			}()
		}
		wg.Wait()
		require.Equal(t, 1, wins)
	})
}

func TestAccessTokens(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)
	g := newTestGrantStore(t)

	token := domain.AccessToken{
		TokenHash: "token-hash-1",
		SubjectID: "google:user-1",
		ClientID:  "console",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, g.PutAccessToken(ctx, token))

	got, err := g.GetAccessToken(ctx, "token-hash-1", now)
	require.NoError(t, err)
	require.Equal(t, token.SubjectID, got.SubjectID)
	require.Equal(t, token.ClientID, got.ClientID)

	_, err = g.GetAccessToken(ctx, "token-hash-1", now.Add(2*time.Hour))
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = g.GetAccessToken(ctx, "unknown", now)
	require.ErrorIs(t, err, store.ErrNotFound)
}
