package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wukonglabs/wukong/internal/auth/service"
)

func TestExchange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedIdentity(t)

	raw, err := f.broker.IssueCode(ctx, testSubject, testClientID, testRedirect)
	require.NoError(t, err)

	resp, err := f.issuer.Exchange(ctx, raw, testClientID, testRedirect)
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "Bearer", resp.TokenType)
	require.Equal(t, 3600, resp.ExpiresIn)
	require.Equal(t, service.DefaultScope, resp.Scope)

	claims, err := f.issuer.VerifyIDAssertion(resp.IDToken, testClientID)
	require.NoError(t, err)
	require.Equal(t, testSubject, claims.Subject)
	require.Equal(t, testSubject, claims.OpenID)
	require.Equal(t, "Ada Lovelace", claims.Name)
	require.Equal(t, "ada@example.com", claims.Email)

	t.Run("replay fails", func(t *testing.T) {
		_, err := f.issuer.Exchange(ctx, raw, testClientID, testRedirect)
		require.ErrorIs(t, err, service.ErrCodeAlreadyUsed)
	})

	t.Run("access token resolves userinfo", func(t *testing.T) {
		info, err := f.issuer.UserInfo(ctx, resp.AccessToken)
		require.NoError(t, err)
		require.Equal(t, testSubject, info.ExternalID)
		require.Equal(t, testClientID, info.ClientID)
		require.Equal(t, "Ada Lovelace", info.Name)
		require.Equal(t, "google", info.LoginMethod)
	})

	t.Run("unknown access token rejected", func(t *testing.T) {
		_, err := f.issuer.UserInfo(ctx, "never-issued")
		require.ErrorIs(t, err, service.ErrTokenNotFound)
	})
}

func TestExchangeStrictModeRejectsUnknownCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.issuer.Exchange(ctx, "unknown-code", testClientID, testRedirect)
	require.ErrorIs(t, err, service.ErrCodeNotFound)
}

func TestExchangeDevFallback(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.issuer.Mode = service.ModeDevFallback

	resp, err := f.issuer.Exchange(ctx, "unknown-code", testClientID, testRedirect)
	require.NoError(t, err)

	info, err := f.issuer.UserInfo(ctx, resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, service.MockSubjectID, info.ExternalID)
	require.Equal(t, "mock", info.LoginMethod)

	t.Run("replayed real code is still rejected", func(t *testing.T) {
		f.seedIdentity(t)
		raw, err := f.broker.IssueCode(ctx, testSubject, testClientID, testRedirect)
		require.NoError(t, err)

		_, err = f.issuer.Exchange(ctx, raw, testClientID, testRedirect)
		require.NoError(t, err)

		_, err = f.issuer.Exchange(ctx, raw, testClientID, testRedirect)
		require.ErrorIs(t, err, service.ErrCodeAlreadyUsed)
	})
}

func TestMintAndVerifySession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedIdentity(t)

	raw, err := f.issuer.MintSession(ctx, testSubject, testClientID)
	require.NoError(t, err)

	claims := f.issuer.VerifySession(raw)
	require.NotNil(t, claims)
	require.Equal(t, testSubject, claims.Subject)
	require.Equal(t, "Ada Lovelace", claims.Name)

	require.Nil(t, f.issuer.VerifySession("tampered"+raw))

	t.Run("unknown subject", func(t *testing.T) {
		_, err := f.issuer.MintSession(ctx, "google:nobody", testClientID)
		require.ErrorIs(t, err, service.ErrUnknownIdentity)
	})
}
