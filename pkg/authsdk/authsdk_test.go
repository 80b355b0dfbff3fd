package authsdk_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"

	httpapi "github.com/wukonglabs/wukong/internal/auth/http"
	"github.com/wukonglabs/wukong/internal/auth/service"
	"github.com/wukonglabs/wukong/internal/auth/store/drivers/sqlite"
	"github.com/wukonglabs/wukong/pkg/authsdk"
	"github.com/wukonglabs/wukong/pkg/cryptox"
	"github.com/wukonglabs/wukong/pkg/jwtx"
)

const testClientID = "console"

func newTestServer(t *testing.T) *authsdk.SDKClient {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	secret := []byte("sdk-test-secret")
	sessionKey, err := cryptox.DeriveKey(secret, "session-credential", 32)
	require.NoError(t, err)
	assertionKey, err := cryptox.DeriveKey(secret, "id-assertion", 32)
	require.NoError(t, err)

	sessionSigner, err := jwtx.NewSigner(sessionKey, "wukong-auth")
	require.NoError(t, err)
	sessionVerifier, err := jwtx.NewVerifier(sessionKey, "wukong-auth")
	require.NoError(t, err)
	assertionSigner, err := jwtx.NewSigner(assertionKey, "wukong-auth")
	require.NoError(t, err)
	assertionVerifier, err := jwtx.NewVerifier(assertionKey, "wukong-auth")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	audit := service.NewAudit(st)
	broker := service.NewBroker(st)

	r := httpapi.NewRouter("test", st, st, logger)
	r.Broker = broker
	r.Issuer = &service.Issuer{
		Broker:            broker,
		Grants:            st,
		Identities:        st,
		SessionSigner:     sessionSigner,
		SessionVerifier:   sessionVerifier,
		AssertionSigner:   assertionSigner,
		AssertionVerifier: assertionVerifier,
		Mode:              service.ModeStrict,
		AccessTokenTTL:    service.DefaultAccessTokenTTL,
		SessionTTL:        service.DefaultSessionTTL,
		Scope:             service.DefaultScope,
	}
	r.MFA = service.NewMFA(st, audit, "wukong-auth")
	r.Sessions = service.NewSessions(st, audit)
	r.Audit = audit
	r.ClientID = testClientID
	r.Cookies = httpapi.CookieConfig{
		Name:       "wukong_session",
		SessionTTL: service.DefaultSessionTTL,
		DeviceTTL:  service.DefaultDeviceSessionTTL,
	}
	r.DefaultRedirect = "/"
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return authsdk.NewSDKClient(srv.URL)
}

func TestProviderLoginAndExchange(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	const redirect = "https://console.example.com/callback"

	code, err := client.Authenticate(ctx, authsdk.AuthenticateRequest{
		Provider:       "google",
		ProviderUserID: "sdk-user-1",
		Name:           "Grace Hopper",
		ClientID:       testClientID,
		RedirectURI:    redirect,
	})
	require.NoError(t, err)
	require.NotEmpty(t, code.Code)
	require.Equal(t, redirect, code.RedirectURL)

	tokens, err := client.ExchangeCode(ctx, code.Code, testClientID, redirect)
	require.NoError(t, err)
	require.Equal(t, "Bearer", tokens.TokenType)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.IDToken)

	info, err := client.UserInfo(ctx, tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "google:sdk-user-1", info.OpenID)
	require.Equal(t, "Grace Hopper", info.Name)

	t.Run("replayed code is rejected", func(t *testing.T) {
		_, err := client.ExchangeCode(ctx, code.Code, testClientID, redirect)
		var apiErr *authsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, authsdk.ErrorCodeInvalidGrant, apiErr.Code)
	})
}

func TestEmailSessionLifecycle(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	session, err := client.AuthenticateWithEmail(ctx, "grace@example.com", "Grace Hopper", testClientID)
	require.NoError(t, err)
	require.NotEmpty(t, session.Cookies())

	info, err := session.UserInfo(ctx)
	require.NoError(t, err)
	require.Equal(t, "email:grace@example.com", info.OpenID)

	list, err := session.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, list.Sessions, 1)
	require.Equal(t, list.Sessions[0].ID, list.CurrentSessionID)

	events, err := session.AuditLog(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, events)

	require.NoError(t, session.Logout(ctx))

	_, err = session.UserInfo(ctx)
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.StatusCode)
}

func TestMFAGateOnLogin(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	session, err := client.AuthenticateWithEmail(ctx, "grace@example.com", "Grace Hopper", testClientID)
	require.NoError(t, err)

	enrollment, err := session.EnrollMFA(ctx)
	require.NoError(t, err)
	require.Len(t, enrollment.BackupCodes, 10)

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, session.ConfirmMFA(ctx, code))

	status, err := session.MFAStatus(ctx)
	require.NoError(t, err)
	require.True(t, status.Enabled)
	require.Equal(t, 10, status.BackupCodesRemaining)

	_, err = client.AuthenticateWithEmail(ctx, "grace@example.com", "Grace Hopper", testClientID)
	require.True(t, authsdk.IsMFARequired(err))

	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	_, err = client.AuthenticateWithEmail(ctx, "grace@example.com", "Grace Hopper", testClientID, code)
	require.NoError(t, err)
}
