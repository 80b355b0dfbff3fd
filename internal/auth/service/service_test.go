package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wukonglabs/wukong/internal/auth/domain"
	"github.com/wukonglabs/wukong/internal/auth/service"
	"github.com/wukonglabs/wukong/internal/auth/store/drivers/sqlite"
	"github.com/wukonglabs/wukong/pkg/cryptox"
	"github.com/wukonglabs/wukong/pkg/jwtx"
)

const (
	testIssuer   = "wukong-auth"
	testClientID = "console"
	testRedirect = "https://console.example.com/callback"
	testSubject  = "google:user-1"
)

type fixture struct {
	store    *sqlite.Store
	broker   *service.Broker
	issuer   *service.Issuer
	mfa      *service.MFA
	sessions *service.Sessions
	audit    *service.Audit
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	secret := []byte("test-deployment-secret")
	sessionKey, err := cryptox.DeriveKey(secret, "session-credential", 32)
	require.NoError(t, err)
	assertionKey, err := cryptox.DeriveKey(secret, "id-assertion", 32)
	require.NoError(t, err)

	sessionSigner, err := jwtx.NewSigner(sessionKey, testIssuer)
	require.NoError(t, err)
	sessionVerifier, err := jwtx.NewVerifier(sessionKey, testIssuer)
	require.NoError(t, err)
	assertionSigner, err := jwtx.NewSigner(assertionKey, testIssuer)
	require.NoError(t, err)
	assertionVerifier, err := jwtx.NewVerifier(assertionKey, testIssuer)
	require.NoError(t, err)

	audit := service.NewAudit(st)
	broker := service.NewBroker(st)
	issuer := &service.Issuer{
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

	return &fixture{
		store:    st,
		broker:   broker,
		issuer:   issuer,
		mfa:      service.NewMFA(st, audit, testIssuer),
		sessions: service.NewSessions(st, audit),
		audit:    audit,
	}
}

func (f *fixture) seedIdentity(t *testing.T) domain.Identity {
	t.Helper()

	identity, err := f.store.UpsertIdentity(context.Background(), domain.Identity{
		ExternalID:  testSubject,
		DisplayName: "Ada Lovelace",
		Email:       "ada@example.com",
		LoginMethod: "google",
	})
	require.NoError(t, err)
	return identity
}
