package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wukonglabs/wukong/internal/auth/domain"
	"github.com/wukonglabs/wukong/internal/auth/store"
	"github.com/wukonglabs/wukong/pkg/cryptox"
	"github.com/wukonglabs/wukong/pkg/jwtx"
	"github.com/wukonglabs/wukong/pkg/slogx"
)

// AuthenticationMode decides what happens when a presented code is unknown.
type AuthenticationMode string

const (
	// ModeStrict rejects unknown codes outright. Required in production.
	ModeStrict AuthenticationMode = "strict"

	// ModeDevFallback treats any unknown code as the mock developer
	// identity so the console works without a real login provider. Never
	// allowed in production.
	ModeDevFallback AuthenticationMode = "dev-fallback"
)

// The identity minted by dev-fallback exchanges.
const (
	MockSubjectID   = "mock:dev-user"
	mockDisplayName = "Dev User"
)

var (
	ErrTokenNotFound   = errors.New("access token not found or expired")
	ErrUnknownIdentity = errors.New("identity not found")
)

const (
	DefaultAccessTokenTTL = time.Hour
	DefaultSessionTTL     = 365 * 24 * time.Hour
	DefaultScope          = "openid profile"
)

// Issuer performs the code-for-token exchange and mints the session
// credential and ID assertion JWTs. Session credentials are stateless;
// verifying one touches no store.
type Issuer struct {
	Broker     *Broker
	Grants     store.GrantStore
	Identities store.IdentityStore

	SessionSigner     *jwtx.Signer
	SessionVerifier   *jwtx.Verifier
	AssertionSigner   *jwtx.Signer
	AssertionVerifier *jwtx.Verifier

	Mode           AuthenticationMode
	AccessTokenTTL time.Duration
	SessionTTL     time.Duration
	Scope          string
}

// Exchange redeems an authorization code for an opaque access token plus a
// signed ID assertion. In dev-fallback mode an unknown code is not an error:
// the mock developer identity is upserted and the exchange proceeds as if the
// code had named it.
func (i *Issuer) Exchange(ctx context.Context, rawCode, clientID, redirectURI string) (domain.TokenResponse, error) {
	log := slogx.FromContext(ctx)

	var subjectID string
	code, err := i.Broker.RedeemCode(ctx, rawCode, clientID, redirectURI)
	switch {
	case err == nil:
		subjectID = code.SubjectID
	case errors.Is(err, ErrCodeNotFound) && i.Mode == ModeDevFallback:
		log.Warn("unknown code accepted via dev fallback", "client_id", clientID)
		identity, upsertErr := i.Identities.UpsertIdentity(ctx, domain.Identity{
			ExternalID:  MockSubjectID,
			DisplayName: mockDisplayName,
			LoginMethod: "mock",
		})
		if upsertErr != nil {
			return domain.TokenResponse{}, fmt.Errorf("upsert mock identity: %w", upsertErr)
		}
		subjectID = identity.ExternalID
	default:
		return domain.TokenResponse{}, err
	}

	identity, err := i.Identities.GetIdentityByExternalID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenResponse{}, ErrUnknownIdentity
		}
		return domain.TokenResponse{}, fmt.Errorf("load identity: %w", err)
	}

	rawToken, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.TokenResponse{}, fmt.Errorf("generate access token: %w", err)
	}

	now := time.Now().UTC()
	token := domain.AccessToken{
		TokenHash: cryptox.FingerprintToken(rawToken),
		SubjectID: subjectID,
		ClientID:  clientID,
		IssuedAt:  now,
		ExpiresAt: now.Add(i.AccessTokenTTL),
	}
	if err := i.Grants.PutAccessToken(ctx, token); err != nil {
		return domain.TokenResponse{}, fmt.Errorf("store access token: %w", err)
	}

	assertion, err := i.AssertionSigner.SignIDAssertion(
		subjectID, clientID, identity.DisplayName, identity.Email, i.AccessTokenTTL)
	if err != nil {
		return domain.TokenResponse{}, fmt.Errorf("sign id assertion: %w", err)
	}

	log.Info("token exchange completed", "client_id", clientID, "subject", subjectID)

	return domain.TokenResponse{
		AccessToken: rawToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(i.AccessTokenTTL.Seconds()),
		Scope:       i.Scope,
		IDToken:     assertion,
	}, nil
}

// UserInfo resolves an opaque access token to the profile it grants.
func (i *Issuer) UserInfo(ctx context.Context, rawToken string) (domain.UserInfo, error) {
	token, err := i.Grants.GetAccessToken(ctx,
		cryptox.FingerprintToken(rawToken), time.Now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserInfo{}, ErrTokenNotFound
		}
		return domain.UserInfo{}, fmt.Errorf("load access token: %w", err)
	}

	identity, err := i.Identities.GetIdentityByExternalID(ctx, token.SubjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserInfo{}, ErrUnknownIdentity
		}
		return domain.UserInfo{}, fmt.Errorf("load identity: %w", err)
	}

	return domain.UserInfo{
		ExternalID:  identity.ExternalID,
		ClientID:    token.ClientID,
		Name:        identity.DisplayName,
		Email:       identity.Email,
		LoginMethod: identity.LoginMethod,
		Role:        identity.Role,
	}, nil
}

// MintSession signs a stateless session credential for the subject.
func (i *Issuer) MintSession(ctx context.Context, subjectID, clientID string) (string, error) {
	identity, err := i.Identities.GetIdentityByExternalID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUnknownIdentity
		}
		return "", fmt.Errorf("load identity: %w", err)
	}

	return i.SessionSigner.SignSession(subjectID, clientID, identity.DisplayName, i.SessionTTL)
}

// VerifySession validates a session credential without touching any store.
// Returns nil for anything invalid.
func (i *Issuer) VerifySession(raw string) *jwtx.SessionClaims {
	return i.SessionVerifier.VerifySession(raw)
}

// VerifyIDAssertion validates an ID assertion for the expected client.
func (i *Issuer) VerifyIDAssertion(raw, clientID string) (*jwtx.IDAssertionClaims, error) {
	return i.AssertionVerifier.VerifyIDAssertion(raw, clientID)
}
