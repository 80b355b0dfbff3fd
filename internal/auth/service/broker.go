package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wukonglabs/wukong/internal/auth/domain"
	"github.com/wukonglabs/wukong/internal/auth/store"
	"github.com/wukonglabs/wukong/pkg/cryptox"
	"github.com/wukonglabs/wukong/pkg/idx"
	"github.com/wukonglabs/wukong/pkg/slogx"
)

// Code redemption failures. The HTTP layer collapses all of these into one
// opaque invalid_grant response; the distinction exists for logs and tests.
var (
	ErrCodeNotFound     = errors.New("authorization code not found")
	ErrCodeAlreadyUsed  = errors.New("authorization code already used")
	ErrCodeExpired      = errors.New("authorization code expired")
	ErrClientMismatch   = errors.New("client does not match authorization code")
	ErrRedirectMismatch = errors.New("redirect uri does not match authorization code")
)

const DefaultCodeTTL = 10 * time.Minute

// Broker mints and redeems single-use sign-in codes. Codes are opaque random
// strings; only fingerprints reach the store, and redemption is atomic with
// exactly one winner.
type Broker struct {
	Grants  store.GrantStore
	CodeTTL time.Duration
}

func NewBroker(grants store.GrantStore) *Broker {
	return &Broker{
		Grants:  grants,
		CodeTTL: DefaultCodeTTL,
	}
}

// IssueCode mints a fresh code bound to the subject, client and redirect
// target. The raw code is returned exactly once and never stored.
func (b *Broker) IssueCode(ctx context.Context, subjectID, clientID, redirectURI string) (string, error) {
	log := slogx.FromContext(ctx)

	raw, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	now := time.Now().UTC()
	code := domain.AuthorizationCode{
		ID:          idx.New(),
		CodeHash:    cryptox.FingerprintToken(raw),
		ClientID:    clientID,
		RedirectURI: redirectURI,
		SubjectID:   subjectID,
		IssuedAt:    now,
		ExpiresAt:   now.Add(b.CodeTTL),
	}
	if err := b.Grants.PutAuthorizationCode(ctx, code); err != nil {
		return "", fmt.Errorf("store code: %w", err)
	}

	log.Info("authorization code issued",
		"code_id", code.ID,
		"client_id", clientID,
		"subject", subjectID,
	)
	return raw, nil
}

// RedeemCode atomically consumes a code. Validation order is existence,
// reuse, expiry, client, redirect; concurrent redemptions of the same code
// yield one winner and ErrCodeAlreadyUsed for the rest.
func (b *Broker) RedeemCode(ctx context.Context, rawCode, clientID, redirectURI string) (domain.AuthorizationCode, error) {
	log := slogx.FromContext(ctx)

	code, err := b.Grants.ConsumeAuthorizationCode(ctx,
		cryptox.FingerprintToken(rawCode), clientID, redirectURI, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domain.AuthorizationCode{}, ErrCodeNotFound
		case errors.Is(err, store.ErrCodeAlreadyUsed):
			log.Warn("authorization code replayed", "client_id", clientID)
			return domain.AuthorizationCode{}, ErrCodeAlreadyUsed
		case errors.Is(err, store.ErrCodeExpired):
			return domain.AuthorizationCode{}, ErrCodeExpired
		case errors.Is(err, store.ErrClientMismatch):
			log.Warn("authorization code client mismatch", "client_id", clientID)
			return domain.AuthorizationCode{}, ErrClientMismatch
		case errors.Is(err, store.ErrRedirectMismatch):
			log.Warn("authorization code redirect mismatch", "client_id", clientID)
			return domain.AuthorizationCode{}, ErrRedirectMismatch
		default:
			return domain.AuthorizationCode{}, fmt.Errorf("consume code: %w", err)
		}
	}

	log.Info("authorization code redeemed",
		"code_id", code.ID,
		"client_id", clientID,
		"subject", code.SubjectID,
	)
	return code, nil
}
