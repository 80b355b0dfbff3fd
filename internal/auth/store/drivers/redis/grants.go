// Package redis is an optional GrantStore driver for multi-instance
// deployments, where every instance must observe the same single-use codes
// and opaque access tokens. Durable tables stay in SQLite; only the
// short-lived grant material moves here.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wukonglabs/wukong/internal/auth/domain"
	"github.com/wukonglabs/wukong/internal/auth/store"
)

const (
	codeKeyPrefix  = "auth:code:"
	tokenKeyPrefix = "auth:token:"
)

// consumeScript redeems an authorization code atomically. HSETNX on used_at
// is the single-winner gate; everything before it is validation in the
// required order. Keys expire naturally, so a vanished code reads as
// not_found rather than expired, which callers must not distinguish anyway.
var consumeScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return "not_found"
end
local used = redis.call("HGET", KEYS[1], "used_at")
if used and used ~= "" then
	return "already_used"
end
local expires = tonumber(redis.call("HGET", KEYS[1], "expires_at"))
if expires and tonumber(ARGV[1]) > expires then
	return "expired"
end
if redis.call("HGET", KEYS[1], "client_id") ~= ARGV[2] then
	return "client_mismatch"
end
if redis.call("HGET", KEYS[1], "redirect_uri") ~= ARGV[3] then
	return "redirect_mismatch"
end
if redis.call("HSETNX", KEYS[1], "used_at", ARGV[1]) == 0 then
	return "already_used"
end
return redis.call("HGETALL", KEYS[1])
`)

type GrantStore struct {
	rdb *redis.Client
}

func NewGrantStore(addr, password string, db int) (*GrantStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &GrantStore{rdb: rdb}, nil
}

func (g *GrantStore) Close() error { return g.rdb.Close() }

func (g *GrantStore) PutAuthorizationCode(ctx context.Context, code domain.AuthorizationCode) error {
	key := codeKeyPrefix + code.CodeHash
	fields := map[string]any{
		"id":           code.ID,
		"client_id":    code.ClientID,
		"redirect_uri": code.RedirectURI,
		"subject_id":   code.SubjectID,
		"issued_at":    code.IssuedAt.UTC().Unix(),
		"expires_at":   code.ExpiresAt.UTC().Unix(),
	}

	pipe := g.rdb.TxPipeline()
	pipe.HSet(ctx, key, fields)
	// Linger past logical expiry so a late redemption still reads as
	// expired or already-used instead of vanishing mid-flight.
	pipe.ExpireAt(ctx, key, code.ExpiresAt.Add(time.Minute))
	_, err := pipe.Exec(ctx)
	return err
}

func (g *GrantStore) ConsumeAuthorizationCode(ctx context.Context, codeHash, clientID, redirectURI string, now time.Time) (domain.AuthorizationCode, error) {
	res, err := consumeScript.Run(ctx, g.rdb,
		[]string{codeKeyPrefix + codeHash},
		now.UTC().Unix(), clientID, redirectURI,
	).Result()
	if err != nil {
		return domain.AuthorizationCode{}, err
	}

	switch v := res.(type) {
	case string:
		switch v {
		case "not_found":
			return domain.AuthorizationCode{}, store.ErrNotFound
		case "already_used":
			return domain.AuthorizationCode{}, store.ErrCodeAlreadyUsed
		case "expired":
			return domain.AuthorizationCode{}, store.ErrCodeExpired
		case "client_mismatch":
			return domain.AuthorizationCode{}, store.ErrClientMismatch
		case "redirect_mismatch":
			return domain.AuthorizationCode{}, store.ErrRedirectMismatch
		default:
			return domain.AuthorizationCode{}, fmt.Errorf("unexpected consume result %q", v)
		}
	case []any:
		return parseCodeReply(codeHash, v)
	default:
		return domain.AuthorizationCode{}, errors.New("unexpected consume reply type")
	}
}

func parseCodeReply(codeHash string, reply []any) (domain.AuthorizationCode, error) {
	fields := make(map[string]string, len(reply)/2)
	for i := 0; i+1 < len(reply); i += 2 {
		k, _ := reply[i].(string)
		val, _ := reply[i+1].(string)
		fields[k] = val
	}

	code := domain.AuthorizationCode{
		ID:          fields["id"],
		CodeHash:    codeHash,
		ClientID:    fields["client_id"],
		RedirectURI: fields["redirect_uri"],
		SubjectID:   fields["subject_id"],
	}
	if v, err := strconv.ParseInt(fields["issued_at"], 10, 64); err == nil {
		code.IssuedAt = time.Unix(v, 0).UTC()
	}
	if v, err := strconv.ParseInt(fields["expires_at"], 10, 64); err == nil {
		code.ExpiresAt = time.Unix(v, 0).UTC()
	}
	if v, err := strconv.ParseInt(fields["used_at"], 10, 64); err == nil {
		usedAt := time.Unix(v, 0).UTC()
		code.UsedAt = &usedAt
	}
	return code, nil
}

func (g *GrantStore) PutAccessToken(ctx context.Context, token domain.AccessToken) error {
	key := tokenKeyPrefix + token.TokenHash
	fields := map[string]any{
		"subject_id": token.SubjectID,
		"client_id":  token.ClientID,
		"issued_at":  token.IssuedAt.UTC().Unix(),
		"expires_at": token.ExpiresAt.UTC().Unix(),
	}

	pipe := g.rdb.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.ExpireAt(ctx, key, token.ExpiresAt)
	_, err := pipe.Exec(ctx)
	return err
}

func (g *GrantStore) GetAccessToken(ctx context.Context, tokenHash string, now time.Time) (domain.AccessToken, error) {
	fields, err := g.rdb.HGetAll(ctx, tokenKeyPrefix+tokenHash).Result()
	if err != nil {
		return domain.AccessToken{}, err
	}
	if len(fields) == 0 {
		return domain.AccessToken{}, store.ErrNotFound
	}

	token := domain.AccessToken{
		TokenHash: tokenHash,
		SubjectID: fields["subject_id"],
		ClientID:  fields["client_id"],
	}
	if v, err := strconv.ParseInt(fields["issued_at"], 10, 64); err == nil {
		token.IssuedAt = time.Unix(v, 0).UTC()
	}
	if v, err := strconv.ParseInt(fields["expires_at"], 10, 64); err == nil {
		token.ExpiresAt = time.Unix(v, 0).UTC()
	}
	if !now.Before(token.ExpiresAt) {
		return domain.AccessToken{}, store.ErrNotFound
	}
	return token, nil
}

// DeleteExpiredGrants is a no-op; Redis expires grant keys natively.
func (g *GrantStore) DeleteExpiredGrants(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
