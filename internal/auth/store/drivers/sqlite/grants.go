package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/wukonglabs/wukong/internal/auth/domain"
	"github.com/wukonglabs/wukong/internal/auth/store"
)

func (s *Store) PutAuthorizationCode(ctx context.Context, code domain.AuthorizationCode) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO authorization_codes (id, code_hash, client_id, redirect_uri, subject_id, issued_at, expires_at, used_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULL)`,
		code.ID, code.CodeHash, code.ClientID, code.RedirectURI, code.SubjectID,
		toUnix(code.IssuedAt), toUnix(code.ExpiresAt),
	)
	return err
}

// ConsumeAuthorizationCode redeems a code inside a transaction. The
// conditional UPDATE on used_at IS NULL is what guarantees a single winner
// when two exchanges race on the same code.
func (s *Store) ConsumeAuthorizationCode(ctx context.Context, codeHash, clientID, redirectURI string, now time.Time) (domain.AuthorizationCode, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.AuthorizationCode{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var (
		code   domain.AuthorizationCode
		issued int64
		exp    int64
		used   sql.NullInt64
	)
	err = tx.QueryRowContext(ctx, `
		SELECT id, code_hash, client_id, redirect_uri, subject_id, issued_at, expires_at, used_at
		FROM authorization_codes WHERE code_hash = ?`, codeHash,
	).Scan(&code.ID, &code.CodeHash, &code.ClientID, &code.RedirectURI, &code.SubjectID, &issued, &exp, &used)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.AuthorizationCode{}, store.ErrNotFound
	}
	if err != nil {
		return domain.AuthorizationCode{}, err
	}
	code.IssuedAt = fromUnix(issued)
	code.ExpiresAt = fromUnix(exp)
	code.UsedAt = fromUnixPtr(used)

	switch {
	case code.UsedAt != nil:
		return domain.AuthorizationCode{}, store.ErrCodeAlreadyUsed
	case now.After(code.ExpiresAt):
		return domain.AuthorizationCode{}, store.ErrCodeExpired
	case code.ClientID != clientID:
		return domain.AuthorizationCode{}, store.ErrClientMismatch
	case code.RedirectURI != redirectURI:
		return domain.AuthorizationCode{}, store.ErrRedirectMismatch
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE authorization_codes SET used_at = ? WHERE id = ? AND used_at IS NULL`,
		toUnix(now), code.ID,
	)
	if err != nil {
		return domain.AuthorizationCode{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.AuthorizationCode{}, err
	}
	if affected == 0 {
		// Another exchange won between our read and write.
		return domain.AuthorizationCode{}, store.ErrCodeAlreadyUsed
	}

	if err := tx.Commit(); err != nil {
		return domain.AuthorizationCode{}, err
	}

	usedAt := now.UTC()
	code.UsedAt = &usedAt
	return code, nil
}

func (s *Store) PutAccessToken(ctx context.Context, token domain.AccessToken) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO access_tokens (token_hash, subject_id, client_id, issued_at, expires_at)
		VALUES (?, ?, ?, ?, ?)`,
		token.TokenHash, token.SubjectID, token.ClientID, toUnix(token.IssuedAt), toUnix(token.ExpiresAt),
	)
	return err
}

func (s *Store) GetAccessToken(ctx context.Context, tokenHash string, now time.Time) (domain.AccessToken, error) {
	var (
		token  domain.AccessToken
		issued int64
		exp    int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT token_hash, subject_id, client_id, issued_at, expires_at
		FROM access_tokens WHERE token_hash = ? AND expires_at > ?`,
		tokenHash, toUnix(now),
	).Scan(&token.TokenHash, &token.SubjectID, &token.ClientID, &issued, &exp)
	if err != nil {
		return domain.AccessToken{}, mapNotFound(err)
	}
	token.IssuedAt = fromUnix(issued)
	token.ExpiresAt = fromUnix(exp)
	return token, nil
}

func (s *Store) DeleteExpiredGrants(ctx context.Context, now time.Time) (int64, error) {
	var total int64

	res, err := s.db.ExecContext(ctx, `DELETE FROM authorization_codes WHERE expires_at <= ?`, toUnix(now))
	if err != nil {
		return total, err
	}
	n, _ := res.RowsAffected()
	total += n

	res, err = s.db.ExecContext(ctx, `DELETE FROM access_tokens WHERE expires_at <= ?`, toUnix(now))
	if err != nil {
		return total, err
	}
	n, _ = res.RowsAffected()
	total += n

	return total, nil
}
