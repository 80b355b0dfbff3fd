package sqlite

import (
	"context"
	"time"

	"github.com/wukonglabs/wukong/internal/auth/domain"
	"github.com/wukonglabs/wukong/pkg/idx"
)

func (s *Store) UpsertIdentity(ctx context.Context, identity domain.Identity) (domain.Identity, error) {
	now := time.Now().UTC()
	if identity.ID == "" {
		identity.ID = idx.New()
	}
	if identity.Role == "" {
		identity.Role = "user"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO identities (id, external_id, display_name, email, login_method, role, created_at, updated_at, last_signed_in)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (external_id) DO UPDATE SET
			display_name   = excluded.display_name,
			email          = excluded.email,
			login_method   = excluded.login_method,
			updated_at     = excluded.updated_at,
			last_signed_in = excluded.last_signed_in`,
		identity.ID, identity.ExternalID, identity.DisplayName, identity.Email,
		identity.LoginMethod, identity.Role, toUnix(now), toUnix(now), toUnix(now),
	)
	if err != nil {
		return domain.Identity{}, err
	}

	return s.GetIdentityByExternalID(ctx, identity.ExternalID)
}

func (s *Store) GetIdentityByExternalID(ctx context.Context, externalID string) (domain.Identity, error) {
	var (
		identity domain.Identity
		created  int64
		updated  int64
		signedIn int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, external_id, display_name, email, login_method, role, created_at, updated_at, last_signed_in
		FROM identities WHERE external_id = ?`, externalID,
	).Scan(&identity.ID, &identity.ExternalID, &identity.DisplayName, &identity.Email,
		&identity.LoginMethod, &identity.Role, &created, &updated, &signedIn)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	identity.CreatedAt = fromUnix(created)
	identity.UpdatedAt = fromUnix(updated)
	identity.LastSignedIn = fromUnix(signedIn)
	return identity, nil
}
