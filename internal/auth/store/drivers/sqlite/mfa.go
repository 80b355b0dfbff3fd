package sqlite

import (
	"context"
	"time"

	"github.com/wukonglabs/wukong/internal/auth/domain"
	"github.com/wukonglabs/wukong/internal/auth/store"
)

func (s *Store) GetMfaSettings(ctx context.Context, subjectID string) (domain.MfaSettings, error) {
	var (
		settings domain.MfaSettings
		created  int64
		updated  int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT subject_id, totp_secret, totp_enabled, backup_codes_generated, created_at, updated_at
		FROM mfa_settings WHERE subject_id = ?`, subjectID,
	).Scan(&settings.SubjectID, &settings.TOTPSecret, &settings.TOTPEnabled,
		&settings.BackupCodesGenerated, &created, &updated)
	if err != nil {
		return domain.MfaSettings{}, mapNotFound(err)
	}
	settings.CreatedAt = fromUnix(created)
	settings.UpdatedAt = fromUnix(updated)
	return settings, nil
}

func (s *Store) SaveMfaSettings(ctx context.Context, settings domain.MfaSettings) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mfa_settings (subject_id, totp_secret, totp_enabled, backup_codes_generated, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (subject_id) DO UPDATE SET
			totp_secret            = excluded.totp_secret,
			totp_enabled           = excluded.totp_enabled,
			backup_codes_generated = excluded.backup_codes_generated,
			updated_at             = excluded.updated_at`,
		settings.SubjectID, settings.TOTPSecret, settings.TOTPEnabled,
		settings.BackupCodesGenerated, toUnix(now), toUnix(now),
	)
	return err
}

func (s *Store) ReplaceBackupCodes(ctx context.Context, subjectID string, codeHashes []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM mfa_backup_codes WHERE subject_id = ?`, subjectID); err != nil {
		return err
	}

	now := toUnix(time.Now())
	for _, hash := range codeHashes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO mfa_backup_codes (subject_id, code_hash, created_at) VALUES (?, ?, ?)`,
			subjectID, hash, now,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ConsumeBackupCode relies on the conditional DELETE affecting exactly one
// row, so a code can never be accepted twice even under concurrent attempts.
func (s *Store) ConsumeBackupCode(ctx context.Context, subjectID, codeHash string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM mfa_backup_codes WHERE subject_id = ? AND code_hash = ?`,
		subjectID, codeHash,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CountBackupCodes(ctx context.Context, subjectID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM mfa_backup_codes WHERE subject_id = ?`, subjectID,
	).Scan(&count)
	return count, err
}

func (s *Store) DeleteMfa(ctx context.Context, subjectID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM mfa_backup_codes WHERE subject_id = ?`, subjectID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM mfa_settings WHERE subject_id = ?`, subjectID); err != nil {
		return err
	}

	return tx.Commit()
}
