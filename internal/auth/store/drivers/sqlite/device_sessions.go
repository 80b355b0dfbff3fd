package sqlite

import (
	"context"
	"time"

	"github.com/wukonglabs/wukong/internal/auth/domain"
	"github.com/wukonglabs/wukong/internal/auth/store"
)

const deviceSessionColumns = `id, subject_id, token_hash, device_name, user_agent, ip_address, last_activity_at, expires_at, is_active, created_at`

func (s *Store) CreateDeviceSession(ctx context.Context, session domain.DeviceSession) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO device_sessions (`+deviceSessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.SubjectID, session.TokenHash, session.DeviceName,
		session.UserAgent, session.IPAddress, toUnix(session.LastActivityAt),
		toUnix(session.ExpiresAt), session.IsActive, toUnix(session.CreatedAt),
	)
	return err
}

func (s *Store) scanDeviceSession(row interface {
	Scan(dest ...any) error
}) (domain.DeviceSession, error) {
	var (
		session      domain.DeviceSession
		lastActivity int64
		expires      int64
		created      int64
	)
	err := row.Scan(&session.ID, &session.SubjectID, &session.TokenHash,
		&session.DeviceName, &session.UserAgent, &session.IPAddress,
		&lastActivity, &expires, &session.IsActive, &created)
	if err != nil {
		return domain.DeviceSession{}, mapNotFound(err)
	}
	session.LastActivityAt = fromUnix(lastActivity)
	session.ExpiresAt = fromUnix(expires)
	session.CreatedAt = fromUnix(created)
	return session, nil
}

func (s *Store) GetDeviceSessionByToken(ctx context.Context, tokenHash string) (domain.DeviceSession, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+deviceSessionColumns+` FROM device_sessions WHERE token_hash = ?`, tokenHash)
	return s.scanDeviceSession(row)
}

func (s *Store) GetDeviceSession(ctx context.Context, subjectID, sessionID string) (domain.DeviceSession, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+deviceSessionColumns+` FROM device_sessions WHERE id = ? AND subject_id = ?`,
		sessionID, subjectID)
	return s.scanDeviceSession(row)
}

func (s *Store) ListDeviceSessions(ctx context.Context, subjectID string, now time.Time) ([]domain.DeviceSession, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+deviceSessionColumns+` FROM device_sessions
		WHERE subject_id = ? AND is_active = 1 AND expires_at > ?
		ORDER BY last_activity_at DESC`,
		subjectID, toUnix(now),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.DeviceSession
	for rows.Next() {
		session, err := s.scanDeviceSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (s *Store) RevokeDeviceSession(ctx context.Context, subjectID, sessionID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE device_sessions SET is_active = 0
		WHERE id = ? AND subject_id = ? AND is_active = 1`,
		sessionID, subjectID,
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

func (s *Store) RevokeAllDeviceSessions(ctx context.Context, subjectID, exceptSessionID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE device_sessions SET is_active = 0
		WHERE subject_id = ? AND is_active = 1 AND id != ?`,
		subjectID, exceptSessionID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) TouchDeviceSession(ctx context.Context, sessionID string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE device_sessions SET last_activity_at = ? WHERE id = ? AND is_active = 1`,
		toUnix(at), sessionID,
	)
	return err
}

func (s *Store) DeactivateExpiredDeviceSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE device_sessions SET is_active = 0
		WHERE is_active = 1 AND expires_at <= ?`,
		toUnix(now),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
