package sqlite

import (
	"context"

	"github.com/wukonglabs/wukong/internal/auth/domain"
)

func (s *Store) AppendAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (id, subject_id, event_type, description, ip_address, user_agent, metadata, severity, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.SubjectID, event.EventType, event.Description,
		event.IPAddress, event.UserAgent, event.Metadata, event.Severity,
		toUnix(event.CreatedAt),
	)
	return err
}

func (s *Store) ListAuditEvents(ctx context.Context, subjectID string, limit int) ([]domain.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, subject_id, event_type, description, ip_address, user_agent, metadata, severity, created_at
		FROM audit_events WHERE subject_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?`,
		subjectID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.AuditEvent
	for rows.Next() {
		var (
			event   domain.AuditEvent
			created int64
		)
		if err := rows.Scan(&event.ID, &event.SubjectID, &event.EventType,
			&event.Description, &event.IPAddress, &event.UserAgent,
			&event.Metadata, &event.Severity, &created); err != nil {
			return nil, err
		}
		event.CreatedAt = fromUnix(created)
		events = append(events, event)
	}
	return events, rows.Err()
}
