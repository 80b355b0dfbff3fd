package service

import (
	"context"
	"time"

	"github.com/wukonglabs/wukong/internal/auth/domain"
	"github.com/wukonglabs/wukong/internal/auth/store"
	"github.com/wukonglabs/wukong/pkg/idx"
	"github.com/wukonglabs/wukong/pkg/slogx"
)

const DefaultAuditListLimit = 50

// Audit appends security log entries. Recording is best-effort: a failed
// append is logged and swallowed so it can never fail the operation that
// produced it.
type Audit struct {
	Store store.AuditStore
}

func NewAudit(st store.AuditStore) *Audit {
	return &Audit{Store: st}
}

// Record appends one event. Missing ID, severity and timestamp are filled in.
func (a *Audit) Record(ctx context.Context, event domain.AuditEvent) {
	if event.ID == "" {
		event.ID = idx.New()
	}
	if event.Severity == "" {
		event.Severity = domain.SeverityInfo
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	if err := a.Store.AppendAuditEvent(ctx, event); err != nil {
		slogx.FromContext(ctx).Error("audit append failed",
			"event_type", event.EventType,
			"subject", event.SubjectID,
			"err", err,
		)
	}
}

// List returns the subject's most recent events, newest first.
func (a *Audit) List(ctx context.Context, subjectID string, limit int) ([]domain.AuditEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = DefaultAuditListLimit
	}
	return a.Store.ListAuditEvents(ctx, subjectID, limit)
}
