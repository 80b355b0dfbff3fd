package authsdk

import (
	"context"
	"net/http"
)

// ListSessions returns the subject's live device sessions, with the caller's
// own session identified by CurrentSessionID.
func (s *Session) ListSessions(ctx context.Context) (*SessionList, error) {
	var out SessionList
	if err := s.doJSON(ctx, http.MethodGet, "/v1/sessions", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeSession signs out one device session by ID.
func (s *Session) RevokeSession(ctx context.Context, sessionID string) error {
	return s.doJSON(ctx, http.MethodDelete, "/v1/sessions/"+sessionID, nil, nil)
}

// RevokeOtherSessions signs out every device session except the caller's own
// and returns how many were ended.
func (s *Session) RevokeOtherSessions(ctx context.Context) (int64, error) {
	var out revokeAllResponse
	if err := s.doJSON(ctx, http.MethodPost, "/v1/sessions/revoke-all", nil, &out); err != nil {
		return 0, err
	}
	return out.RevokedCount, nil
}

// AuditLog returns the subject's recent security events, newest first.
func (s *Session) AuditLog(ctx context.Context) ([]AuditEvent, error) {
	var out []AuditEvent
	if err := s.doJSON(ctx, http.MethodGet, "/v1/audit", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
