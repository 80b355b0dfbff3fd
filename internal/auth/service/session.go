package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wukonglabs/wukong/internal/auth/domain"
	"github.com/wukonglabs/wukong/internal/auth/store"
	"github.com/wukonglabs/wukong/pkg/cryptox"
	"github.com/wukonglabs/wukong/pkg/idx"
	"github.com/wukonglabs/wukong/pkg/slogx"
)

var ErrSessionNotFound = errors.New("device session not found")

const DefaultDeviceSessionTTL = 30 * 24 * time.Hour

// Sessions tracks logged-in devices. A session credential cookie alone is
// not enough to stay signed in: the paired device session must still be live,
// which is what makes remote revocation effective.
type Sessions struct {
	Store store.SessionStore
	Audit *Audit

	TTL time.Duration
}

func NewSessions(st store.SessionStore, audit *Audit) *Sessions {
	return &Sessions{Store: st, Audit: audit, TTL: DefaultDeviceSessionTTL}
}

// Create records a new device session and returns the raw session token
// exactly once.
func (s *Sessions) Create(ctx context.Context, subjectID string, meta domain.DeviceMeta) (string, domain.DeviceSession, error) {
	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", domain.DeviceSession{}, fmt.Errorf("generate session token: %w", err)
	}

	deviceName := meta.DeviceName
	if deviceName == "" {
		deviceName = describeUserAgent(meta.UserAgent)
	}

	now := time.Now().UTC()
	session := domain.DeviceSession{
		ID:             idx.New(),
		SubjectID:      subjectID,
		TokenHash:      cryptox.FingerprintToken(raw),
		DeviceName:     deviceName,
		UserAgent:      meta.UserAgent,
		IPAddress:      meta.IPAddress,
		LastActivityAt: now,
		ExpiresAt:      now.Add(s.TTL),
		IsActive:       true,
		CreatedAt:      now,
	}
	if err := s.Store.CreateDeviceSession(ctx, session); err != nil {
		return "", domain.DeviceSession{}, fmt.Errorf("store session: %w", err)
	}

	s.Audit.Record(ctx, domain.AuditEvent{
		SubjectID:   subjectID,
		EventType:   domain.EventSessionCreated,
		Description: "Signed in on " + deviceName,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
	})
	return raw, session, nil
}

// List returns the subject's live sessions, most recently active first.
func (s *Sessions) List(ctx context.Context, subjectID string) ([]domain.DeviceSession, error) {
	return s.Store.ListDeviceSessions(ctx, subjectID, time.Now().UTC())
}

// Revoke deactivates one session. Revoking twice reports ErrSessionNotFound.
func (s *Sessions) Revoke(ctx context.Context, subjectID, sessionID string, meta domain.DeviceMeta) error {
	err := s.Store.RevokeDeviceSession(ctx, subjectID, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	s.Audit.Record(ctx, domain.AuditEvent{
		SubjectID:   subjectID,
		EventType:   domain.EventSessionRevoked,
		Description: "Device session revoked",
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
	})
	return nil
}

// RevokeAll deactivates every session except the caller's own and reports
// how many were cut off.
func (s *Sessions) RevokeAll(ctx context.Context, subjectID, exceptSessionID string, meta domain.DeviceMeta) (int64, error) {
	revoked, err := s.Store.RevokeAllDeviceSessions(ctx, subjectID, exceptSessionID)
	if err != nil {
		return 0, fmt.Errorf("revoke all sessions: %w", err)
	}

	s.Audit.Record(ctx, domain.AuditEvent{
		SubjectID:   subjectID,
		EventType:   domain.EventAllSessionsRevoked,
		Description: fmt.Sprintf("%d device sessions revoked", revoked),
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
		Severity:    domain.SeverityWarning,
	})
	return revoked, nil
}

// IsLive resolves a raw session token to its session if it is active and
// unexpired, bumping last-activity on the way through.
func (s *Sessions) IsLive(ctx context.Context, rawToken string) (domain.DeviceSession, bool) {
	session, err := s.Store.GetDeviceSessionByToken(ctx, cryptox.FingerprintToken(rawToken))
	if err != nil {
		return domain.DeviceSession{}, false
	}

	now := time.Now().UTC()
	if !session.IsActive || now.After(session.ExpiresAt) {
		return domain.DeviceSession{}, false
	}

	if err := s.Store.TouchDeviceSession(ctx, session.ID, now); err != nil {
		slogx.FromContext(ctx).Error("session touch failed", "session_id", session.ID, "err", err)
	}
	return session, true
}

// RevokeByToken ends the session behind a raw token, used at logout. Unknown
// tokens are a no-op.
func (s *Sessions) RevokeByToken(ctx context.Context, rawToken string, meta domain.DeviceMeta) {
	session, err := s.Store.GetDeviceSessionByToken(ctx, cryptox.FingerprintToken(rawToken))
	if err != nil {
		return
	}
	_ = s.Revoke(ctx, session.SubjectID, session.ID, meta)
}

// describeUserAgent reduces a User-Agent header to a short human label like
// "Chrome on macOS".
func describeUserAgent(ua string) string {
	if ua == "" {
		return "Unknown device"
	}

	browser := "Unknown browser"
	switch {
	case strings.Contains(ua, "Edg/"):
		browser = "Edge"
	case strings.Contains(ua, "OPR/"), strings.Contains(ua, "Opera"):
		browser = "Opera"
	case strings.Contains(ua, "Chrome/"):
		browser = "Chrome"
	case strings.Contains(ua, "Firefox/"):
		browser = "Firefox"
	case strings.Contains(ua, "Safari/"):
		browser = "Safari"
	}

	os := "Unknown OS"
	switch {
	case strings.Contains(ua, "Windows"):
		os = "Windows"
	case strings.Contains(ua, "Mac OS X"), strings.Contains(ua, "Macintosh"):
		os = "macOS"
	case strings.Contains(ua, "Android"):
		os = "Android"
	case strings.Contains(ua, "iPhone"), strings.Contains(ua, "iPad"):
		os = "iOS"
	case strings.Contains(ua, "Linux"):
		os = "Linux"
	}

	return browser + " on " + os
}
