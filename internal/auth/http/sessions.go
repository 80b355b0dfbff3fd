package http

import (
	"errors"
	"net/http"

	"github.com/wukonglabs/wukong/internal/auth/domain"
	"github.com/wukonglabs/wukong/internal/auth/service"
	"github.com/wukonglabs/wukong/pkg/httpx"
	"github.com/wukonglabs/wukong/pkg/oauthx"
	"github.com/wukonglabs/wukong/pkg/slogx"
)

// SessionsHandler serves device session management plus logout and the
// security log.
type SessionsHandler struct {
	Router *Router
}

type sessionListResponse struct {
	Sessions         []domain.DeviceSession `json:"sessions"`
	CurrentSessionID string                 `json:"currentSessionId"`
}

type revokeAllResponse struct {
	RevokedCount int64 `json:"revokedCount"`
}

func requestMeta(r *http.Request) domain.DeviceMeta {
	return domain.DeviceMeta{
		UserAgent: r.UserAgent(),
		IPAddress: httpx.IPKeyExtractor(r),
	}
}

// HandleList godoc
//
//	@Summary	List the subject's live device sessions
//	@Tags		Sessions
//	@Produce	json
//	@Success	200	{object}	sessionListResponse
//	@Router		/v1/sessions [get]
func (h *SessionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	sessions, err := h.Router.Sessions.List(ctx, httpx.SubjectFromContext(ctx))
	if err != nil {
		log.Error("session list failed", "err", err)
		oauthx.WriteError(w, oauthx.ErrServerError)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sessionListResponse{
		Sessions:         sessions,
		CurrentSessionID: httpx.SessionIDFromContext(ctx),
	})
}

// HandleRevoke godoc
//
//	@Summary	Revoke one device session
//	@Tags		Sessions
//	@Produce	json
//	@Param		id	path		string	true	"Session ID"
//	@Success	200	{object}	map[string]bool
//	@Failure	404	{object}	oauthx.Error
//	@Router		/v1/sessions/{id} [delete]
func (h *SessionsHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	err := h.Router.Sessions.Revoke(ctx, httpx.SubjectFromContext(ctx), r.PathValue("id"), requestMeta(r))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			oauthx.WriteError(w, oauthx.ErrNotFound)
			return
		}
		log.Error("session revoke failed", "err", err)
		oauthx.WriteError(w, oauthx.ErrServerError)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"revoked": true})
}

// HandleRevokeAll godoc
//
//	@Summary	Revoke every other device session
//	@Tags		Sessions
//	@Produce	json
//	@Success	200	{object}	revokeAllResponse
//	@Router		/v1/sessions/revoke-all [post]
func (h *SessionsHandler) HandleRevokeAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	revoked, err := h.Router.Sessions.RevokeAll(ctx,
		httpx.SubjectFromContext(ctx), httpx.SessionIDFromContext(ctx), requestMeta(r))
	if err != nil {
		log.Error("revoke all failed", "err", err)
		oauthx.WriteError(w, oauthx.ErrServerError)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, revokeAllResponse{RevokedCount: revoked})
}

// HandleAudit godoc
//
//	@Summary	Recent security events for the subject
//	@Tags		Sessions
//	@Produce	json
//	@Success	200	{array}	domain.AuditEvent
//	@Router		/v1/audit [get]
func (h *SessionsHandler) HandleAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	events, err := h.Router.Audit.List(ctx, httpx.SubjectFromContext(ctx), 0)
	if err != nil {
		log.Error("audit list failed", "err", err)
		oauthx.WriteError(w, oauthx.ErrServerError)
		return
	}
	if events == nil {
		events = []domain.AuditEvent{}
	}
	httpx.WriteJSON(w, http.StatusOK, events)
}

// HandleLogout godoc
//
//	@Summary		Sign out
//	@Description	Ends the device session behind the login cookies and clears them. Safe to call with stale or missing cookies.
//	@Tags			Sessions
//	@Produce		json
//	@Success		200	{object}	map[string]bool
//	@Router			/v1/logout [post]
func (h *SessionsHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if deviceToken := cookieValue(r, h.Router.Cookies.deviceName()); deviceToken != "" {
		h.Router.Sessions.RevokeByToken(ctx, deviceToken, requestMeta(r))
	}

	h.Router.Cookies.Clear(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
