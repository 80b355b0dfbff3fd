package http

import (
	"net/http"

	"github.com/wukonglabs/wukong/pkg/httpx"
	"github.com/wukonglabs/wukong/pkg/oauthx"
)

// sessionAuth authenticates a request from its login cookies. Both checks
// must pass: the session credential must verify cryptographically AND the
// paired device session must still be live. A revoked device therefore locks
// out a cookie that is otherwise perfectly valid.
func (r *Router) sessionAuth() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			claims := r.Issuer.VerifySession(cookieValue(req, r.Cookies.Name))
			if claims == nil {
				oauthx.WriteError(w, oauthx.ErrUnauthorized)
				return
			}

			deviceToken := cookieValue(req, r.Cookies.deviceName())
			session, live := r.Sessions.IsLive(req.Context(), deviceToken)
			if !live || session.SubjectID != claims.Subject {
				oauthx.WriteError(w, oauthx.ErrUnauthorized)
				return
			}

			ctx := httpx.WithSubject(req.Context(), claims.Subject)
			ctx = httpx.WithSessionID(ctx, session.ID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
