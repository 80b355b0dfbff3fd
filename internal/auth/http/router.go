// Package http wires the auth endpoints onto a ServeMux with per-route rate
// limits and the session middleware.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/wukonglabs/wukong/internal/auth/service"
	"github.com/wukonglabs/wukong/internal/auth/store"
	"github.com/wukonglabs/wukong/pkg/httpx"
	"github.com/wukonglabs/wukong/pkg/slogx"

	_ "github.com/wukonglabs/wukong/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store  store.Store
	grants store.GrantStore

	Broker   *service.Broker
	Issuer   *service.Issuer
	MFA      *service.MFA
	Sessions *service.Sessions
	Audit    *service.Audit

	// ClientID is the single registered client, the console itself.
	ClientID string

	Cookies CookieConfig

	// DefaultRedirect is where a login lands when no redirect target was
	// carried in the request or its state parameter.
	DefaultRedirect string
}

func NewRouter(buildVersion string, st store.Store, grants store.GrantStore, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		grants:       grants,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerOAuth()
	r.registerMFA()
	r.registerSessions()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Wukong Auth Service API
//	@version		0.1.0
//	@description	Embedded identity provider for the Wukong VM console: single-use
//	@description	sign-in codes, opaque access tokens, signed identity assertions,
//	@description	TOTP second factor with recovery codes, and device session management.
//
//	@contact.name	Wukong Labs
//	@contact.url	https://github.com/wukonglabs/wukong
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerOAuth() {
	authHandler := &AuthenticateHandler{Router: r}
	r.Mux.Handle("POST /v1/oauth/authenticate",
		httpx.Chain(authHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	tokenHandler := &TokenHandler{Issuer: r.Issuer}
	r.Mux.Handle("POST /v1/oauth/token",
		httpx.Chain(tokenHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	userInfoHandler := &UserInfoHandler{Router: r}
	r.Mux.Handle("POST /v1/oauth/userinfo",
		httpx.Chain(http.HandlerFunc(userInfoHandler.HandleToken),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// Cookie-authenticated variant for the console's own frontend.
	r.Mux.Handle("GET /v1/userinfo",
		httpx.Chain(http.HandlerFunc(userInfoHandler.HandleSession),
			r.sessionAuth(),
			httpx.RateLimitBySubject(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFA: r.MFA}

	// Verification attempts get the strict limit to slow down code guessing.
	r.Mux.Handle("POST /v1/mfa/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			r.sessionAuth(),
			httpx.RateLimitBySubject(httpx.StrictLimit),
		),
	)

	moderate := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			r.sessionAuth(),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		)
	}
	r.Mux.Handle("POST /v1/mfa/enroll", moderate(http.HandlerFunc(h.HandleEnroll)))
	r.Mux.Handle("POST /v1/mfa/confirm", moderate(http.HandlerFunc(h.HandleConfirm)))
	r.Mux.Handle("POST /v1/mfa/backup-codes", moderate(http.HandlerFunc(h.HandleRegenerate)))
	r.Mux.Handle("GET /v1/mfa/status", moderate(http.HandlerFunc(h.HandleStatus)))
	r.Mux.Handle("DELETE /v1/mfa", moderate(http.HandlerFunc(h.HandleDisable)))
}

func (r *Router) registerSessions() {
	h := &SessionsHandler{Router: r}

	secured := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			r.sessionAuth(),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		)
	}
	r.Mux.Handle("GET /v1/sessions", secured(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("DELETE /v1/sessions/{id}", secured(http.HandlerFunc(h.HandleRevoke)))
	r.Mux.Handle("POST /v1/sessions/revoke-all", secured(http.HandlerFunc(h.HandleRevokeAll)))
	r.Mux.Handle("GET /v1/audit", secured(http.HandlerFunc(h.HandleAudit)))

	// Logout must work even when the device session is already dead, so it
	// skips the auth middleware and just tears down whatever it finds.
	r.Mux.Handle("POST /v1/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
