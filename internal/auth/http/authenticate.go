package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/wukonglabs/wukong/internal/auth/domain"
	"github.com/wukonglabs/wukong/internal/auth/service"
	"github.com/wukonglabs/wukong/pkg/httpx"
	"github.com/wukonglabs/wukong/pkg/oauthx"
	"github.com/wukonglabs/wukong/pkg/slogx"
)

// AuthenticateHandler serves POST /v1/oauth/authenticate, the endpoint the
// login providers call back into once they have verified the user.
type AuthenticateHandler struct {
	Router *Router
}

type authenticateRequest struct {
	Provider       string `json:"provider"`
	ProviderUserID string `json:"providerUserId,omitempty"`
	Email          string `json:"email,omitempty"`
	Name           string `json:"name,omitempty"`
	ClientID       string `json:"clientId"`
	RedirectURI    string `json:"redirectUri,omitempty"`
	State          string `json:"state,omitempty"`
	MfaCode        string `json:"mfaCode,omitempty"`
}

type authenticateCodeResponse struct {
	Code        string `json:"code"`
	RedirectURL string `json:"redirectUrl"`
}

type authenticateSessionResponse struct {
	Success     bool   `json:"success"`
	RedirectURL string `json:"redirectUrl"`
}

// ServeHTTP godoc
//
//	@Summary		Complete a login
//	@Description	Called after a login provider has verified the user. The email provider signs the caller in directly with session cookies; every other provider receives a single-use code to redeem at the token endpoint.
//	@Tags			OAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authenticateRequest			true	"Login completion"
//	@Success		200		{object}	authenticateCodeResponse	"code and redirect target (provider path)"
//	@Failure		400		{object}	oauthx.Error
//	@Failure		401		{object}	oauthx.Error	"mfa_required"
//	@Failure		403		{object}	oauthx.Error
//	@Router			/v1/oauth/authenticate [post]
func (h *AuthenticateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	rt := h.Router

	var req authenticateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		oauthx.WriteError(w, oauthx.ErrInvalidRequest)
		return
	}

	if req.ClientID != rt.ClientID {
		log.Warn("authenticate for unknown client", "client_id", req.ClientID)
		oauthx.WriteError(w, oauthx.ErrForbidden.WithDescription("Unknown client."))
		return
	}

	redirectURL, err := h.resolveRedirect(req)
	if err != nil {
		oauthx.WriteError(w, oauthx.ErrInvalidRequest.WithDescription("Malformed state parameter."))
		return
	}

	identity, err := h.resolveIdentity(r, req)
	if err != nil {
		oauthx.WriteError(w, err)
		return
	}

	// MFA gates login completion regardless of provider.
	enabled, err := rt.MFA.Enabled(ctx, identity.ExternalID)
	if err != nil {
		log.Error("mfa lookup failed", "err", err)
		oauthx.WriteError(w, oauthx.ErrServerError)
		return
	}
	if enabled {
		if req.MfaCode == "" {
			oauthx.WriteError(w, oauthx.ErrMFARequired)
			return
		}
		if _, err := rt.MFA.Verify(ctx, identity.ExternalID, req.MfaCode); err != nil {
			if errors.Is(err, service.ErrInvalidMFACode) {
				oauthx.WriteError(w, oauthx.ErrMFARequired)
				return
			}
			log.Error("mfa verify failed", "err", err)
			oauthx.WriteError(w, oauthx.ErrServerError)
			return
		}
	}

	// The email provider has no external callback leg, so it signs the
	// caller in directly instead of round-tripping a code.
	if req.Provider == "email" {
		h.finishWithSession(w, r, identity, redirectURL)
		return
	}

	code, err := rt.Broker.IssueCode(ctx, identity.ExternalID, req.ClientID, redirectURL)
	if err != nil {
		log.Error("code issue failed", "err", err)
		oauthx.WriteError(w, oauthx.ErrServerError)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authenticateCodeResponse{
		Code:        code,
		RedirectURL: redirectURL,
	})
}

func (h *AuthenticateHandler) resolveRedirect(req authenticateRequest) (string, error) {
	if req.State != "" {
		state, err := DecodeState(req.State)
		if err != nil {
			return "", err
		}
		if state.RedirectURI != "" {
			return state.RedirectURI, nil
		}
	}
	if req.RedirectURI != "" {
		return req.RedirectURI, nil
	}
	return h.Router.DefaultRedirect, nil
}

func (h *AuthenticateHandler) resolveIdentity(r *http.Request, req authenticateRequest) (domain.Identity, error) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var identity domain.Identity
	switch {
	case req.Provider == "":
		return domain.Identity{}, oauthx.ErrInvalidRequest.WithDescription("Missing provider.")
	case req.Provider == "email":
		if req.Email == "" {
			return domain.Identity{}, oauthx.ErrInvalidRequest.WithDescription("Missing email.")
		}
		identity = domain.Identity{
			ExternalID:  "email:" + strings.ToLower(req.Email),
			DisplayName: req.Name,
			Email:       strings.ToLower(req.Email),
			LoginMethod: "email",
		}
	default:
		if req.ProviderUserID == "" {
			return domain.Identity{}, oauthx.ErrInvalidRequest.WithDescription("Missing providerUserId.")
		}
		identity = domain.Identity{
			ExternalID:  req.Provider + ":" + req.ProviderUserID,
			DisplayName: req.Name,
			Email:       strings.ToLower(req.Email),
			LoginMethod: req.Provider,
		}
	}
	if identity.DisplayName == "" {
		identity.DisplayName = identity.ExternalID
	}

	upserted, err := h.Router.store.UpsertIdentity(ctx, identity)
	if err != nil {
		log.Error("identity upsert failed", "err", err)
		return domain.Identity{}, oauthx.ErrServerError
	}
	return upserted, nil
}

func (h *AuthenticateHandler) finishWithSession(w http.ResponseWriter, r *http.Request, identity domain.Identity, redirectURL string) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	rt := h.Router

	credential, err := rt.Issuer.MintSession(ctx, identity.ExternalID, rt.ClientID)
	if err != nil {
		log.Error("session mint failed", "err", err)
		oauthx.WriteError(w, oauthx.ErrServerError)
		return
	}

	deviceToken, _, err := rt.Sessions.Create(ctx, identity.ExternalID, domain.DeviceMeta{
		UserAgent: r.UserAgent(),
		IPAddress: httpx.IPKeyExtractor(r),
	})
	if err != nil {
		log.Error("device session create failed", "err", err)
		oauthx.WriteError(w, oauthx.ErrServerError)
		return
	}

	rt.Cookies.Set(w, credential, deviceToken)
	httpx.WriteJSON(w, http.StatusOK, authenticateSessionResponse{
		Success:     true,
		RedirectURL: redirectURL,
	})
}
