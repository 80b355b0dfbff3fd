package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/wukonglabs/wukong/internal/auth/service"
	"github.com/wukonglabs/wukong/pkg/httpx"
	"github.com/wukonglabs/wukong/pkg/oauthx"
	"github.com/wukonglabs/wukong/pkg/slogx"
)

// TokenHandler serves POST /v1/oauth/token.
type TokenHandler struct {
	Issuer *service.Issuer
}

type tokenRequest struct {
	GrantType   string `json:"grantType"`
	Code        string `json:"code"`
	ClientID    string `json:"clientId"`
	RedirectURI string `json:"redirectUri"`
}

// ServeHTTP godoc
//
//	@Summary		Token exchange
//	@Description	Redeems a single-use sign-in code for an opaque access token and a signed identity assertion. Codes are valid for one redemption; any validation failure returns the same invalid_grant.
//	@Tags			OAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tokenRequest	true	"Exchange request"
//	@Success		200		{object}	domain.TokenResponse
//	@Failure		400		{object}	oauthx.Error
//	@Header			200		{string}	Cache-Control	"no-store"
//	@Router			/v1/oauth/token [post]
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req tokenRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		oauthx.WriteError(w, oauthx.ErrInvalidRequest)
		return
	}

	if req.GrantType != "authorization_code" {
		oauthx.WriteError(w, oauthx.ErrUnsupportedGrantType)
		return
	}

	code := strings.TrimSpace(req.Code)
	clientID := strings.TrimSpace(req.ClientID)
	redirectURI := strings.TrimSpace(req.RedirectURI)
	if code == "" || clientID == "" || redirectURI == "" {
		oauthx.WriteError(w, oauthx.ErrInvalidRequest)
		return
	}

	resp, err := h.Issuer.Exchange(ctx, code, clientID, redirectURI)
	if err != nil {
		switch {
		// All redemption failures collapse to one answer so a caller
		// cannot probe for live codes.
		case errors.Is(err, service.ErrCodeNotFound),
			errors.Is(err, service.ErrCodeAlreadyUsed),
			errors.Is(err, service.ErrCodeExpired),
			errors.Is(err, service.ErrClientMismatch),
			errors.Is(err, service.ErrRedirectMismatch),
			errors.Is(err, service.ErrUnknownIdentity):
			oauthx.WriteError(w, oauthx.ErrInvalidGrant)
		default:
			log.Error("token exchange failed", "err", err)
			oauthx.WriteError(w, oauthx.ErrServerError)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
