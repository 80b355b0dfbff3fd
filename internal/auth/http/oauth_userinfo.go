package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/wukonglabs/wukong/internal/auth/domain"
	"github.com/wukonglabs/wukong/internal/auth/service"
	"github.com/wukonglabs/wukong/internal/auth/store"
	"github.com/wukonglabs/wukong/pkg/httpx"
	"github.com/wukonglabs/wukong/pkg/oauthx"
	"github.com/wukonglabs/wukong/pkg/slogx"
)

// UserInfoHandler resolves identities two ways: from an opaque access token
// (POST /v1/oauth/userinfo, for the code exchange flow) and from the session
// cookie (GET /v1/userinfo, for the console frontend).
type UserInfoHandler struct {
	Router *Router
}

type userInfoRequest struct {
	AccessToken string `json:"accessToken"`
}

// HandleToken godoc
//
//	@Summary		User info by access token
//	@Tags			OAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		userInfoRequest	true	"Access token"
//	@Success		200		{object}	domain.UserInfo
//	@Failure		401		{object}	oauthx.Error
//	@Router			/v1/oauth/userinfo [post]
func (h *UserInfoHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req userInfoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		oauthx.WriteError(w, oauthx.ErrInvalidRequest)
		return
	}
	token := strings.TrimSpace(req.AccessToken)
	if token == "" {
		oauthx.WriteError(w, oauthx.ErrInvalidRequest)
		return
	}

	info, err := h.Router.Issuer.UserInfo(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenNotFound),
			errors.Is(err, service.ErrUnknownIdentity):
			oauthx.WriteError(w, oauthx.ErrInvalidToken)
		default:
			log.Error("userinfo lookup failed", "err", err)
			oauthx.WriteError(w, oauthx.ErrServerError)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, info)
}

// HandleSession godoc
//
//	@Summary	User info for the signed-in session
//	@Tags		OAuth
//	@Produce	json
//	@Success	200	{object}	domain.UserInfo
//	@Failure	401	{object}	oauthx.Error
//	@Router		/v1/userinfo [get]
func (h *UserInfoHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	subject := httpx.SubjectFromContext(ctx)

	identity, err := h.Router.store.GetIdentityByExternalID(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			oauthx.WriteError(w, oauthx.ErrUnauthorized)
			return
		}
		log.Error("identity lookup failed", "err", err)
		oauthx.WriteError(w, oauthx.ErrServerError)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, domain.UserInfo{
		ExternalID:  identity.ExternalID,
		ClientID:    h.Router.ClientID,
		Name:        identity.DisplayName,
		Email:       identity.Email,
		LoginMethod: identity.LoginMethod,
		Role:        identity.Role,
	})
}
