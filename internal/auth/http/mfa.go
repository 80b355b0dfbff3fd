package http

import (
	"errors"
	"net/http"

	"github.com/wukonglabs/wukong/internal/auth/service"
	"github.com/wukonglabs/wukong/pkg/httpx"
	"github.com/wukonglabs/wukong/pkg/oauthx"
	"github.com/wukonglabs/wukong/pkg/slogx"
)

// MFAHandler serves the second-factor endpoints. All of them run behind the
// session middleware, so the subject always comes from the request context.
type MFAHandler struct {
	MFA *service.MFA
}

type mfaCodeRequest struct {
	Code string `json:"code"`
}

type mfaStatusResponse struct {
	Enabled              bool `json:"enabled"`
	BackupCodesRemaining int  `json:"backupCodesRemaining"`
}

type backupCodesResponse struct {
	BackupCodes []string `json:"backupCodes"`
}

func writeMFAError(w http.ResponseWriter, log interface{ Error(string, ...any) }, err error) {
	switch {
	case errors.Is(err, service.ErrMFAAlreadyEnabled):
		oauthx.WriteError(w, oauthx.ErrInvalidRequest.WithDescription("Two-factor authentication is already enabled."))
	case errors.Is(err, service.ErrMFANotEnrolled):
		oauthx.WriteError(w, oauthx.ErrInvalidRequest.WithDescription("Enrollment has not been started."))
	case errors.Is(err, service.ErrMFANotEnabled):
		oauthx.WriteError(w, oauthx.ErrInvalidRequest.WithDescription("Two-factor authentication is not enabled."))
	case errors.Is(err, service.ErrInvalidMFACode):
		oauthx.WriteError(w, oauthx.ErrMFARequired.WithDescription("The code is invalid."))
	default:
		log.Error("mfa operation failed", "err", err)
		oauthx.WriteError(w, oauthx.ErrServerError)
	}
}

// HandleEnroll godoc
//
//	@Summary	Begin TOTP enrollment
//	@Tags		MFA
//	@Produce	json
//	@Success	200	{object}	domain.MfaEnrollment	"secret, provisioning URI and backup codes, returned exactly once"
//	@Failure	400	{object}	oauthx.Error
//	@Router		/v1/mfa/enroll [post]
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	enrollment, err := h.MFA.BeginEnrollment(ctx, httpx.SubjectFromContext(ctx))
	if err != nil {
		writeMFAError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, enrollment)
}

// HandleConfirm godoc
//
//	@Summary	Confirm TOTP enrollment
//	@Tags		MFA
//	@Accept		json
//	@Produce	json
//	@Param		request	body	mfaCodeRequest	true	"Current TOTP code"
//	@Success	200		{object}	domain.MfaVerifyResult
//	@Failure	400		{object}	oauthx.Error
//	@Router		/v1/mfa/confirm [post]
func (h *MFAHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req mfaCodeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		oauthx.WriteError(w, oauthx.ErrInvalidRequest)
		return
	}

	if err := h.MFA.ConfirmEnrollment(ctx, httpx.SubjectFromContext(ctx), req.Code); err != nil {
		writeMFAError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"enabled": true})
}

// HandleVerify godoc
//
//	@Summary	Verify a second-factor code
//	@Tags		MFA
//	@Accept		json
//	@Produce	json
//	@Param		request	body	mfaCodeRequest	true	"TOTP or backup code"
//	@Success	200		{object}	domain.MfaVerifyResult
//	@Failure	401		{object}	oauthx.Error
//	@Router		/v1/mfa/verify [post]
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req mfaCodeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		oauthx.WriteError(w, oauthx.ErrInvalidRequest)
		return
	}

	result, err := h.MFA.Verify(ctx, httpx.SubjectFromContext(ctx), req.Code)
	if err != nil {
		writeMFAError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, result)
}

// HandleRegenerate godoc
//
//	@Summary	Regenerate backup codes
//	@Tags		MFA
//	@Produce	json
//	@Success	200	{object}	backupCodesResponse	"fresh pool, invalidates all previous codes"
//	@Failure	400	{object}	oauthx.Error
//	@Router		/v1/mfa/backup-codes [post]
func (h *MFAHandler) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	codes, err := h.MFA.RegenerateBackupCodes(ctx, httpx.SubjectFromContext(ctx))
	if err != nil {
		writeMFAError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, backupCodesResponse{BackupCodes: codes})
}

// HandleStatus godoc
//
//	@Summary	Second-factor status
//	@Tags		MFA
//	@Produce	json
//	@Success	200	{object}	mfaStatusResponse
//	@Router		/v1/mfa/status [get]
func (h *MFAHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	subject := httpx.SubjectFromContext(ctx)

	enabled, err := h.MFA.Enabled(ctx, subject)
	if err != nil {
		log.Error("mfa status failed", "err", err)
		oauthx.WriteError(w, oauthx.ErrServerError)
		return
	}

	var remaining int
	if enabled {
		if remaining, err = h.MFA.BackupCodesRemaining(ctx, subject); err != nil {
			log.Error("backup code count failed", "err", err)
			oauthx.WriteError(w, oauthx.ErrServerError)
			return
		}
	}

	httpx.WriteJSON(w, http.StatusOK, mfaStatusResponse{
		Enabled:              enabled,
		BackupCodesRemaining: remaining,
	})
}

// HandleDisable godoc
//
//	@Summary		Disable the second factor
//	@Description	Requires one final valid TOTP or backup code.
//	@Tags			MFA
//	@Accept			json
//	@Produce		json
//	@Param			request	body	mfaCodeRequest	true	"TOTP or backup code"
//	@Success		200		{object}	map[string]bool
//	@Failure		401		{object}	oauthx.Error
//	@Router			/v1/mfa [delete]
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req mfaCodeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		oauthx.WriteError(w, oauthx.ErrInvalidRequest)
		return
	}

	if err := h.MFA.Disable(ctx, httpx.SubjectFromContext(ctx), req.Code); err != nil {
		writeMFAError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"enabled": false})
}
