package authsdk

import "time"

// AuthenticateRequest carries a completed upstream login to the broker.
// Provider logins set Provider and ProviderUserID; email logins set Provider
// to "email" plus the Email field. MfaCode is only needed when the account
// has a second factor enabled.
type AuthenticateRequest struct {
	Provider       string `json:"provider"`
	ProviderUserID string `json:"providerUserId,omitempty"`
	Email          string `json:"email,omitempty"`
	Name           string `json:"name,omitempty"`
	ClientID       string `json:"clientId"`
	RedirectURI    string `json:"redirectUri,omitempty"`
	State          string `json:"state,omitempty"`
	MfaCode        string `json:"mfaCode,omitempty"`
}

// CodeResponse is the provider-login result: a single-use code to redeem at
// the token endpoint.
type CodeResponse struct {
	Code        string `json:"code"`
	RedirectURL string `json:"redirectUrl"`
}

// TokenResponse is the result of redeeming an authorization code.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
	Scope       string `json:"scope"`
	IDToken     string `json:"idToken"`
}

// UserInfo is the subject profile projection.
type UserInfo struct {
	OpenID      string `json:"openId"`
	ProjectID   string `json:"projectId"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	LoginMethod string `json:"loginMethod,omitempty"`
	Role        string `json:"role,omitempty"`
}

// MfaEnrollment holds the staged secret and its one-time backup codes. The
// service returns these exactly once.
type MfaEnrollment struct {
	Secret          string   `json:"secret"`
	ProvisioningURI string   `json:"provisioningUri"`
	BackupCodes     []string `json:"backupCodes"`
}

// MfaVerifyResult reports a second-factor check outcome.
type MfaVerifyResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MfaStatus reports whether the second factor is on and how many backup
// codes remain.
type MfaStatus struct {
	Enabled              bool `json:"enabled"`
	BackupCodesRemaining int  `json:"backupCodesRemaining"`
}

// DeviceSession is one signed-in device.
type DeviceSession struct {
	ID             string    `json:"id"`
	DeviceName     string    `json:"deviceName"`
	UserAgent      string    `json:"userAgent"`
	IPAddress      string    `json:"ipAddress"`
	LastActivityAt time.Time `json:"lastActivityAt"`
	ExpiresAt      time.Time `json:"expiresAt"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SessionList is the device session listing with the caller's own session
// marked out.
type SessionList struct {
	Sessions         []DeviceSession `json:"sessions"`
	CurrentSessionID string          `json:"currentSessionId"`
}

// AuditEvent is one entry of the subject's security log.
type AuditEvent struct {
	ID          string    `json:"id"`
	EventType   string    `json:"eventType"`
	Description string    `json:"description"`
	IPAddress   string    `json:"ipAddress,omitempty"`
	UserAgent   string    `json:"userAgent,omitempty"`
	Metadata    string    `json:"metadata,omitempty"`
	Severity    string    `json:"severity"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

type sessionLoginResponse struct {
	Success     bool   `json:"success"`
	RedirectURL string `json:"redirectUrl"`
}

type tokenRequest struct {
	GrantType   string `json:"grantType"`
	Code        string `json:"code"`
	ClientID    string `json:"clientId"`
	RedirectURI string `json:"redirectUri"`
}

type userInfoRequest struct {
	AccessToken string `json:"accessToken"`
}

type mfaCodeRequest struct {
	Code string `json:"code"`
}

type backupCodesResponse struct {
	BackupCodes []string `json:"backupCodes"`
}

type revokeAllResponse struct {
	RevokedCount int64 `json:"revokedCount"`
}
