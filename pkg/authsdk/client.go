package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the Wukong auth service. It serves the
// unauthenticated operations and creates cookie-backed Sessions for the
// account endpoints.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates an auth service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Authenticate completes a provider login and returns the single-use code to
// redeem with ExchangeCode. Use IsMFARequired on the error to detect accounts
// that need a second factor.
func (c *SDKClient) Authenticate(ctx context.Context, req AuthenticateRequest) (*CodeResponse, error) {
	var out CodeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/oauth/authenticate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AuthenticateWithEmail completes an email login. The service answers with
// login cookies rather than a code; they come back wrapped in a Session.
func (c *SDKClient) AuthenticateWithEmail(ctx context.Context, email, name, clientID string, mfaCode ...string) (*Session, error) {
	req := AuthenticateRequest{
		Provider: "email",
		Email:    email,
		Name:     name,
		ClientID: clientID,
	}
	if len(mfaCode) > 0 {
		req.MfaCode = mfaCode[0]
	}

	httpReq, err := c.newJSONRequest(ctx, http.MethodPost, "/v1/oauth/authenticate", req)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, err
	}

	cookies := resp.Cookies()
	var out sessionLoginResponse
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}

	return newSession(c, cookies), nil
}

// ExchangeCode redeems a single-use authorization code for tokens.
func (c *SDKClient) ExchangeCode(ctx context.Context, code, clientID, redirectURI string) (*TokenResponse, error) {
	var out TokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/oauth/token", tokenRequest{
		GrantType:   "authorization_code",
		Code:        code,
		ClientID:    clientID,
		RedirectURI: redirectURI,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UserInfo resolves an opaque access token to its subject profile.
func (c *SDKClient) UserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	var out UserInfo
	if err := c.doJSON(ctx, http.MethodPost, "/v1/oauth/userinfo", userInfoRequest{AccessToken: accessToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Livez checks process liveness.
func (c *SDKClient) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Readyz checks readiness, including the service's store connectivity.
func (c *SDKClient) Readyz(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
