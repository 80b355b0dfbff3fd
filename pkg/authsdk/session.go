package authsdk

import (
	"context"
	"fmt"
	"net/http"
)

// Session is an authenticated handle on the account endpoints. It carries the
// login cookies from an email authentication and attaches them to every
// request.
type Session struct {
	client  *SDKClient
	cookies []*http.Cookie
}

func newSession(client *SDKClient, cookies []*http.Cookie) *Session {
	return &Session{client: client, cookies: cookies}
}

// Cookies exposes the login cookies, e.g. to persist them across restarts.
func (s *Session) Cookies() []*http.Cookie { return s.cookies }

// NewSessionFromCookies rebuilds a Session from previously stored cookies.
func (c *SDKClient) NewSessionFromCookies(cookies []*http.Cookie) *Session {
	return newSession(c, cookies)
}

// doJSON performs a cookie-authenticated JSON round trip.
func (s *Session) doJSON(ctx context.Context, method, path string, in, out any) error {
	req, err := s.client.newJSONRequest(ctx, method, path, in)
	if err != nil {
		return err
	}
	for _, cookie := range s.cookies {
		req.AddCookie(cookie)
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	return decodeJSON(resp, out)
}

// UserInfo returns the profile behind this session.
func (s *Session) UserInfo(ctx context.Context) (*UserInfo, error) {
	var out UserInfo
	if err := s.doJSON(ctx, http.MethodGet, "/v1/userinfo", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout ends the device session behind this Session's cookies. The Session
// must not be used afterwards.
func (s *Session) Logout(ctx context.Context) error {
	return s.doJSON(ctx, http.MethodPost, "/v1/logout", nil, nil)
}
