package http

import (
	"net/http"
	"time"
)

// CookieConfig describes the paired login cookies: the stateless session
// credential and the opaque device session token that backs revocation.
type CookieConfig struct {
	// Name is the session credential cookie; the device cookie is derived
	// from it.
	Name   string
	Domain string
	Secure bool

	SessionTTL time.Duration
	DeviceTTL  time.Duration
}

func (c CookieConfig) deviceName() string { return c.Name + "_device" }

func (c CookieConfig) set(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Set writes both login cookies.
func (c CookieConfig) Set(w http.ResponseWriter, sessionCredential, deviceToken string) {
	c.set(w, c.Name, sessionCredential, c.SessionTTL)
	c.set(w, c.deviceName(), deviceToken, c.DeviceTTL)
}

// Clear expires both login cookies. The TTL must round to a negative
// Max-Age; a sub-second value truncates to zero and the attribute is
// dropped entirely.
func (c CookieConfig) Clear(w http.ResponseWriter) {
	c.set(w, c.Name, "", -time.Second)
	c.set(w, c.deviceName(), "", -time.Second)
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
