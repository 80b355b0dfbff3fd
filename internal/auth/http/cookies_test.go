package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCookiesSetAndClear(t *testing.T) {
	cfg := CookieConfig{
		Name:       "wukong_session",
		SessionTTL: time.Hour,
		DeviceTTL:  time.Hour,
	}

	t.Run("set writes both cookies", func(t *testing.T) {
		rec := httptest.NewRecorder()
		cfg.Set(rec, "credential", "device-token")

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 2)
		for _, c := range cookies {
			require.True(t, c.HttpOnly)
			require.Equal(t, 3600, c.MaxAge)
		}
		require.Equal(t, "wukong_session", cookies[0].Name)
		require.Equal(t, "wukong_session_device", cookies[1].Name)
	})

	t.Run("clear expires both cookies", func(t *testing.T) {
		rec := httptest.NewRecorder()
		cfg.Clear(rec)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 2)
		for _, c := range cookies {
			require.Empty(t, c.Value)
			// MaxAge zero would omit the attribute and leave the cookie
			// in the browser.
			require.Negative(t, c.MaxAge)
		}
	})
}
