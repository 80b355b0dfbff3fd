package http

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	encoded := EncodeState(State{RedirectURI: "https://console.example.com/dash"})

	state, err := DecodeState(encoded)
	require.NoError(t, err)
	require.Equal(t, "https://console.example.com/dash", state.RedirectURI)
}

func TestDecodeStateEmpty(t *testing.T) {
	state, err := DecodeState("")
	require.NoError(t, err)
	require.Empty(t, state.RedirectURI)
}

func TestDecodeStateAcceptsPadding(t *testing.T) {
	padded := base64.URLEncoding.EncodeToString([]byte(`{"redirectUri":"/vms"}`))

	state, err := DecodeState(padded)
	require.NoError(t, err)
	require.Equal(t, "/vms", state.RedirectURI)
}

func TestDecodeStateRejectsGarbage(t *testing.T) {
	cases := map[string]string{
		"not base64":      "!!not-base64!!",
		"not json":        base64.RawURLEncoding.EncodeToString([]byte("plain text")),
		"bare url":        "https://console.example.com/dash",
		"standard base64": base64.StdEncoding.EncodeToString([]byte(`{"redirectUri":"/a?b=c+d/e"}`))[:10] + "+/",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeState(raw)
			require.ErrorIs(t, err, ErrBadState)
		})
	}
}
