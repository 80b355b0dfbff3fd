package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

var ErrBadState = errors.New("malformed state parameter")

// State is the login round-trip payload. Exactly one encoding is accepted:
// URL-safe base64 of a JSON object, padding optional. Anything else is
// rejected rather than guessed at.
type State struct {
	RedirectURI string `json:"redirectUri"`
}

// DecodeState parses a state parameter. An empty input yields a zero State.
func DecodeState(raw string) (State, error) {
	if raw == "" {
		return State{}, nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(raw, "="))
	if err != nil {
		return State{}, ErrBadState
	}

	var state State
	if err := json.Unmarshal(decoded, &state); err != nil {
		return State{}, ErrBadState
	}
	return state, nil
}

// EncodeState produces the canonical encoding of a State.
func EncodeState(state State) string {
	payload, _ := json.Marshal(state)
	return base64.RawURLEncoding.EncodeToString(payload)
}
