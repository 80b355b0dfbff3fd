package oauthx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrInvalidGrant)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	body := decodeEnvelope(t, rec)
	require.Equal(t, "invalid_grant", body["error"])
	require.NotEmpty(t, body["error_description"])
}

func TestWriteErrorCollapsesUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("sql: connection reset"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeEnvelope(t, rec)
	require.Equal(t, "server_error", body["error"])
	require.NotContains(t, body["error_description"], "sql")
}

func TestWriteErrorNilTypedError(t *testing.T) {
	// A nil *Error assigned to an error interface is non-nil; WriteError
	// must treat it as server_error rather than dereferencing it.
	var err error = (*Error)(nil)
	require.Error(t, err)

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { WriteError(rec, err) })

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "server_error", decodeEnvelope(t, rec)["error"])
}
