package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors types.Envelope with the payload left raw so each test can
// decode it into whatever shape it expects.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, rec.Code, env.StatusCode, "statusCode field must match the HTTP status")
	return env
}

func (e envelope) dataObject(t *testing.T) map[string]any {
	t.Helper()

	var data map[string]any
	require.NoError(t, json.Unmarshal(e.Data, &data))
	return data
}

func (e envelope) dataArray(t *testing.T) []map[string]any {
	t.Helper()

	var data []map[string]any
	require.NoError(t, json.Unmarshal(e.Data, &data))
	return data
}
