package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gatehttp "github.com/avelkon/bucketgate/http"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	gatehttp.WriteError(rec, http.StatusUnauthorized, "Access token required")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	// Exactly one field: the generic message.
	assert.Equal(t, map[string]string{"error": "Access token required"}, body)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	err := gatehttp.WriteJSON(rec, http.StatusOK, map[string]string{"url": "https://signed.example/x"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url":"https://signed.example/x"}`, rec.Body.String())
}
