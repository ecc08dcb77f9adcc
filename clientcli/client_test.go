package clientcli_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelkon/bucketgate/clientcli"
)

func newTestClient(t *testing.T, handler http.Handler) *clientcli.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := clientcli.New(&clientcli.Profile{
		Name:     "test",
		Endpoint: srv.URL,
		Token:    "test-token",
	})
	require.NoError(t, err)
	return client
}

func TestNew_RequiresToken(t *testing.T) {
	_, err := clientcli.New(&clientcli.Profile{Endpoint: "http://localhost:3001"})
	assert.ErrorIs(t, err, clientcli.ErrTokenRequired)

	_, err = clientcli.New(nil)
	assert.ErrorIs(t, err, clientcli.ErrConfigRequired)
}

func TestRequestUploadURL(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/get-presigned-url", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a.jpg", body["fileName"])
		assert.Equal(t, "image/jpeg", body["fileType"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://signed.example/put"})
	}))

	url, err := client.RequestUploadURL(context.Background(), "a.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/put", url)
}

func TestRequestUploadURL_ServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid or expired token"})
	}))

	_, err := client.RequestUploadURL(context.Background(), "a.jpg", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid or expired token")
}

func TestListFiles(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/list-files", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"key":"u1/1_x.jpg","url":"https://signed.example/x"}]`))
	}))

	entries, err := client.ListFiles(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "u1/1_x.jpg", entries[0].Key)
	assert.Equal(t, "https://signed.example/x", entries[0].URL)
}

func TestUpload_RoundTrip(t *testing.T) {
	local := filepath.Join(t.TempDir(), "hello.txt")
	require.NoError(t, os.WriteFile(local, []byte("hello world"), 0o600))

	var uploaded []byte
	var uploadContentType string

	mux := http.NewServeMux()
	var serverURL string
	mux.HandleFunc("POST /get-presigned-url", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"url": serverURL + "/signed-put/u1/1_hello.txt"})
	})
	mux.HandleFunc("PUT /signed-put/", func(w http.ResponseWriter, r *http.Request) {
		// The presigned PUT must not carry the API bearer token.
		assert.Empty(t, r.Header.Get("Authorization"))
		uploadContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		uploaded = body
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	serverURL = srv.URL

	client, err := clientcli.New(&clientcli.Profile{Endpoint: srv.URL, Token: "test-token"})
	require.NoError(t, err)

	result, err := client.Upload(context.Background(), clientcli.UploadOptions{LocalPath: local})
	require.NoError(t, err)

	assert.Equal(t, "hello.txt", result.FileName)
	assert.Equal(t, int64(11), result.Size)
	assert.Equal(t, "hello world", string(uploaded))
	assert.Contains(t, uploadContentType, "text/plain")
}

func TestUpload_RequiresPath(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())

	_, err := client.Upload(context.Background(), clientcli.UploadOptions{})
	assert.ErrorIs(t, err, clientcli.ErrEmptyPath)
}
