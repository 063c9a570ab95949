package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New(ts.URL, "test-token", 5*time.Second)
}

func TestList_SendsBearerAndDecodesData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/files", r.URL.Path)
		assert.Equal(t, "movies", r.URL.Query().Get("dir"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{"name": "posters", "path": "movies/posters/", "is_directory": true},
				{"name": "a.txt", "path": "movies/a.txt", "size": 12},
			},
		})
	})

	entries, err := c.List(context.Background(), "movies")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].IsDirectory)
	assert.Equal(t, int64(12), entries[1].Size)
}

func TestCreateFolder_ErrorStatusSurfacesMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "already exists: posters"})
	})

	_, err := c.CreateFolder(context.Background(), "movies", "posters")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "already exists")
}

func TestDeleteItem_BenignNotFoundIsNotAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "ghost.txt not found"})
	})

	msg, err := c.DeleteItem(context.Background(), "ghost.txt")
	require.NoError(t, err)
	assert.Contains(t, msg, "not found")
}

func TestUploadTicket(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "poster.jpg", req["filename"])
		assert.Equal(t, "image/jpeg", req["content_type"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]string{"url": "https://signed.example/put", "path": "movies/poster.jpg"},
		})
	})

	url, path, err := c.UploadTicket(context.Background(), "poster.jpg", "image/jpeg", "movies")
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/put", url)
	assert.Equal(t, "movies/poster.jpg", path)
}

func TestDownloadURL_QueryParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "movies/a.txt", q.Get("path"))
		assert.Equal(t, "1m0s", q.Get("expires"))
		assert.Equal(t, "true", q.Get("force"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]string{"url": "https://signed.example/get"},
		})
	})

	url, err := c.DownloadURL(context.Background(), "movies/a.txt", time.Minute, true)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/get", url)
}

func TestRequest_NonJSONBodyIsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	})

	_, err := c.List(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
