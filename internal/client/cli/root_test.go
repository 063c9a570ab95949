package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviebase/mediavault/internal/client/config"
)

func runCommand(t *testing.T, handler http.HandlerFunc, args ...string) (string, error) {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	cfg = &config.Config{ServerBaseURL: ts.URL, AccessToken: "tok", RequestTimeout: 5 * time.Second}

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestLs(t *testing.T) {
	out, err := runCommand(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{"name": "posters", "path": "movies/posters/", "is_directory": true},
				{"name": "a.txt", "path": "movies/a.txt", "size": 2048},
			},
		})
	}, "ls", "movies")

	require.NoError(t, err)
	assert.Contains(t, out, "posters/")
	assert.Contains(t, out, "a.txt")
	assert.Contains(t, out, "2.0 KiB")
}

func TestMkdir(t *testing.T) {
	out, err := runCommand(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"name": "posters", "path": "movies/posters/", "is_directory": true},
		})
	}, "mkdir", "posters", "-d", "movies")

	require.NoError(t, err)
	assert.Contains(t, out, "created movies/posters/")
}

func TestRm_SkipConfirm(t *testing.T) {
	out, err := runCommand(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "deleted 3 items"})
	}, "rm", "movies/drafts/", "--confirm")

	require.NoError(t, err)
	assert.Contains(t, out, "deleted 3 items")
}

func TestMv_ServerRefusal(t *testing.T) {
	_, err := runCommand(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "validation failed: cannot move a directory into itself"})
	}, "mv", "a/", "a/b/")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot move a directory into itself")
}

func TestUrl_PassesExpiresAndForce(t *testing.T) {
	out, err := runCommand(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "movies/a.txt", q.Get("path"))
		assert.Equal(t, "2m0s", q.Get("expires"))
		assert.Equal(t, "true", q.Get("force"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]string{"url": "https://signed.example/get"},
		})
	}, "url", "movies/a.txt", "--expires", "2m", "--download")

	require.NoError(t, err)
	assert.Contains(t, out, "https://signed.example/get")
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "1.0 KiB", formatSize(1024))
	assert.Equal(t, "1.5 MiB", formatSize(3*1024*1024/2))
}
