package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviebase/mediavault/internal/common"
	"github.com/moviebase/mediavault/internal/logging"
	"github.com/moviebase/mediavault/internal/server/auth"
	"github.com/moviebase/mediavault/internal/server/explorer"
)

const testSecret = "test-secret"

type fakeExplorer struct {
	listEntries []explorer.StorageEntry
	listErr     error

	createErr error
	deleteRes *explorer.Result
	renameErr error
	ticket    *explorer.UploadTicket
	ticketErr error
	url       string
	urlErr    error
}

func (f *fakeExplorer) List(ctx context.Context, directory string) ([]explorer.StorageEntry, error) {
	return f.listEntries, f.listErr
}

func (f *fakeExplorer) FileInfo(ctx context.Context, path string) (*explorer.StorageEntry, error) {
	if len(f.listEntries) == 0 {
		return nil, common.ErrorNotFound
	}
	return &f.listEntries[0], nil
}

func (f *fakeExplorer) CreateFolder(ctx context.Context, parent, name string) (*explorer.StorageEntry, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &explorer.StorageEntry{Name: name, Path: parent + "/" + name + "/", IsDirectory: true}, nil
}

func (f *fakeExplorer) DeleteItem(ctx context.Context, path string) (*explorer.Result, error) {
	if f.deleteRes != nil {
		return f.deleteRes, nil
	}
	return &explorer.Result{Success: true}, nil
}

func (f *fakeExplorer) RenameItem(ctx context.Context, oldPath, newPath string) (*explorer.Result, error) {
	if f.renameErr != nil {
		return nil, f.renameErr
	}
	return &explorer.Result{Success: true, Entry: &explorer.StorageEntry{Path: newPath}}, nil
}

func (f *fakeExplorer) GenerateUploadURL(ctx context.Context, filename, contentType, directory string) (*explorer.UploadTicket, error) {
	if f.ticketErr != nil {
		return nil, f.ticketErr
	}
	return f.ticket, nil
}

func (f *fakeExplorer) GetDownloadURL(ctx context.Context, path string, expires time.Duration, forceDownload bool) (string, error) {
	return f.url, f.urlErr
}

type fakeAuthorizer struct {
	roles map[string]auth.Level
}

func (f *fakeAuthorizer) Authorize(ctx context.Context, adminID string, required auth.Level) error {
	level, ok := f.roles[adminID]
	if !ok {
		return common.ErrorUnauthorized
	}
	if level < required {
		return fmt.Errorf("%w: insufficient role", common.ErrorForbidden)
	}
	return nil
}

func newTestServer(t *testing.T, ex Explorer) *httptest.Server {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	az := &fakeAuthorizer{roles: map[string]auth.Level{
		"mod-1":   auth.LevelModerate,
		"admin-1": auth.LevelAdminister,
	}}
	srv := NewServer(":0", logger, ex, az, testSecret)
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path, adminID, body string) (*http.Response, envelope) {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)

	if adminID != "" {
		token, err := auth.GenerateToken(adminID, []byte(testSecret), time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestList_OK(t *testing.T) {
	ex := &fakeExplorer{listEntries: []explorer.StorageEntry{
		{Name: "movies", Path: "movies/", IsDirectory: true},
		{Name: "readme.txt", Path: "readme.txt", Size: 12},
	}}
	ts := newTestServer(t, ex)

	resp, env := doRequest(t, ts, http.MethodGet, "/api/files?dir=", "mod-1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}

func TestList_MissingToken(t *testing.T) {
	ts := newTestServer(t, &fakeExplorer{})

	resp, env := doRequest(t, ts, http.MethodGet, "/api/files", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestList_GarbageToken(t *testing.T) {
	ts := newTestServer(t, &fakeExplorer{})

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/files", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not.a.jwt")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestList_StorageUnavailable(t *testing.T) {
	ex := &fakeExplorer{listErr: fmt.Errorf("%w: boom", common.ErrorStorageUnavailable)}
	ts := newTestServer(t, ex)

	resp, _ := doRequest(t, ts, http.MethodGet, "/api/files", "mod-1", "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestCreateFolder_RoleGate(t *testing.T) {
	ts := newTestServer(t, &fakeExplorer{})

	resp, _ := doRequest(t, ts, http.MethodPost, "/api/files/folders", "mod-1", `{"directory":"movies","name":"posters"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doRequest(t, ts, http.MethodPost, "/api/files/folders", "unknown", `{"directory":"movies","name":"posters"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateFolder_Conflict(t *testing.T) {
	ex := &fakeExplorer{createErr: fmt.Errorf("%w: folder", common.ErrorAlreadyExists)}
	ts := newTestServer(t, ex)

	resp, env := doRequest(t, ts, http.MethodPost, "/api/files/folders", "mod-1", `{"directory":"movies","name":"posters"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestDeleteItem_RequiresAdminister(t *testing.T) {
	ts := newTestServer(t, &fakeExplorer{})

	resp, _ := doRequest(t, ts, http.MethodDelete, "/api/files/item?path=a.txt", "mod-1", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env := doRequest(t, ts, http.MethodDelete, "/api/files/item?path=a.txt", "admin-1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}

func TestDeleteItem_NotFoundIsEnvelope(t *testing.T) {
	ex := &fakeExplorer{deleteRes: &explorer.Result{Success: false, Message: "ghost.txt not found"}}
	ts := newTestServer(t, ex)

	resp, env := doRequest(t, ts, http.MethodDelete, "/api/files/item?path=ghost.txt", "admin-1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "benign not-found is not an HTTP error")
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "not found")
}

func TestUploadURL_Validation(t *testing.T) {
	ex := &fakeExplorer{ticketErr: fmt.Errorf("%w: bad name", common.ErrorValidation)}
	ts := newTestServer(t, ex)

	resp, _ := doRequest(t, ts, http.MethodPost, "/api/files/upload-url", "mod-1", `{"filename":"../x","content_type":"image/png","directory":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadURL_OK(t *testing.T) {
	ex := &fakeExplorer{ticket: &explorer.UploadTicket{URL: "https://signed", Path: "movies/poster.jpg"}}
	ts := newTestServer(t, ex)

	resp, env := doRequest(t, ts, http.MethodPost, "/api/files/upload-url", "mod-1", `{"filename":"poster.jpg","content_type":"image/jpeg","directory":"movies"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}

func TestDownloadURL_BadExpires(t *testing.T) {
	ts := newTestServer(t, &fakeExplorer{url: "https://signed"})

	resp, _ := doRequest(t, ts, http.MethodGet, "/api/files/download-url?path=a.txt&expires=nonsense", "mod-1", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth_NoAuth(t *testing.T) {
	ts := newTestServer(t, &fakeExplorer{})

	resp, err := ts.Client().Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
