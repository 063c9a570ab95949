package explorer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviebase/mediavault/internal/common"
)

func TestGenerateUploadURL(t *testing.T) {
	svc := newTestService(t, newFakeGateway(100), Options{})

	ticket, err := svc.GenerateUploadURL(context.Background(), "poster.jpg", "image/jpeg", "movies")
	require.NoError(t, err)
	assert.Equal(t, "movies/poster.jpg", ticket.Path)
	assert.Contains(t, ticket.URL, "movies/poster.jpg")
}

func TestGenerateUploadURL_Validation(t *testing.T) {
	svc := newTestService(t, newFakeGateway(100), Options{})
	ctx := context.Background()

	for _, bad := range []string{"", "../escape.jpg", "a/b.jpg", ".."} {
		_, err := svc.GenerateUploadURL(ctx, bad, "image/jpeg", "movies")
		assert.ErrorIs(t, err, common.ErrorValidation, "filename %q", bad)
	}
}

func TestGenerateUploadURL_NoSilentOverwrite(t *testing.T) {
	gw := newFakeGateway(100)
	gw.put("movies/poster.jpg", 1)

	svc := newTestService(t, gw, Options{})

	_, err := svc.GenerateUploadURL(context.Background(), "poster.jpg", "image/jpeg", "movies")
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestGetDownloadURL_DirectoryRejected(t *testing.T) {
	svc := newTestService(t, newFakeGateway(100), Options{})

	_, err := svc.GetDownloadURL(context.Background(), "movies/", time.Minute, false)
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestGetDownloadURL_MissingObject(t *testing.T) {
	svc := newTestService(t, newFakeGateway(100), Options{})

	_, err := svc.GetDownloadURL(context.Background(), "ghost.jpg", time.Minute, false)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetDownloadURL_PrefersPublicBase(t *testing.T) {
	gw := newFakeGateway(100)
	gw.put("movies/poster.jpg", 1)

	svc := newTestService(t, gw, Options{PublicBaseURL: "https://cdn.example.com"})

	url, err := svc.GetDownloadURL(context.Background(), "movies/poster.jpg", time.Minute, false)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/movies/poster.jpg", url)
}

func TestGetDownloadURL_ForceDownloadSignsWithDisposition(t *testing.T) {
	gw := newFakeGateway(100)
	gw.put("movies/poster.jpg", 1)

	// Even with a public base configured, forcing a download needs the
	// signed URL so the disposition hint can ride along.
	svc := newTestService(t, gw, Options{PublicBaseURL: "https://cdn.example.com"})

	url, err := svc.GetDownloadURL(context.Background(), "movies/poster.jpg", time.Minute, true)
	require.NoError(t, err)
	assert.Contains(t, url, "store.test/get")
	assert.Contains(t, url, "attachment")
	assert.Contains(t, url, "poster.jpg")
}

func TestGetDownloadURL_SignedWhenNoPublicBase(t *testing.T) {
	gw := newFakeGateway(100)
	gw.put("movies/poster.jpg", 1)

	svc := newTestService(t, gw, Options{})

	url, err := svc.GetDownloadURL(context.Background(), "movies/poster.jpg", time.Minute, false)
	require.NoError(t, err)
	assert.Contains(t, url, "store.test/get")
	assert.NotContains(t, url, "disposition")
}
