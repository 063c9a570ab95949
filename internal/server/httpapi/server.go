// Package httpapi exposes the explorer operations over a small JSON API for
// the admin UI. Expected failures come back inside the response envelope;
// transport and configuration failures surface as 5xx.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/moviebase/mediavault/internal/logging"
	"github.com/moviebase/mediavault/internal/server/auth"
	"github.com/moviebase/mediavault/internal/server/explorer"
)

// Explorer is the slice of the explorer service the API consumes.
type Explorer interface {
	List(ctx context.Context, directory string) ([]explorer.StorageEntry, error)
	FileInfo(ctx context.Context, path string) (*explorer.StorageEntry, error)
	CreateFolder(ctx context.Context, parent, name string) (*explorer.StorageEntry, error)
	DeleteItem(ctx context.Context, path string) (*explorer.Result, error)
	RenameItem(ctx context.Context, oldPath, newPath string) (*explorer.Result, error)
	GenerateUploadURL(ctx context.Context, filename, contentType, directory string) (*explorer.UploadTicket, error)
	GetDownloadURL(ctx context.Context, path string, expires time.Duration, forceDownload bool) (string, error)
}

// Authorizer gates mutating operations by the acting admin's role.
type Authorizer interface {
	Authorize(ctx context.Context, adminID string, required auth.Level) error
}

type Server struct {
	address    string
	logger     logging.Logger
	explorer   Explorer
	authorizer Authorizer
	jwtSecret  []byte
}

func NewServer(address string, logger logging.Logger, ex Explorer, az Authorizer, secretKey string) *Server {
	return &Server{
		address:    address,
		logger:     logger.With("module", "httpapi"),
		explorer:   ex,
		authorizer: az,
		jwtSecret:  []byte(secretKey),
	}
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.Handle("GET /api/files", s.withAuth(http.HandlerFunc(s.handleList)))
	mux.Handle("GET /api/files/info", s.withAuth(http.HandlerFunc(s.handleFileInfo)))
	mux.Handle("POST /api/files/folders", s.withAuth(http.HandlerFunc(s.handleCreateFolder)))
	mux.Handle("DELETE /api/files/item", s.withAuth(http.HandlerFunc(s.handleDeleteItem)))
	mux.Handle("POST /api/files/rename", s.withAuth(http.HandlerFunc(s.handleRename)))
	mux.Handle("POST /api/files/upload-url", s.withAuth(http.HandlerFunc(s.handleUploadURL)))
	mux.Handle("GET /api/files/download-url", s.withAuth(http.HandlerFunc(s.handleDownloadURL)))

	return mux
}
