// Package server wires the MediaVault server together: object store gateway,
// explorer service, admin role store and the HTTP API, with graceful
// shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/moviebase/mediavault/internal/logging"
	"github.com/moviebase/mediavault/internal/server/auth"
	"github.com/moviebase/mediavault/internal/server/config"
	"github.com/moviebase/mediavault/internal/server/explorer"
	"github.com/moviebase/mediavault/internal/server/httpapi"
	"github.com/moviebase/mediavault/internal/server/objstore"
	"github.com/moviebase/mediavault/internal/server/shared/db"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	explorer   *explorer.Service
	authorizer *auth.Authorizer
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	rm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	gw, err := objstore.NewS3Gateway(context.Background(), objstore.Options{
		Region:       c.S3Region,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
		Bucket:       c.S3Bucket,
		BaseEndpoint: c.S3BaseEndpoint,
		UsePathStyle: c.S3UsePathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("object store init error: %w", err)
	}

	ex := explorer.NewService(gw, logger, explorer.Options{
		PublicBaseURL: c.PublicBaseURL,
		PresignExpiry: c.PresignExpiry,
	})

	az := auth.NewAuthorizer(rm.Admins())

	return &App{config: c, logger: logger, explorer: ex, authorizer: az}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.explorer, app.authorizer, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
