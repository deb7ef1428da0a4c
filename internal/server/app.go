// Package server initializes and runs the authentication server. It
// opens the database, applies migrations, builds the token codec from
// configured key material and serves the HTTP API until shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campushub/backend/internal/logging"
	"github.com/campushub/backend/internal/server/auth"
	"github.com/campushub/backend/internal/server/config"
	"github.com/campushub/backend/internal/server/httpapi"
	"github.com/campushub/backend/internal/server/repositories/repomanager"
	"github.com/campushub/backend/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	router http.Handler
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	manager := repomanager.NewPostgresRepositoryManager()
	if err := manager.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	accessKeys, err := auth.ParseKeySet(c.AccessTokenPrivateKey, c.AccessTokenPublicKey, c.AccessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("access key error: %w", err)
	}
	refreshKeys, err := auth.ParseKeySet(c.RefreshTokenPrivateKey, c.RefreshTokenPublicKey, c.RefreshTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("refresh key error: %w", err)
	}

	codec, err := auth.NewCodec(accessKeys, refreshKeys)
	if err != nil {
		return nil, fmt.Errorf("codec error: %w", err)
	}

	authService := services.NewAuthService(db, manager, codec)
	router := httpapi.NewRouter(httpapi.NewHandler(authService, logger))

	return &App{config: c, logger: logger, db: db, router: router}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.router,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	return app.db.Close()
}
