// Package server wires configuration, storage, the file service and the
// HTTP boundary together and runs them until the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/secretsvault/internal/common"
	"github.com/dmitrijs2005/secretsvault/internal/logging"
	"github.com/dmitrijs2005/secretsvault/internal/server/config"
	"github.com/dmitrijs2005/secretsvault/internal/server/health"
	"github.com/dmitrijs2005/secretsvault/internal/server/repositories/files"
	"github.com/dmitrijs2005/secretsvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/secretsvault/internal/server/rest"
	"github.com/dmitrijs2005/secretsvault/internal/server/secret"
	"github.com/dmitrijs2005/secretsvault/internal/server/services"
)

const staticKeyName = "encryption_key"

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.Server
}

// newSSMResolver is a seam for tests.
var newSSMResolver = func(ctx context.Context, region string) (secret.Resolver, error) {
	client, err := secret.NewSSMClient(ctx, region)
	if err != nil {
		return nil, err
	}
	return secret.NewSSMResolver(client), nil
}

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	app := &App{config: c, logger: logger}

	key, err := app.encryptionKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("encryption key: %w", err)
	}
	defer common.WipeByteArray(key)

	repo, checker, err := app.initStorage(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	svc, err := services.NewFileService(repo, key, logger)
	if err != nil {
		app.close()
		return nil, err
	}

	srv, err := rest.NewServer(rest.Options{
		Address:         c.EndpointAddrHTTP,
		SecretKey:       c.SecretKey,
		ShutdownTimeout: c.ShutdownTimeout,
	}, logger, svc, checker)
	if err != nil {
		app.close()
		return nil, err
	}
	app.server = srv

	return app, nil
}

func (app *App) encryptionKey(ctx context.Context) ([]byte, error) {
	if app.config.EncryptionKeyParam != "" {
		r, err := newSSMResolver(ctx, app.config.AWSRegion)
		if err != nil {
			return nil, err
		}
		app.logger.Info(ctx, "Loading encryption key from SSM", "parameter", app.config.EncryptionKeyParam)
		return secret.EncryptionKey(ctx, r, app.config.EncryptionKeyParam)
	}
	return secret.EncryptionKey(ctx, secret.StaticResolver{staticKeyName: app.config.EncryptionKey}, staticKeyName)
}

func (app *App) initStorage(ctx context.Context) (files.Repository, health.Checker, error) {
	switch app.config.StorageType {
	case config.StorageMemory:
		app.logger.Warn(ctx, "Using in-memory storage, data is lost on restart")
		return files.NewMemoryRepository(), health.StaticChecker{Storage: config.StorageMemory}, nil

	case config.StoragePostgres:
		db, err := openDB(app.config.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		app.db = db

		m, err := repomanager.NewPostgresRepositoryManager(db)
		if err != nil {
			app.close()
			return nil, nil, err
		}
		if err := m.RunMigrations(ctx, db); err != nil {
			app.close()
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		return m.Files(db), health.NewDBChecker(db, 2*time.Second), nil

	default:
		return nil, nil, fmt.Errorf("unknown storage type %q", app.config.StorageType)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.close()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageType)

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server stopped", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}

func (app *App) close() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "close database", "error", err)
	}
	app.db = nil
}
