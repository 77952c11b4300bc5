// Package rest exposes the file service over HTTP with gin. Every response,
// successful or not, uses the same JSON envelope carrying a request id and
// timestamp.
package rest

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/secretsvault/internal/logging"
	"github.com/dmitrijs2005/secretsvault/internal/server/health"
	"github.com/dmitrijs2005/secretsvault/internal/server/models"
	"github.com/gin-gonic/gin"
)

// FileService is the vault core as seen from the HTTP boundary.
type FileService interface {
	GetUserFiles(ctx context.Context, userID string) ([]*models.File, error)
	AddFile(ctx context.Context, userID, name, plaintext string) (string, error)
	GetFile(ctx context.Context, userID, id string) (*models.File, error)
	DeleteFile(ctx context.Context, userID, id string) (*models.File, error)
	GenerateShareLink(ctx context.Context, userID, id string) (string, error)
	GetFileByShareLink(ctx context.Context, id, code string) (*models.File, error)
}

type Options struct {
	Address         string
	SecretKey       string
	ShutdownTimeout time.Duration
}

type Server struct {
	address         string
	shutdownTimeout time.Duration
	jwtSecret       []byte

	files  FileService
	health health.Checker
	logger logging.Logger
	engine *gin.Engine
}

func NewServer(opts Options, l logging.Logger, fs FileService, hc health.Checker) (*Server, error) {
	if fs == nil {
		return nil, errors.New("file service is required")
	}
	if opts.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if hc == nil {
		hc = health.StaticChecker{Storage: "unknown"}
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		address:         opts.Address,
		shutdownTimeout: opts.ShutdownTimeout,
		jwtSecret:       []byte(opts.SecretKey),
		files:           fs,
		health:          hc,
		logger:          l.With("module", "http_server"),
	}
	s.engine = s.routes()
	return s, nil
}

// Handler returns the routed gin engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(
		requestID(),
		gin.CustomRecoveryWithWriter(io.Discard, s.recoverPanic),
		s.accessLog(),
	)
	r.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, CodeNotFound, "route not found")
	})

	v1 := r.Group("/api/v1")

	v1.GET("/health/live", s.live)
	v1.GET("/health/ready", s.ready)

	files := v1.Group("/files")
	files.GET("/:id/share", s.redeemShareLink)

	authed := files.Group("", s.authenticate())
	authed.GET("", s.listFiles)
	authed.POST("", s.addFile)
	authed.GET("/:id", s.getFile)
	authed.DELETE("/:id", s.deleteFile)
	authed.POST("/:id/share", s.createShareLink)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-stopped
}
