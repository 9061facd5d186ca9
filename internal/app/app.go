// Package app holds the process wiring shared by the MCP server binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchmcp/internal/config"
	logpkg "github.com/kailas-cloud/searchmcp/internal/logger"
	"github.com/kailas-cloud/searchmcp/internal/metrics"
	chiTransport "github.com/kailas-cloud/searchmcp/internal/transport/chi"
	healthuc "github.com/kailas-cloud/searchmcp/internal/usecase/health"
	"github.com/kailas-cloud/searchmcp/internal/version"
)

// App is a configured process: settings, logger and registered metrics.
type App struct {
	Name   string
	Env    string
	Config config.Config
	Logger *zap.Logger
}

// New loads configuration for the current ENV and builds the logger.
func New(name string) (*App, error) {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logger = logger.With(zap.String("server", name))

	metrics.Register()

	logger.Info("Starting MCP server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("admin_port", cfg.Admin.Port),
	)

	return &App{Name: name, Env: env, Config: cfg, Logger: logger}, nil
}

// Sync flushes buffered log entries.
func (a *App) Sync() {
	_ = a.Logger.Sync()
}

// Run serves server over stdin/stdout until the client disconnects or the
// process receives SIGINT/SIGTERM. The admin HTTP surface runs alongside
// when admin.port is set.
func (a *App) Run(server *mcp.Server, health *healthuc.Service) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	admin := a.adminServer(health)
	if admin != nil {
		go func() {
			a.Logger.Info("Starting admin HTTP server", zap.String("addr", admin.Addr))
			if err := admin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.Logger.Error("Admin HTTP server error", zap.Error(err))
			}
		}()
	}

	a.Logger.Info("Serving MCP over stdio")
	err := server.Run(ctx, &mcp.StdioTransport{})

	if admin != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(a.Config.Admin.ShutdownSec)*time.Second)
		defer cancel()
		if err := admin.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error("Error during admin shutdown", zap.Error(err))
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("mcp server: %w", err)
	}
	a.Logger.Info("Server stopped gracefully")
	return nil
}

// adminServer returns nil when the admin surface is disabled.
func (a *App) adminServer(health *healthuc.Service) *http.Server {
	if a.Config.Admin.Port == 0 {
		return nil
	}
	srv := chiTransport.NewServer(health, a.Logger)
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", a.Config.Admin.Port),
		Handler:           srv.Router(a.Config.Admin.APIKeys),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
