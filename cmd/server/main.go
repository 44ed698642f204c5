package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/stratdesk/internal/config"
	"github.com/rpggio/stratdesk/internal/crypto"
	"github.com/rpggio/stratdesk/internal/docstore"
	"github.com/rpggio/stratdesk/internal/kv"
	"github.com/rpggio/stratdesk/internal/mcp"
	"github.com/rpggio/stratdesk/internal/redisstore"
	"github.com/rpggio/stratdesk/internal/seed"
	"github.com/rpggio/stratdesk/internal/sqlstore"
	"github.com/rpggio/stratdesk/internal/store"
	"github.com/rpggio/stratdesk/internal/transport"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backing, closeBacking, err := openBacking(ctx, cfg)
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer closeBacking()
	if cfg.Store.Namespace != "" {
		backing = kv.Namespace(backing, cfg.Store.Namespace)
	}

	collections := store.New(docstore.New(backing, logger))
	if cfg.Store.Seed {
		if _, err := seed.Apply(ctx, collections, logger); err != nil {
			logger.Error("failed to seed store", "error", err)
			os.Exit(1)
		}
	}

	policy, err := cfg.DeletePolicy()
	if err != nil {
		logger.Error("invalid delete policy", "error", err)
		os.Exit(1)
	}
	opts := store.ServiceOptions{DeletePolicy: policy, Logger: logger}
	if cfg.Crypto.MasterKeyB64 != "" {
		manager, err := crypto.NewManagerFromBase64(cfg.Crypto.MasterKeyID, cfg.Crypto.MasterKeyB64)
		if err != nil {
			logger.Error("invalid master key", "error", err)
			os.Exit(1)
		}
		opts.Cipher = manager
	} else {
		logger.Warn("no master key configured; billing secret key is stored unsealed")
	}
	svc := store.NewServices(collections, opts)

	services := mcp.Services{
		Clients:       svc.Clients,
		Projects:      svc.Projects,
		Conversations: svc.Conversations,
		Packages:      svc.Packages,
		Billing:       svc.Billing,
		Agents:        svc.Agents,
		Settings:      svc.Settings,
	}
	mcpServer := mcp.NewServer(mcp.Config{
		Services: services,
		Version:  version,
		Logger:   logger,
	})

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(ctx, logger, mcpServer)
	} else {
		runHTTPMode(ctx, logger, mcpServer, services, cfg)
	}
}

// openBacking opens the configured key-value store and returns its closer.
func openBacking(ctx context.Context, cfg config.Config) (kv.Store, func(), error) {
	switch cfg.Store.Backend {
	case "memory":
		return kv.NewMemory(), func() {}, nil
	case "redis":
		s, err := redisstore.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		if err := ensureDBDir(cfg.DB.Driver, cfg.DB.DSN); err != nil {
			return nil, nil, err
		}
		s, err := sqlstore.Open(ctx, cfg.DB.Driver, cfg.DB.DSN)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	}
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or the context is canceled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutting down")
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server, services mcp.Services, cfg config.Config) {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := transport.NewServer(transport.Config{
		Services:       services,
		MCP:            mcpHandler,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "backend", cfg.Store.Backend)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(ctx, logger, httpServer)
}

func ensureDBDir(driver, dsn string) error {
	if driver != "sqlite" || dsn == ":memory:" || dsn == "" {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(ctx context.Context, logger *slog.Logger, server *http.Server) {
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
