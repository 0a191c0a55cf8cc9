package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/pokedex/cliparse"
	"github.com/danielhkuo/pokedex/middleware"
	"github.com/danielhkuo/pokedex/models"
	"github.com/danielhkuo/pokedex/observe"
	"github.com/danielhkuo/pokedex/router"
	"github.com/danielhkuo/pokedex/store"
	"github.com/danielhkuo/pokedex/store/mongostore"
	"github.com/danielhkuo/pokedex/store/sqlstore"
)

const (
	serviceName     = "pokedex"
	serviceVersion  = "1.0.0"
	connectTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg.Level()))

	if err := run(cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg cliparse.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := observe.InitProvider(serviceName, serviceVersion)
	if err != nil {
		return fmt.Errorf("metrics setup failed: %w", err)
	}
	defer provider.Shutdown(context.Background())

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	slog.Info("Database ready", "type", cfg.DatabaseType)

	// Create router
	mux := router.NewRouter(st, cfg, provider.Handler())

	server := &http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		// Wait for Ctrl-C, SIGTERM or a listener failure
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("Shutting down")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("Server closed")
	return nil
}

// openStore connects to the backend selected by DATABASE_TYPE.
func openStore(ctx context.Context, cfg cliparse.Config) (store.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch cfg.DatabaseType {
	case models.DatabaseMongo:
		return mongostore.Open(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	case models.DatabasePostgres, models.DatabaseSQLite:
		return sqlstore.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
}

// newLogger writes text to terminals and JSON everywhere else.
func newLogger(level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
