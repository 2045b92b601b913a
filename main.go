package main

import (
	"context"
	"errors"
	"fmt"
	"kanban/ai"
	"kanban/cache"
	"kanban/config"
	"kanban/database"
	"kanban/database/sqlite"
	"kanban/handlers"
	"kanban/logging"
	"kanban/middleware"
	"kanban/service"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("KANBAN_CONFIG"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if _, err := logging.Init(cfg.LogLevel, cfg.LogFormat, os.Stderr); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := []service.BoardsOption{service.WithHistoryLimit(cfg.HistoryLimit)}
	if cfg.RedisURL != "" {
		rc, err := cache.Dial(ctx, cfg.RedisURL, cfg.CachePrefix, cfg.CacheTTL)
		if err != nil {
			return err
		}
		defer rc.Close()
		opts = append(opts, service.WithCache(rc))
		slog.Info("board cache enabled", "ttl", cfg.CacheTTL)
	}

	boards := service.NewBoards(store, opts...)
	app := handlers.App{
		Projects: service.NewProjects(store, boards),
		Boards:   boards,
		Commands: service.NewCommands(boards, newInterpreter(cfg)),
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	handlers.RegisterRoutes(r.Group("/api/kanban"), app)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      c.Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", server.Addr, "storage", cfg.StorageDriver)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (service.Store, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		db, err := database.Connect(connectCtx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Migrate(connectCtx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return db, db.Close, nil
	default:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	}
}

// newInterpreter returns nil when no AI key is configured, which disables
// natural-language commands.
func newInterpreter(cfg *config.Config) service.Interpreter {
	client, err := ai.NewClient(cfg.AIAPIKey, ai.WithBaseURL(cfg.AIBaseURL), ai.WithModel(cfg.AIModel))
	if err != nil {
		slog.Warn("natural-language commands disabled", "reason", err)
		return nil
	}
	return client
}
