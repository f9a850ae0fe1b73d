package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/pantry-tracker/internal/auth"
	"github.com/rogerio-castellano/pantry-tracker/internal/config"
	"github.com/rogerio-castellano/pantry-tracker/internal/db"
	"github.com/rogerio-castellano/pantry-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/pantry-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/pantry-tracker/internal/http/router"
	"github.com/rogerio-castellano/pantry-tracker/internal/inventory"
	"github.com/rogerio-castellano/pantry-tracker/internal/llm"
	"github.com/rogerio-castellano/pantry-tracker/internal/logger"
	"github.com/rogerio-castellano/pantry-tracker/internal/metrics"
	"github.com/rogerio-castellano/pantry-tracker/internal/recipes"
	"github.com/rogerio-castellano/pantry-tracker/internal/redissvc"
	"github.com/rogerio-castellano/pantry-tracker/internal/repo"
	"go.uber.org/zap"
)

// @title Pantry Tracker API
// @version 1.0
// @description Shared pantry inventory with live updates and recipe suggestions.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}

	lg := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.App.Env == "development",
	})
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil {
		lg.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	items, users, feed, cleanup, err := openStore(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer cleanup()

	store := inventory.NewStore(items, feed, lg.Named("inventory"),
		inventory.WithMetrics(m),
		inventory.WithResyncInterval(cfg.Inventory.ResyncInterval),
	)

	if cfg.LLM.APIKey == "" {
		lg.Warn("no generation credential configured, recipe requests will fail")
	}
	gen := llm.NewClient(llm.Config{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		BaseURL: cfg.LLM.BaseURL,
		Timeout: cfg.LLM.Timeout,
	}, nil)

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	visitors := rl.NewVisitors(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.VisitorIdle)
	go visitors.StartVisitorCleanupLoop(ctx, time.Minute)

	handlers.SetLogger(lg.Named("http"))
	handlers.SetStore(store)
	handlers.SetUserRepo(users)
	handlers.SetTokens(tokens)
	handlers.SetRecipeService(recipes.NewService(gen, lg.Named("recipes"), m))
	handlers.SetExpiringWithin(cfg.Inventory.ExpiringWithin)

	if err := store.Start(ctx); err != nil {
		lg.Warn("change feed unavailable, inventory reads may lag other writers", zap.Error(err))
	}
	if _, err := store.Refresh(ctx); err != nil {
		lg.Warn("initial inventory load failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: router.NewRouter(router.Dependencies{
			Tokens:   tokens,
			Visitors: visitors,
			Metrics:  m,
			Logger:   lg.Named("access"),
		}),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("server running", zap.String("addr", cfg.Server.Addr), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore picks the item and user repositories and the change feed for the
// configured driver. cleanup releases whatever was opened.
func openStore(ctx context.Context, cfg *config.Config, lg *zap.Logger) (repo.ItemRepository, repo.UserRepository, inventory.Feed, func(), error) {
	if cfg.Store.Driver == config.DriverMemory {
		lg.Info("using in-memory store, data is lost on restart")
		return repo.NewInMemoryItemRepository(), repo.NewInMemoryUserRepository(), inventory.NewLocalFeed(), func() {}, nil
	}

	database, err := db.Connect(cfg.Database.URL)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("could not connect to database: %w", err)
	}
	if err := db.Migrate(database, lg); err != nil {
		_ = database.Close()
		return nil, nil, nil, nil, err
	}

	cleanup := func() { _ = database.Close() }
	var feed inventory.Feed = inventory.NewLocalFeed()

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rf := redissvc.NewFeed(rdb, cfg.Redis.Channel, lg.Named("feed"))
		if err := rf.Ping(ctx); err != nil {
			_ = rdb.Close()
			_ = database.Close()
			return nil, nil, nil, nil, fmt.Errorf("could not connect to Redis: %w", err)
		}
		feed = rf
		cleanup = func() {
			_ = rdb.Close()
			_ = database.Close()
		}
	} else {
		lg.Warn("no redis address configured, changes from other processes arrive only on resync")
	}

	return repo.NewPostgresItemRepository(database), repo.NewPostgresUserRepository(database), feed, cleanup, nil
}
