package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/creatorstack/tracker/internal/config"
	"github.com/creatorstack/tracker/internal/domain"
	"github.com/creatorstack/tracker/internal/engine"
	"github.com/creatorstack/tracker/internal/server"
	"github.com/creatorstack/tracker/internal/store/memory"
	"github.com/creatorstack/tracker/internal/store/postgres"
	redisstore "github.com/creatorstack/tracker/internal/store/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	logLevel := os.Getenv("TRACKER_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("TRACKER_LOG_FORMAT")
	if logFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Select the task store backend.
	var tasks domain.TaskRepository
	switch cfg.Store {
	case config.StorePostgres:
		if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
			return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
		}
		store, pgErr := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
		if pgErr != nil {
			return pgErr
		}
		defer store.Close()
		tasks = store.Tasks()
		log.Info().Str("store", cfg.Store).Msg("using postgres task store")
	default:
		tasks = memory.NewTaskStore()
		log.Info().Str("store", cfg.Store).Msg("using in-memory task store")
	}

	// Connect the event publisher when Redis is configured.
	var pubsub *redisstore.PubSub
	opts := []engine.Option{}
	if cfg.Redis.Addr != "" {
		var redisErr error
		pubsub, redisErr = redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if redisErr != nil {
			return redisErr
		}
		defer func() { _ = pubsub.Close() }()
		opts = append(opts, engine.WithPublisher(pubsub))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("task event publisher enabled")
	}

	eng := engine.New(tasks, opts...)

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// At debug level, tap the event channel and echo every published
	// mutation into the log.
	if pubsub != nil && zerolog.GlobalLevel() <= zerolog.DebugLevel {
		events, stopTap, tapErr := pubsub.SubscribeTaskEvents(ctx)
		if tapErr != nil {
			log.Warn().Err(tapErr).Msg("task event tap unavailable")
		} else {
			defer stopTap()
			go func() {
				for ev := range events {
					log.Debug().Str("event", ev.Type).Msg("task event")
				}
			}()
		}
	}

	srv := server.New(ctx, cfg, eng)

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("stopped")
	return nil
}
