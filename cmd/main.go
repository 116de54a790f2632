package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"portfolio-service/internal/api"
	"portfolio-service/internal/config"
	"portfolio-service/internal/repository"
	"portfolio-service/internal/service"
	"portfolio-service/internal/session"
	"portfolio-service/migrations"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func main() {
	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio content and owner service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create the schema and exit",
			RunE:  runMigrate,
		},
	)

	if err := root.Execute(); err != nil {
		logger.Fatal().Err(err).Msg("portfolio exited")
	}
}

func openStore(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := repository.Open(ctx, cfg.DBDriver, cfg.DBDSN, 10, 3*time.Second)
	if err != nil {
		return nil, err
	}
	if err := migrations.AutoMigrate(ctx, db, cfg.DBDriver, 3); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	db, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info().Str("driver", cfg.DBDriver).Msg("Schema is up to date")
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if cfg.UsesDevSecret() {
		logger.Warn().Str("env", cfg.Env).Msg("JWT_SECRET not set, signing tokens with the development key")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var sessions service.SessionStore
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		sessions = session.NewRedisStore(rdb)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("Session registry enabled")
	}

	var publisher service.EventPublisher = service.NopPublisher{}
	if w := config.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic); w != nil {
		defer w.Close()
		publisher = service.NewKafkaPublisher(w)
		logger.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("Change events enabled")
	}

	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	e := api.NewServer(api.ServerOptions{
		Owners:      service.NewOwnerService(repository.NewOwnerRepository(db), tokens, sessions),
		Projects:    service.NewProjectService(repository.NewProjectRepository(db), publisher),
		Blogs:       service.NewBlogService(repository.NewBlogRepository(db), publisher),
		Contacts:    service.NewContactService(repository.NewContactRepository(db), publisher),
		Tokens:      tokens,
		RateLimit:   cfg.RateLimit,
		RateBurst:   cfg.RateBurst,
		RequireAuth: cfg.RequireAuth,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("Starting portfolio-service")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info().Msg("Shutting down")
	return e.Shutdown(shutdownCtx)
}
