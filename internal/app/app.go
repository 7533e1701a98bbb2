package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/yoonseo-dev/tinytunes/internal/category"
	"github.com/yoonseo-dev/tinytunes/internal/config"
	"github.com/yoonseo-dev/tinytunes/internal/db/repository"
	"github.com/yoonseo-dev/tinytunes/internal/game"
	"github.com/yoonseo-dev/tinytunes/internal/item"
	"github.com/yoonseo-dev/tinytunes/internal/logging"
	"github.com/yoonseo-dev/tinytunes/internal/musicquiz"
	"github.com/yoonseo-dev/tinytunes/internal/server"
	"github.com/yoonseo-dev/tinytunes/internal/storage"
	"github.com/yoonseo-dev/tinytunes/internal/track"
	"github.com/yoonseo-dev/tinytunes/internal/upload"
	"github.com/yoonseo-dev/tinytunes/internal/user"
)

// Application aggregates shared infrastructure (DB, cache, object store, HTTP
// server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps config, logger, Postgres, Redis, object storage and the HTTP
// server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	objectStore, err := storage.NewObjectStore(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("connect object storage: %w", err)
	}

	trackRepo := repository.NewTrackRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	itemRepo := repository.NewItemRepository(pool)
	musicQuizRepo := repository.NewMusicQuizRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	trackSvc := track.NewService(trackRepo)
	categorySvc := category.NewService(categoryRepo, category.NewListCache(redisClient, 0), logger)
	itemSvc := item.NewService(itemRepo)
	musicQuizSvc := musicquiz.NewService(musicQuizRepo)
	userSvc := user.NewService(userRepo)
	uploadSvc := upload.NewService(objectStore, logger)

	gameSvc := game.NewService(
		trackRepo,
		game.NewCodec(cfg.Game.TokenTTL, nil),
		game.ServiceOptions{
			ChoiceCount:    cfg.Game.ChoiceCount,
			PreviewSeconds: cfg.Game.PreviewSeconds,
		},
	)

	adminTokens := user.NewAdminTokenManager([]byte(cfg.Security.JWTSecret), cfg.Security.AdminSessionTTL, cfg.Name)

	handlers := server.Handlers{
		Game:       game.NewHandlers(gameSvc, logger),
		Track:      track.NewHandlers(trackSvc, logger),
		Category:   category.NewHandlers(categorySvc, logger),
		Item:       item.NewHandlers(itemSvc, categorySvc, logger),
		MusicQuiz:  musicquiz.NewHandlers(musicQuizSvc, logger),
		User:       user.NewHandlers(userSvc, logger),
		AdminAuth:  user.NewAdminHandlers(cfg.Security.AdminPasswordHash, adminTokens, logger),
		Upload:     upload.NewHandlers(uploadSvc, logger),
		AuthFilter: user.Middleware(userSvc, adminTokens, cfg.Security.AdminAPIKey, logger),
	}

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, handlers)

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
