package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/yoonseo-dev/tinytunes/internal/category"
	"github.com/yoonseo-dev/tinytunes/internal/config"
	"github.com/yoonseo-dev/tinytunes/internal/game"
	"github.com/yoonseo-dev/tinytunes/internal/item"
	"github.com/yoonseo-dev/tinytunes/internal/musicquiz"
	"github.com/yoonseo-dev/tinytunes/internal/track"
	"github.com/yoonseo-dev/tinytunes/internal/upload"
	"github.com/yoonseo-dev/tinytunes/internal/user"
)

// Handlers bundles the per-domain HTTP handlers the server mounts.
type Handlers struct {
	Game       *game.Handlers
	Track      *track.Handlers
	Category   *category.Handlers
	Item       *item.Handlers
	MusicQuiz  *musicquiz.Handlers
	User       *user.Handlers
	AdminAuth  *user.AdminHandlers
	Upload     *upload.Handlers
	AuthFilter func(http.Handler) http.Handler
}

// NewHTTPServer wires every route behind the auth filter and CORS.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, rdb *redis.Client, h Handlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), pool, rdb); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	// Gameplay
	mux.HandleFunc("/v1/quiz/question", h.Game.HandleQuestion)
	mux.HandleFunc("/v1/quiz/answer", h.Game.HandleAnswer)

	// Client-facing catalogue
	mux.HandleFunc("/v1/categories", h.Category.HandleList)
	mux.HandleFunc("/v1/categories/{id}/items", h.Item.HandleListByCategory)
	mux.HandleFunc("/v1/items/random", h.Item.HandleRandom)
	mux.HandleFunc("/v1/items/search", h.Item.HandleSearch)

	// Song quizzes
	mux.HandleFunc("/v1/music-quizzes/random", h.MusicQuiz.HandleRandom)
	mux.HandleFunc("/v1/music-quizzes/game/{id}", h.MusicQuiz.HandleGame)
	mux.HandleFunc("/v1/music-quizzes/check-answer", h.MusicQuiz.HandleCheckAnswer)

	// Users
	mux.HandleFunc("/v1/users/register", h.User.HandleRegister)

	// Admin
	mux.HandleFunc("/v1/admin/auth/login", h.AdminAuth.HandleLogin)
	mux.HandleFunc("/v1/admin/tracks", h.Track.HandleCollection)
	mux.HandleFunc("/v1/admin/tracks/{id}", h.Track.HandleUpdate)
	mux.HandleFunc("/v1/admin/categories", h.Category.HandleAdminCollection)
	mux.HandleFunc("/v1/admin/categories/{id}", h.Category.HandleAdminByID)
	mux.HandleFunc("/v1/admin/categories/{id}/image", h.Category.HandleAdminSetImage)
	mux.HandleFunc("/v1/admin/categories/{id}/items", h.Item.HandleAdminBulkCreate)
	mux.HandleFunc("/v1/admin/items", h.Item.HandleAdminCreate)
	mux.HandleFunc("/v1/admin/items/bulk", h.Item.HandleAdminBulkCreateByName)
	mux.HandleFunc("/v1/admin/items/{id}", h.Item.HandleAdminByID)
	mux.HandleFunc("/v1/admin/music-quizzes", h.MusicQuiz.HandleAdminCollection)
	mux.HandleFunc("/v1/admin/music-quizzes/{id}", h.MusicQuiz.HandleAdminByID)
	mux.HandleFunc("/v1/admin/users", h.User.HandleAdminList)
	mux.HandleFunc("/v1/admin/users/{id}", h.User.HandleAdminGet)
	mux.HandleFunc("/v1/admin/users/{id}/allowed-categories", h.User.HandleAllowedCategories)
	mux.HandleFunc("/v1/admin/users/{id}/deactivate", h.User.HandleDeactivate)
	mux.HandleFunc("/v1/admin/images", h.Upload.HandleUpload)

	var handler http.Handler = mux
	if h.AuthFilter != nil {
		handler = h.AuthFilter(handler)
	}
	handler = corsMiddleware(cfg.CORS)(handler)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, rdb *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	return rdb.Ping(ctx).Err()
}

func corsMiddleware(cfg config.CORS) func(http.Handler) http.Handler {
	allowedOrigins := make(map[string]struct{}, len(cfg.AllowedOrigins))
	allowAll := false
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowedOrigins[o] = struct{}{}
	}
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				_, ok := allowedOrigins[origin]
				if ok || allowAll {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Vary", "Origin")
					if cfg.AllowCredentials {
						w.Header().Set("Access-Control-Allow-Credentials", "true")
					}
				}
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
