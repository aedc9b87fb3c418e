// Package main is the entrypoint for the newsdesk API server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/newsdesk/newsdesk/internal/auth"
	"github.com/newsdesk/newsdesk/internal/cache"
	"github.com/newsdesk/newsdesk/internal/config"
	"github.com/newsdesk/newsdesk/internal/handler"
	"github.com/newsdesk/newsdesk/internal/metrics"
	"github.com/newsdesk/newsdesk/internal/middleware"
	"github.com/newsdesk/newsdesk/internal/repository"
	"github.com/newsdesk/newsdesk/internal/server"
	"github.com/newsdesk/newsdesk/internal/service"
	"github.com/newsdesk/newsdesk/internal/views"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize storage
	var (
		userStore service.UserStore
		newsStore service.NewsStore
		viewStore views.Store
		healthDB  handler.HealthChecker
	)

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
			logger.Error(
				"failed to run migrations",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			)
			os.Exit(1)
		}

		repo, err := repository.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error(
				"failed to connect to database",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
				slog.String("database_url", redactURL(cfg.DatabaseURL)),
			)
			os.Exit(1)
		}
		defer repo.Close()
		logger.Info("connected to database")

		userStore, newsStore, viewStore, healthDB = repo, repo, repo, repo
	case config.StorageMemory:
		mem := repository.NewMemory()
		userStore, newsStore, viewStore, healthDB = mem, mem, mem, mem
		logger.Warn("using in-memory storage, data will not survive a restart")
	}

	// Initialize cache; optional, rate limiting needs it
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		defer cacheClient.Close()
		logger.Info("connected to Redis")
	}

	// Initialize services
	metricsRecorder := metrics.NewInMemory()
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	identityService := service.NewIdentityService(userStore, tokenService, metricsRecorder)

	viewRecorder := views.NewRecorder(viewStore, logger, metricsRecorder)
	newsService := service.NewNewsService(newsStore, viewRecorder, metricsRecorder)

	// Initialize handlers; a nil *cache.Cache must not become a non-nil
	// HealthChecker interface
	var healthCache handler.HealthChecker
	if cacheClient != nil {
		healthCache = cacheClient
	}
	healthHandler := handler.NewHealthHandler(healthDB, healthCache)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)
	authHandler := handler.NewAuthHandler(identityService, logger)
	newsHandler := handler.NewNewsHandler(newsService, logger)

	// Setup router
	r := setupRouter(healthHandler, metricsHandler, authHandler, newsHandler, identityService, cacheClient, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	// Start the view recorder; its final flush happens after the HTTP
	// server stops accepting requests.
	go func() {
		if err := viewRecorder.Run(ctx); err != nil {
			logger.Error("view recorder error", "error", err)
		}
	}()
	srv.OnShutdown("view recorder", viewRecorder.Shutdown)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"storage", cfg.StorageBackend,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	healthHandler *handler.HealthHandler,
	metricsHandler *handler.MetricsHandler,
	authHandler *handler.AuthHandler,
	newsHandler *handler.NewsHandler,
	identityService *service.IdentityService,
	cacheClient *cache.Cache,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      cfg.IsDevelopment(),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}

	// Health and metrics endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metricsz", metricsHandler.Metrics)

	authMw := middleware.Auth(middleware.AuthConfig{
		Logger:   logger,
		Identity: identityService,
	})

	// The limiter must run after Auth so authenticated requests are
	// limited per user rather than per IP.
	limitMw := func(next http.Handler) http.Handler { return next }
	if cfg.RateLimitEnabled && cacheClient != nil {
		limitMw = middleware.RateLimit(middleware.RateLimitConfig{
			Logger:        logger,
			Limiter:       cacheClient,
			RatePerSecond: cfg.RateLimitRPS,
			Burst:         cfg.RateLimitBurst,
		})
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(limitMw).Post("/signup", authHandler.SignUp)
			r.With(limitMw).Post("/signin", authHandler.SignIn)
			r.With(authMw, limitMw).Get("/me", authHandler.Me)
		})

		r.Route("/news", func(r chi.Router) {
			// Public reads
			r.With(limitMw).Get("/", newsHandler.List)
			r.With(limitMw).Get("/{id}", newsHandler.Get)

			// Authenticated operations
			r.With(authMw, limitMw).Get("/mine", newsHandler.Mine)
			r.With(authMw, limitMw).Post("/", newsHandler.Create)
			r.With(authMw, limitMw).Patch("/{id}", newsHandler.Update)
			r.With(authMw, limitMw).Delete("/{id}", newsHandler.Delete)
		})
	})

	// 404 and 405 handlers
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
