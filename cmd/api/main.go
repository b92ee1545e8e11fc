// Package main is the entrypoint for the clinical records API server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/clinicore/clinicore/internal/audit"
	"github.com/clinicore/clinicore/internal/auth"
	"github.com/clinicore/clinicore/internal/cache"
	"github.com/clinicore/clinicore/internal/config"
	"github.com/clinicore/clinicore/internal/handler"
	"github.com/clinicore/clinicore/internal/metrics"
	"github.com/clinicore/clinicore/internal/middleware"
	"github.com/clinicore/clinicore/internal/repository"
	"github.com/clinicore/clinicore/internal/server"
	"github.com/clinicore/clinicore/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

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

	cacheClient, err := cache.New(ctx, cache.Options{
		URL:          cfg.RedisURL,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
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

	recorder := metrics.NewInMemory()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// Audit pipeline: fire-and-forget publisher plus a stream consumer
	// persisting events in batches.
	var publisher *audit.Publisher
	var worker *audit.Worker
	if cfg.AuditEnabled {
		publisher = audit.NewPublisher(cacheClient.Client(), logger, recorder)
		auditRepo := repository.NewAuditRepository(repo)
		worker = audit.NewWorker(cacheClient.Client(), auditRepo, logger, cfg.AuditConsumer, recorder)
	}

	accounts := service.NewAccountService(repo, tokens, logger, recorder, publisher)
	clinical := service.NewClinicalService(repo, logger, recorder, publisher)

	h := handler.New(accounts, clinical, logger)
	h.SetSessionCache(cacheClient)
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	metricsHandler := handler.NewMetricsHandler(recorder)

	r := setupRouter(h, healthHandler, metricsHandler, repo, cacheClient, tokens, recorder, cfg, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	if worker != nil {
		workerCtx, cancelWorker := context.WithCancel(ctx)
		defer cancelWorker()
		go func() {
			if err := worker.Run(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("audit worker stopped", "error", err)
			}
		}()
		srv.OnShutdown("audit-worker", worker.Shutdown)
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"audit_enabled", cfg.AuditEnabled,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
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
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	metricsHandler *handler.MetricsHandler,
	repo *repository.Repository,
	cacheClient *cache.Cache,
	tokens *auth.TokenManager,
	recorder metrics.Recorder,
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
		IsDevelopment: cfg.IsDevelopment(),
	}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}

	// Operational endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	// Public account endpoints
	r.Post("/usuarios", h.CreateUser)
	r.Post("/register", h.Register)
	r.With(middleware.RateLimitLogin(middleware.RateLimitConfig{
		Logger:  logger,
		Limiter: cacheClient,
		Enabled: cfg.RateLimitLoginEnabled,
		RPM:     cfg.RateLimitLoginRPM,
		Burst:   cfg.RateLimitLoginBurst,
	})).Post("/login", h.Login)

	// Everything else requires a bearer token.
	authCfg := middleware.AuthConfig{
		Logger:  logger,
		Tokens:  tokens,
		Users:   repo,
		Cache:   cacheClient,
		Metrics: recorder,
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(authCfg))

		r.Get("/protected", h.Protected)
		r.Post("/logout", h.Logout)

		r.Get("/usuarios", h.ListUsers)

		r.Route("/doctores", func(r chi.Router) {
			r.Get("/", h.ListDoctors)
			r.Post("/", h.CreateDoctor)
		})

		r.Route("/pacientes", func(r chi.Router) {
			r.Get("/", h.ListPatients)
			r.Post("/", h.CreatePatient)
		})

		r.Route("/historiales", func(r chi.Router) {
			r.Get("/", h.ListRecords)
			r.Post("/", h.CreateRecord)
			r.Get("/{id}", h.GetRecord)
			r.Put("/{id}", h.UpdateRecord)
			r.Delete("/{id}", h.DeleteRecord)
		})

		r.Route("/citas", func(r chi.Router) {
			r.Get("/", h.ListAppointments)
			r.Post("/", h.CreateAppointment)
		})

		r.Route("/consultorios", func(r chi.Router) {
			r.Get("/", h.ListOffices)
			r.Post("/", h.CreateOffice)
		})

		r.Route("/doctor_consultorios", func(r chi.Router) {
			r.Get("/", h.ListDoctorOffices)
			r.Post("/", h.CreateDoctorOffice)
		})
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

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
