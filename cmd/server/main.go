package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sudo-init-do/solosphere/internal/alerts"
	"github.com/sudo-init-do/solosphere/internal/auth"
	"github.com/sudo-init-do/solosphere/internal/config"
	"github.com/sudo-init-do/solosphere/internal/data"
	"github.com/sudo-init-do/solosphere/internal/data/memstore"
	"github.com/sudo-init-do/solosphere/internal/db"
	"github.com/sudo-init-do/solosphere/internal/httpx"
	"github.com/sudo-init-do/solosphere/internal/logger"
	"github.com/sudo-init-do/solosphere/internal/marketplace"
	mware "github.com/sudo-init-do/solosphere/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server error", "error", err)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage
	var store marketplace.Store
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn("using in-memory storage; data is lost on restart")
		store = memstore.New()
	default:
		pool, err := db.Open(ctx, cfg.DB, log)
		if err != nil {
			return err
		}
		defer pool.Close()
		store = data.NewStore(pool)
	}

	// Alerts
	var notifier marketplace.Notifier = marketplace.NopNotifier{}
	if cfg.Alerts.Enabled {
		client := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Alerts.RedisAddr})
		defer client.Close()
		notifier = alerts.NewNotifier(client)

		processor := alerts.NewProcessor(cfg.Alerts, alerts.NewMailer(cfg.Alerts.SMTP, log), log)
		if err := processor.Start(); err != nil {
			return err
		}
		defer processor.Close()
		log.Info("alerts enabled", "redis", cfg.Alerts.RedisAddr, "smtp", cfg.Alerts.SMTP.Host != "")
	}

	svc := marketplace.NewService(store, notifier, log)
	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	e := newServer(cfg, log, svc, issuer)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", cfg.HTTP.Addr, "storage", cfg.Storage, "env", cfg.Env)
		if err := e.Start(cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newServer(cfg *config.Config, log *logger.Logger, svc *marketplace.Service, issuer *auth.Issuer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpx.NewValidator()
	e.HTTPErrorHandler = httpx.HTTPErrorHandler(log)
	e.Server.ReadTimeout = cfg.HTTP.ReadTimeout
	e.Server.WriteTimeout = cfg.HTTP.WriteTimeout

	// Basic middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.Warn("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "error", v.Error)
				return nil
			}
			log.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowCredentials: true,
	}))

	// Health and root routes
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "service": "solosphere"})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := svc.Ping(ctx); err != nil {
			log.Warn("readiness check failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "store unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})

	// Token routes with per-IP rate limiting
	auth.NewHandler(issuer, auth.CookieOptions{Name: cfg.Auth.CookieName, Secure: cfg.Auth.CookieSecure}, log).
		Register(e, middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	// Job and bid routes
	requireAuth := mware.JWT(issuer, cfg.Auth.CookieName, log)
	marketplace.NewHandler(svc, log).Register(e, requireAuth)

	return e
}
