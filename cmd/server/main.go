package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Hicham1970/inspec/internal/config"
	"github.com/Hicham1970/inspec/internal/handler"
	"github.com/Hicham1970/inspec/internal/logging"
	"github.com/Hicham1970/inspec/internal/repository"
	"github.com/Hicham1970/inspec/internal/service"
	"github.com/Hicham1970/inspec/pkg/mailer"
	"github.com/Hicham1970/inspec/pkg/supabase"
)

// backend bundles the repositories of whichever storage is configured.
// All fields are nil when none is.
type backend struct {
	db          repository.DB
	contacts    repository.ContactRepository
	subscribers repository.SubscriberRepository
	close       func()
}

func main() {
	cfg := config.Load()
	logging.Setup(cfg.Log.Level)

	store := openBackend(context.Background(), cfg)
	defer store.close()

	// Mail notifications are optional
	var notifier service.Notifier
	if cfg.MailConfigured() {
		notifier = service.NewMailNotifier(mailer.NewClient(cfg.Mail.APIKey, cfg.Mail.From), cfg.Mail.NotifyTo)
		slog.Info("contact notifications enabled", "to", cfg.Mail.NotifyTo)
	}

	limiter := handler.NewRateLimiter(cfg.RateLimitPerMinute)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logging.Fatal("invalid REDIS_URL", "error", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		limiter = handler.NewRedisRateLimiter(cfg.RateLimitPerMinute, rdb)
		slog.Info("rate limiting backed by redis", "addr", opts.Addr)
	}

	router := handler.NewRouter(handler.RouterConfig{
		DB:                store.db,
		ContactService:    service.NewContactService(store.contacts, notifier),
		NewsletterService: service.NewNewsletterService(store.subscribers),
		AllowedOrigin:     cfg.ClientURL,
		AdminAPIKey:       cfg.AdminAPIKey,
		Limiter:           limiter,
		UploadsDir:        cfg.UploadsDir,
	})
	if cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set: listing endpoints are public")
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// openBackend prefers the Supabase REST API, then a direct Postgres
// connection. With neither configured the server still starts and every
// data endpoint answers 500.
func openBackend(ctx context.Context, cfg *config.Config) backend {
	switch {
	case cfg.SupabaseConfigured():
		client := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.APIKey)
		slog.Info("using supabase backend", "url", cfg.Supabase.URL)
		return backend{
			db:          client,
			contacts:    repository.NewSupabaseContactRepository(client),
			subscribers: repository.NewSupabaseSubscriberRepository(client),
			close:       func() {},
		}
	case cfg.DatabaseURL != "":
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logging.Fatal("failed to connect to database", "error", err)
		}
		slog.Info("using postgres backend")
		return backend{
			db:          pool,
			contacts:    repository.NewPgContactRepository(pool),
			subscribers: repository.NewPgSubscriberRepository(pool),
			close:       pool.Close,
		}
	default:
		slog.Warn("no database configured: set SUPABASE_URL and SUPABASE_ANON_KEY (or DATABASE_URL)")
		return backend{close: func() {}}
	}
}
