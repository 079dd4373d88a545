package handler

import (
	"net/http"

	"github.com/Hicham1970/inspec/internal/repository"
	"github.com/Hicham1970/inspec/internal/service"
	"github.com/Hicham1970/inspec/pkg/auth"
)

// RouterConfig holds everything NewRouter wires together.
type RouterConfig struct {
	// DB is nil when no storage backend is configured.
	DB                repository.DB
	ContactService    service.ContactService
	NewsletterService service.NewsletterService

	AllowedOrigin string
	// AdminAPIKey guards the listing endpoints. Empty leaves them open.
	AdminAPIKey string
	// Limiter throttles the public form endpoints. nil disables throttling.
	Limiter    *RateLimiter
	UploadsDir string
}

// NewRouter registers every API route and wraps the mux in the middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	h := New(cfg.DB, cfg.AllowedOrigin)
	contactHandler := NewContactHandler(cfg.ContactService)
	newsletterHandler := NewNewsletterHandler(cfg.NewsletterService)

	limit := func(next http.HandlerFunc) http.Handler {
		if cfg.Limiter == nil {
			return next
		}
		return cfg.Limiter.Middleware(next)
	}
	admin := func(next http.HandlerFunc) http.Handler {
		return auth.RequireAPIKey(cfg.AdminAPIKey)(next)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/test-supabase", h.StorageCheck)

	mux.Handle("POST /api/contact", limit(contactHandler.Submit))
	mux.Handle("GET /api/contact", admin(contactHandler.List))

	mux.Handle("POST /api/newsletter", limit(newsletterHandler.Subscribe))
	mux.Handle("GET /api/newsletter", admin(newsletterHandler.List))
	mux.HandleFunc("DELETE /api/newsletter/{email}", newsletterHandler.Unsubscribe)
	mux.HandleFunc("DELETE /api/newsletter", newsletterHandler.Unsubscribe)

	if cfg.UploadsDir != "" {
		mux.Handle("GET /uploads/", Uploads("/uploads", cfg.UploadsDir))
	}

	return Recover(RequestLogger(SecurityHeaders(h.CORS(mux))))
}
