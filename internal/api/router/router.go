package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tukang-design/studio-api/internal/booking"
	"github.com/tukang-design/studio-api/internal/catalog"
	"github.com/tukang-design/studio-api/internal/chatlink"
	"github.com/tukang-design/studio-api/internal/contact"
	httpmiddleware "github.com/tukang-design/studio-api/internal/http/middleware"
	"github.com/tukang-design/studio-api/internal/wizard"
	"github.com/tukang-design/studio-api/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger          *logging.Logger
	WizardHandler   *wizard.Handler
	ContactHandler  *contact.Handler
	BookingHandler  *booking.Handler
	ChatLinkHandler *chatlink.Handler
	MetricsHandler  http.Handler

	AdminAuthSecret    string
	CORSAllowedOrigins []string

	// Rate limiting on the public write surface. Zero disables it.
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	var rateLimit func(http.Handler) http.Handler
	if cfg.RateLimitPerSecond > 0 {
		rateLimit = httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		public.Get("/catalog", catalog.ServeCatalog)
		if cfg.ChatLinkHandler != nil {
			public.Get("/chat-link", cfg.ChatLinkHandler.GetLink)
		}
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		// The write surface gets rate limited.
		public.Group(func(limited chi.Router) {
			if rateLimit != nil {
				limited.Use(rateLimit)
			}
			if cfg.WizardHandler != nil {
				limited.Mount("/wizard", cfg.WizardHandler.Routes())
			}
			if cfg.ContactHandler != nil {
				limited.Post("/contact", cfg.ContactHandler.Create)
			}
		})
	})

	// Admin routes (protected by JWT)
	if cfg.AdminAuthSecret != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			if cfg.BookingHandler != nil {
				admin.Get("/bookings", cfg.BookingHandler.List)
				admin.Get("/bookings/{bookingID}", cfg.BookingHandler.Get)
			}
			if cfg.ContactHandler != nil {
				admin.Get("/messages", cfg.ContactHandler.List)
				admin.Get("/messages/{messageID}", cfg.ContactHandler.Get)
			}
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
