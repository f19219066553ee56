package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lumishot/lumishot/internal/studio"
	"github.com/lumishot/lumishot/pkg/billing"
	"github.com/lumishot/lumishot/pkg/entitlement"
	"github.com/lumishot/lumishot/pkg/ratelimit"
)

// CORSConfig scopes browser access to the app origins.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
}

// Deps carries everything the router needs.
type Deps struct {
	Studio      *studio.Service
	Gate        *entitlement.Gate
	Catalog     *entitlement.Catalog
	Billing     *billing.Service
	Users       UserEnsurer
	Nudger      *Nudger
	RateLimiter *ratelimit.Limiter
	Auth        AuthConfig
	CORS        CORSConfig
	Health      []func(context.Context) error
	Log         *slog.Logger
}

// NewRouter assembles the HTTP surface: public plan catalog and webhook,
// authenticated generation endpoints with a rate limit on the expensive ones.
func NewRouter(deps Deps) *chi.Mux {
	log := deps.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	h := &handlers{
		studio:  deps.Studio,
		gate:    deps.Gate,
		catalog: deps.Catalog,
		billing: deps.Billing,
		nudger:  deps.Nudger,
		log:     log,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", healthHandler(deps.Health))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/plans", h.listPlans)
		r.Post("/billing/webhook", h.billingWebhook)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(deps.Auth, deps.Users))

			r.Get("/entitlement", h.getEntitlement)
			r.Get("/shoots", h.listShoots)
			r.Post("/billing/checkout", h.createCheckout)

			// Model calls are expensive; per-user fixed window on top of
			// plan quotas.
			r.Group(func(r chi.Router) {
				if deps.RateLimiter != nil {
					r.Use(ratelimit.Middleware(deps.RateLimiter, userRateKey))
				}
				r.Post("/shoots", h.createShoot)
				r.Post("/merges", h.createMerge)
			})
		})
	})

	return r
}

// userRateKey keys the rate limit by authenticated user, falling back to the
// remote address before auth ran (which should not happen in practice).
func userRateKey(r *http.Request) string {
	if user, ok := userFromContext(r.Context()); ok {
		return "user:" + user.ID.String()
	}
	return "ip:" + r.RemoteAddr
}

func healthHandler(checks []func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				respondError(w, http.StatusServiceUnavailable, "unhealthy", err.Error(), nil)
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
