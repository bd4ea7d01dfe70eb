package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rlewis2892/creepy-octo-meow/internal/infrastructure/http/handlers"
	"github.com/rlewis2892/creepy-octo-meow/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler    *handlers.AuthHandler
	ProfileHandler *handlers.ProfileHandler
	HealthHandler  *handlers.HealthHandler
	SessionLoader  *middleware.SessionLoader
	Guard          *middleware.ForgeryGuard
	CORS           func(http.Handler) http.Handler
	Log            zerolog.Logger
	Secure         func(http.Handler) http.Handler
	IPRateLimit    func(http.Handler) http.Handler
	Metrics        bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Activation lands here from the emailed link, so no forgery token and
	// no JSON content type can be expected.
	r.Get("/activate", cfg.AuthHandler.Activate)

	// Mutating routes verify the double-submit token before the handler runs.
	r.Group(func(r chi.Router) {
		r.Use(chimid.AllowContentType("application/json"))
		r.Use(cfg.Guard.Verify)
		r.Post("/signup", cfg.AuthHandler.Signup)
		r.Post("/signin", cfg.AuthHandler.Signin)
		r.Group(func(r chi.Router) {
			r.Use(cfg.SessionLoader.Handler)
			r.Post("/signout", cfg.AuthHandler.Signout)
			r.Put("/profiles/{profileID}", cfg.ProfileHandler.Update)
		})
	})

	// Reads carry no side effects and refresh the forgery cookie.
	r.Get("/profiles", cfg.ProfileHandler.Get)

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
