package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "healthassist/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	"healthassist/backend/internal/config"
	"healthassist/backend/internal/interfaces"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Auth   *AuthHandler
	Chat   *ChatHandler
	Search *SearchHandler
	Status *StatusHandler
}

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(logger zerolog.Logger, cfg *config.Config, auth interfaces.AuthService, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(Metrics)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", SessionHeader},
		ExposedHeaders:   []string{SessionHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// --- Public Routes ---
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)
	r.Handle("/metrics", promhttp.Handler())

	// Liveness probe for container orchestration.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// --- API Version 1 Routes ---
	r.Route("/api/v1", func(r chi.Router) {

		// Standard JSON routes get a request timeout.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/status", h.Status.HandleStatus)
			r.Post("/auth/login", h.Auth.HandleLogin)
			r.Post("/auth/register", h.Auth.HandleRegister)

			r.Group(func(r chi.Router) {
				r.Use(RequireSession(auth))

				r.Post("/auth/logout", h.Auth.HandleLogout)
				r.Get("/profile", h.Auth.HandleGetProfile)
				r.Put("/profile/password", h.Auth.HandleUpdatePassword)

				r.Post("/chat", h.Chat.HandleStartChat)
				r.Get("/chat", h.Chat.HandleGetChat)

				r.Post("/symptoms", h.Search.HandleCheckSymptoms)
				r.Post("/appointments", h.Search.HandleFindAppointments)
			})
		})

		// Streaming routes must NOT have a timeout; a reply holds the
		// connection open until the model finishes.
		r.Group(func(r chi.Router) {
			r.Use(RequireSession(auth))

			r.Post("/chat/messages", h.Chat.HandleStreamMessage)
		})
	})

	// --- Frontend File Server ---
	fileServer := http.FileServer(http.Dir(cfg.StaticDir))
	r.Handle("/*", http.StripPrefix("/", fileServer))

	return r
}
