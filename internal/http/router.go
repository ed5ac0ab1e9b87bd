package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/account360/account360-api/internal/ai"
	"github.com/account360/account360-api/internal/auth"
	"github.com/account360/account360-api/internal/config"
	"github.com/account360/account360-api/internal/contact"
	"github.com/account360/account360-api/internal/httputil"
	"github.com/account360/account360-api/internal/logging"
	"github.com/account360/account360-api/internal/profile"
)

// Handlers bundles the per-domain HTTP handlers for router wiring
type Handlers struct {
	Auth    *auth.Handler
	Google  *auth.GoogleHandler
	Profile *profile.Handler
	Contact *contact.Handler
	AI      *ai.Handler
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h Handlers, authMiddleware *auth.Middleware, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders)               // Security headers on all responses
	r.Use(middleware.Recoverer)          // Recover from panics
	r.Use(middleware.RequestID)          // Add request ID
	r.Use(middleware.RealIP)             // Set RemoteAddr to real IP
	r.Use(logging.RequestLogger(logger)) // Structured logging with request context
	r.Use(middleware.Compress(5))        // Compress responses

	// Public routes
	r.Get("/health", handleHealth)

	// Swagger UI - only in development
	// Production builds will not have this route at all
	if cfg.Server.IsDevelopment() {
		log.Println("Swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	} else {
		log.Println("Swagger UI disabled (production mode)")
	}

	r.Route("/api", func(r chi.Router) {
		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Get("/verify-email", h.Auth.VerifyEmail)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
			r.Post("/reset-password/{token}", h.Auth.ResetPassword)
			r.Get("/google", h.Google.GoogleAuth)
			r.Get("/google/callback", h.Google.GoogleCallback)
		})

		// Profile routes (require authentication)
		r.Route("/profile", func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Get("/", h.Profile.Get)
			r.Put("/", h.Profile.Update)
			r.Delete("/", h.Profile.Delete)
		})

		// Contact directory (public)
		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", h.Contact.List)
			r.Post("/", h.Contact.Create)
			r.Get("/{id}", h.Contact.Get)
			r.Put("/{id}", h.Contact.Update)
			r.Delete("/{id}", h.Contact.Delete)
		})

		// AI assistant
		r.Post("/ai/ask", h.AI.Ask)
	})

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}
