/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. RealIP:     Client address behind proxies
  3. Logger:     One zerolog event per request
  4. Recoverer:  Panic recovery (500 instead of crash)
  5. CORS:       Cross-origin requests from the calculator frontend

ROUTE GROUPS:
  /health               Liveness
  /api/{sgpa,ygpa,...}  Calculators
  /api/programs/*       Program types and field visibility
  /api/formulas         Formula reference

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// RouterOptions configures the router.
type RouterOptions struct {
	AllowedOrigins []string
	Logger         zerolog.Logger
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(opts.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/sgpa", h.ConvertSGPA)
		r.Post("/ygpa", h.CalculateYGPA)
		r.Post("/dgpa", h.CalculateDGPA)
		r.Post("/cgpa", h.CalculateCGPA)
		r.Post("/calculate", h.Calculate)
		r.Post("/batch", h.Batch)

		r.Route("/programs", func(r chi.Router) {
			r.Get("/", h.ListPrograms)
			r.Get("/{type}/fields", h.GetProgramFields)
		})

		r.Get("/formulas", h.ListFormulas)
	})

	return r
}
