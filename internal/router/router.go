package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gracebooks/api/internal/handler"
	"github.com/gracebooks/api/internal/repository"
)

// serviceVersion is reported by the descriptor and health endpoints.
const serviceVersion = "0.1.0"

// New creates a Chi router with all application routes wired up.
func New(repo repository.AccountRepository) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300, // 5 minutes
	}))

	// Public routes
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"service":"accounting-service","version":"` + serviceVersion + `"}`))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"` + serviceVersion + `"}`))
	})

	// Chart of accounts
	accountHandler := handler.NewAccountHandler(repo)
	r.Route("/api/accounts", accountHandler.RegisterRoutes)

	log.Println("Router initialized with all handlers")
	return r
}
