package http

import (
	"net/http"

	"github.com/atinyakov/peerdex/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter constructs and returns an HTTP handler that serves the
// directory API. It applies CORS for the GUI client, JSON content-type
// enforcement on bodies, and request logging, and mounts the four
// directory operations.
//
// Routes:
//
//	POST /register       → accountHandler.Register
//	POST /login          → accountHandler.Login
//	POST /register_file  → catalogHandler.RegisterFile
//	GET  /search         → catalogHandler.Search
func NewRouter(
	accountHandler *AccountHandler,
	catalogHandler *CatalogHandler,
	logger *zap.Logger,
	allowedOrigin string,
) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{allowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Only allow requests with Content-Type: application/json.
	// Bodyless requests such as GET /search pass through unchecked.
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Post("/register", accountHandler.Register)
	r.Post("/login", accountHandler.Login)
	r.Post("/register_file", catalogHandler.RegisterFile)
	r.Get("/search", catalogHandler.Search)

	return r
}
