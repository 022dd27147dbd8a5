// Package router wires the middleware chain and mounts every resource
// under /api.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/blog"
	"portfolio-api/internal/config"
	"portfolio-api/internal/contact"
	"portfolio-api/internal/httpx"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/project"
)

// New builds the full route table.
func New(cfg *config.Config, logger *zap.SugaredLogger, db *sqlx.DB) http.Handler {
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL())

	userSvc := auth.NewUserService(db, nil, nil)
	projectSvc := project.NewService(db, nil)
	blogSvc := blog.NewService(db, nil)
	contactSvc := contact.NewService(db, nil)

	authHandler := auth.NewHandler(userSvc, tokens, logger)
	projectHandler := project.NewHandler(projectSvc, logger)
	blogHandler := blog.NewHandler(blogSvc, logger)
	contactHandler := contact.NewHandler(contactSvc, logger)

	// admin writes share one composed gate: verify token, then check the
	// stored role
	adminOnly := []func(http.Handler) http.Handler{
		middleware.RequireAuth(tokens),
		middleware.RequireRole(userSvc.Repo().GetRole, "admin"),
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httpx.OK(w, map[string]any{
			"message": "Portfolio API Server",
			"version": "1.0.0",
			"endpoints": map[string]string{
				"health":   "/api/health",
				"projects": "/api/projects",
				"blog":     "/api/blog",
				"contact":  "/api/contact",
				"auth":     "/api/auth",
			},
		})
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.RateLimit(cfg.RateLimitRPS(), cfg.RateLimitMaxRequests))

		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			httpx.OK(w, map[string]string{
				"message":   "Portfolio API is running",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		})

		api.Mount("/auth", authHandler.Routes())
		api.Mount("/projects", projectHandler.Routes(adminOnly...))
		api.Mount("/blog", blogHandler.Routes(adminOnly...))
		api.Mount("/contact", contactHandler.Routes(adminOnly...))
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpx.NotFound(w, []string{"/api/health", "/api/projects", "/api/blog", "/api/contact", "/api/auth"})
	})

	return r
}
