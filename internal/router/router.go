// Package router sets up all HTTP routes and middleware chains for the
// TheMargin API. Reads are public; writes and the owner workspace require
// an authenticated caller.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"themargin/internal/handlers"
	"themargin/internal/middleware"
)

// Handlers bundles the handler groups the router mounts.
type Handlers struct {
	Auth   *handlers.Auth
	Blogs  *handlers.Blogs
	Users  *handlers.Users
	Health *handlers.Health
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(identities middleware.IdentityResolver, h Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	// Probes and metrics, no session lookup.
	r.Get("/health", h.Health.Live)
	r.Get("/health/ready", h.Health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LoadIdentity(identities))

		r.Post("/signup", h.Auth.Signup)
		r.Post("/login", h.Auth.Login)
		r.Post("/logout", h.Auth.Logout)

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", h.Blogs.List)
			r.Get("/check-slug", h.Blogs.CheckSlug)
			r.Post("/seed", h.Blogs.Seed)
			r.Get("/{slug}", h.Blogs.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", h.Blogs.Create)
				r.Get("/mine", h.Blogs.Mine)
				r.Patch("/{slug}", h.Blogs.Update)
				r.Delete("/{slug}", h.Blogs.Delete)
			})
		})

		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/", h.Users.Profile)
			r.Get("/posts", h.Users.Posts)
		})
	})

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found.")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
