package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tasklist/api/internal/core/ports"
)

func NewHandler(authHandler *AuthHandler, taskHandler *TaskHandler, userHandler *UserHandler, verifier ports.TokenVerifier) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(Authenticator(verifier))
			r.Post("/logout", authHandler.Logout)
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(Authenticator(verifier))

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Get("/{id}", taskHandler.Get)
			r.Put("/{id}", taskHandler.Update)
			r.Delete("/{id}", taskHandler.Delete)
			r.Post("/{id}/reorder", taskHandler.Reorder)
			r.Post("/{id}/toggle", taskHandler.ToggleCompletion)
		})

		r.Route("/user", func(r chi.Router) {
			r.Get("/profile", userHandler.GetProfile)
			r.Put("/profile", userHandler.UpdateProfile)
		})
	})

	return r
}
