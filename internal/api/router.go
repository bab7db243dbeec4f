package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/deepakMaj/Task-Manager-API/internal/api/handlers"
	"github.com/deepakMaj/Task-Manager-API/internal/config"
	"github.com/deepakMaj/Task-Manager-API/internal/metrics"
	"github.com/deepakMaj/Task-Manager-API/internal/middleware"
)

func NewRouter(cfg config.Config, am *middleware.AuthMiddleware, uh *handlers.UsersHandler, th *handlers.TasksHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	// public
	r.Post("/users", uh.Signup)
	r.Post("/users/login", uh.Login)
	r.Get("/users/{id}/avatar", uh.GetAvatar)

	// authenticated
	r.Group(func(r chi.Router) {
		r.Use(am.Auth)

		r.Post("/users/logout", uh.Logout)
		r.Post("/users/logoutAll", uh.LogoutAll)
		r.Get("/users/me", uh.Me)
		r.Patch("/users/me", uh.UpdateMe)
		r.Delete("/users/me", uh.DeleteMe)
		r.Post("/users/me/avatar", uh.UploadAvatar)
		r.Delete("/users/me/avatar", uh.DeleteAvatar)

		r.Post("/tasks", th.Create)
		r.Get("/tasks", th.List)
		r.Get("/tasks/{id}", th.Get)
		r.Patch("/tasks/{id}", th.Update)
		r.Delete("/tasks/{id}", th.Delete)
	})

	return r
}
