package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campus-auth/internal/handler"
	"campus-auth/internal/middleware"
	"campus-auth/internal/model"
)

type Handlers struct {
	Auth *handler.AuthHandler
	User *handler.UserHandler
}

func New(corsOrigins []string, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(corsOrigins))

	r.Get("/health", h.Auth.Health)

	r.Route("/auth", func(auth chi.Router) {
		auth.Post("/register", h.Auth.Register)
		auth.Post("/login", h.Auth.Login)
		auth.Post("/refresh-token", h.Auth.Refresh)
		auth.Get("/health", h.Auth.Health)

		auth.With(authMiddleware.RequireAuth).Post("/logout", h.Auth.Logout)
		auth.With(authMiddleware.RequireAuth).Get("/profile", h.Auth.Profile)

		auth.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(model.RoleAdmin)).
			Get("/admin", h.User.Admins)
		auth.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(model.RoleTeacher, model.RoleAdmin)).
			Get("/teacher", h.User.Teachers)
		auth.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(model.RoleStudent, model.RoleTeacher, model.RoleAdmin)).
			Get("/student", h.User.Students)
	})

	r.Route("/users", func(users chi.Router) {
		users.Get("/", h.User.List)
		users.With(authMiddleware.RequireAuth).Get("/{id}", h.User.Get)
		users.With(authMiddleware.RequireAuth).Put("/{id}", h.User.Update)
		users.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(model.RoleAdmin)).
			Delete("/{id}", h.User.Delete)
	})

	return r
}
