package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api/site/v1/auth", func(r chi.Router) {
		r.Get("/cookies-session", h.cookiesSession)
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/refresh", h.refresh)
		r.Get("/me", h.me)
		r.Post("/change_password", h.changePassword)
		r.Post("/confirm_email/{key}/", h.confirmEmail)
	})

	return router
}
