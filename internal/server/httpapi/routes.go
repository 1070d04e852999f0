package httpapi

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/users", func(u chi.Router) {
		u.Post("/signup", s.handleSignUp)
		u.Post("/login", s.handleLogin)
		u.With(s.authenticate).Get("/verify", s.handleVerify)
	})

	r.Route("/comments", func(c chi.Router) {
		c.Get("/{cpaId}", s.handleListComments)

		c.Group(func(protected chi.Router) {
			protected.Use(s.authenticate)
			protected.Post("/", s.handleCreateComment)
			protected.Put("/{id}", s.handleUpdateComment)
			protected.Delete("/{id}", s.handleDeleteComment)
		})
	})

	s.router = r
}
