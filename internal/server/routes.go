package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Tomlord1122/todo-api/internal/auth"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.HelloWorldHandler)

	r.Get("/health", s.healthHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", s.signUpHandler)
		r.Post("/signin", s.signInHandler)
		r.Post("/signout", s.signOutHandler)
		r.With(auth.RequireUser(s.identity, s.unauthorized)).Get("/session", s.sessionHandler)
	})

	// The id may come from the path or, as the web client sends it, from ?id=.
	r.Route("/todos", func(r chi.Router) {
		r.Use(auth.RequireUser(s.identity, s.unauthorized))

		r.Get("/", s.getTodosHandler)
		r.Post("/", s.createTodoHandler)
		r.Put("/", s.updateTodoHandler)
		r.Patch("/", s.updateTodoHandler)
		r.Delete("/", s.deleteTodoHandler)

		r.Get("/{id}", s.getTodoHandler)
		r.Put("/{id}", s.updateTodoHandler)
		r.Patch("/{id}", s.updateTodoHandler)
		r.Delete("/{id}", s.deleteTodoHandler)
	})

	return r
}

func (s *Server) HelloWorldHandler(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Todo API"})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		s.logger.WarnContext(r.Context(), "database health check failed", "error", healthStats["error"])
		s.respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	s.respondWithJSON(w, http.StatusOK, healthStats)
}
