package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Tomlord1122/todo-api/internal/auth"
	"github.com/Tomlord1122/todo-api/internal/service"
)

var (
	errMissingTodoID = errors.New("Todo ID is required")
	errInvalidTodoID = errors.New("Invalid todo ID")
)

// todoID reads the id from the path, falling back to the query string.
func todoID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		raw = r.URL.Query().Get("id")
	}
	if raw == "" {
		return 0, errMissingTodoID
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidTodoID
	}
	return uint(id), nil
}

// currentUser is set by auth.RequireUser; the routes never run without it.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (uint, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		s.unauthorized(w, r)
	}
	return userID, ok
}

// respondTodoError translates service errors. Store failures are logged and
// reported only as failMsg.
func (s *Server) respondTodoError(w http.ResponseWriter, r *http.Request, err error, failMsg string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		s.respondWithError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrNotFound):
		s.respondWithError(w, http.StatusNotFound, "Todo not found or unauthorized")
	default:
		s.logger.ErrorContext(r.Context(), failMsg,
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
		)
		s.respondWithError(w, http.StatusInternalServerError, failMsg)
	}
}

// getTodosHandler lists the caller's todos, or returns one when a non-empty
// ?id= is given.
func (s *Server) getTodosHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("id") != "" {
		s.getTodoHandler(w, r)
		return
	}
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	todos, err := s.todoService.ListTodos(r.Context(), userID)
	if err != nil {
		s.respondTodoError(w, r, err, "Failed to fetch todos")
		return
	}
	s.respondWithJSON(w, http.StatusOK, todos)
}

func (s *Server) getTodoHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	id, err := todoID(r)
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	todo, err := s.todoService.GetTodo(r.Context(), userID, id)
	if err != nil {
		s.respondTodoError(w, r, err, "Failed to fetch todo")
		return
	}
	s.respondWithJSON(w, http.StatusOK, todo)
}

func (s *Server) createTodoHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var req service.CreateTodoRequest
	if !s.decodeJSON(w, r, &req, true) {
		return
	}

	todo, err := s.todoService.CreateTodo(r.Context(), userID, req)
	if err != nil {
		s.respondTodoError(w, r, err, "Failed to create todo")
		return
	}
	s.respondWithJSON(w, http.StatusOK, todo)
}

// updateTodoHandler ignores unknown fields: the web client sends back the
// whole todo (id, createdAt, ...) when toggling completion.
func (s *Server) updateTodoHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	id, err := todoID(r)
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Someone else's todo is a 404 whatever the body holds.
	if _, err := s.todoService.GetTodo(r.Context(), userID, id); err != nil {
		s.respondTodoError(w, r, err, "Failed to update todo")
		return
	}

	var req service.UpdateTodoRequest
	if !s.decodeJSON(w, r, &req, false) {
		return
	}

	todo, err := s.todoService.UpdateTodo(r.Context(), userID, id, req)
	if err != nil {
		s.respondTodoError(w, r, err, "Failed to update todo")
		return
	}
	s.respondWithJSON(w, http.StatusOK, todo)
}

func (s *Server) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	id, err := todoID(r)
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.todoService.DeleteTodo(r.Context(), userID, id); err != nil {
		s.respondTodoError(w, r, err, "Failed to delete todo")
		return
	}
	s.respondWithMessage(w, http.StatusOK, "Todo deleted successfully")
}
