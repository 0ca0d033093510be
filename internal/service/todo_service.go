package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Tomlord1122/todo-api/internal/domain"
	"github.com/Tomlord1122/todo-api/internal/repository"
)

// Accepted dueDate layouts, most specific first.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// TodoService defines the operations for managing a user's todos.
// Every method takes the authenticated owner explicitly; records owned by
// someone else are reported exactly like missing ones.
type TodoService interface {
	// ListTodos returns all todos of the owner.
	ListTodos(ctx context.Context, ownerID uint) ([]TodoResponse, error)

	// CreateTodo validates the request and stores a new todo for the owner.
	CreateTodo(ctx context.Context, ownerID uint, req CreateTodoRequest) (*TodoResponse, error)

	// GetTodo returns a single todo, e.g. to prefill an edit form.
	GetTodo(ctx context.Context, ownerID, id uint) (*TodoResponse, error)

	// UpdateTodo applies the fields present in req.
	UpdateTodo(ctx context.Context, ownerID, id uint, req UpdateTodoRequest) (*TodoResponse, error)

	// DeleteTodo removes the todo permanently.
	DeleteTodo(ctx context.Context, ownerID, id uint) error
}

type todoService struct {
	repo repository.TodoRepository
}

// NewTodoService creates a new instance of todoService.
func NewTodoService(repo repository.TodoRepository) TodoService {
	return &todoService{repo: repo}
}

func (s *todoService) ListTodos(ctx context.Context, ownerID uint) ([]TodoResponse, error) {
	todos, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, internal("list todos", err)
	}

	responses := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		responses = append(responses, newTodoResponse(&todos[i]))
	}
	return responses, nil
}

func (s *todoService) CreateTodo(ctx context.Context, ownerID uint, req CreateTodoRequest) (*TodoResponse, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, invalid("Missing required fields")
	}

	todo := &domain.Todo{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Urgency:     domain.UrgencyMedium,
	}
	if req.Urgency != "" {
		u, err := parseUrgency(req.Urgency)
		if err != nil {
			return nil, err
		}
		todo.Urgency = u
	}
	if req.DueDate != nil {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		todo.DueDate = due
	}

	if err := s.repo.Create(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrValidation) {
			return nil, invalid("Invalid todo")
		}
		return nil, internal("create todo", err)
	}

	resp := newTodoResponse(todo)
	return &resp, nil
}

func (s *todoService) GetTodo(ctx context.Context, ownerID, id uint) (*TodoResponse, error) {
	todo, err := s.ownedTodo(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	resp := newTodoResponse(todo)
	return &resp, nil
}

func (s *todoService) UpdateTodo(ctx context.Context, ownerID, id uint, req UpdateTodoRequest) (*TodoResponse, error) {
	if _, err := s.ownedTodo(ctx, ownerID, id); err != nil {
		return nil, err
	}

	patch, err := buildPatch(req)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrValidation):
			return nil, invalid("Invalid todo")
		}
		return nil, internal("update todo", err)
	}

	resp := newTodoResponse(updated)
	return &resp, nil
}

func (s *todoService) DeleteTodo(ctx context.Context, ownerID, id uint) error {
	if _, err := s.ownedTodo(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return internal("delete todo", err)
	}
	return nil
}

// ownedTodo loads the record and hides it unless ownerID owns it.
func (s *todoService) ownedTodo(ctx context.Context, ownerID, id uint) (*domain.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, internal("find todo", err)
	}
	if todo.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return todo, nil
}

func buildPatch(req UpdateTodoRequest) (domain.TodoPatch, error) {
	var patch domain.TodoPatch

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return patch, invalid("Title cannot be empty")
		}
		patch.Title = req.Title
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return patch, invalid("Description cannot be empty")
		}
		patch.Description = req.Description
	}
	patch.Completed = req.Completed
	if req.Urgency != nil {
		u, err := parseUrgency(*req.Urgency)
		if err != nil {
			return patch, err
		}
		patch.Urgency = &u
	}
	if req.DueDate.Present {
		patch.DueDate.Set = true
		if req.DueDate.Value != nil {
			due, err := parseDueDate(*req.DueDate.Value)
			if err != nil {
				return patch, err
			}
			patch.DueDate.Time = due
		}
	}
	return patch, nil
}

func parseUrgency(s string) (domain.Urgency, error) {
	u := domain.Urgency(strings.TrimSpace(s))
	if !u.IsValid() {
		return "", invalid("Urgency must be one of Low, Medium, High")
	}
	return u, nil
}

// parseDueDate returns nil for an empty string, which means "no due date".
// Date-only values are stored as midnight UTC.
func parseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, invalid("Invalid dueDate")
}
