package service

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/Tomlord1122/todo-api/internal/domain"
)

// CreateTodoRequest holds the data needed to create a new todo.
type CreateTodoRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"dueDate"`
	Urgency     string  `json:"urgency"`
}

// UpdateTodoRequest holds the fields to change. Pointers distinguish an
// omitted field from a zero value; DueDate additionally distinguishes an
// explicit null (clear) from an omitted field (keep).
type UpdateTodoRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Completed   *bool          `json:"completed"`
	DueDate     NullableString `json:"dueDate"`
	Urgency     *string        `json:"urgency"`
}

// NullableString records whether a JSON field was present at all and, if so,
// whether it was null.
type NullableString struct {
	Present bool
	Value   *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// TodoResponse is the representation of a Todo returned to clients. The owner
// is implied by the session and never serialized.
type TodoResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
	DueDate     *string `json:"dueDate"`
	Urgency     string  `json:"urgency"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func newTodoResponse(t *domain.Todo) TodoResponse {
	resp := TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Urgency:     string(t.Urgency),
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if t.DueDate != nil {
		due := t.DueDate.UTC().Format(time.RFC3339)
		resp.DueDate = &due
	}
	return resp
}

// CredentialsRequest is the body of sign-up and sign-in.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// SessionResponse is returned on sign-up and sign-in. The token is also set
// as a cookie by the HTTP layer.
type SessionResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expiresAt"`
}
