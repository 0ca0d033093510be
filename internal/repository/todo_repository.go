package repository

import (
	"context"
	"strings"

	"github.com/Tomlord1122/todo-api/internal/domain"

	"gorm.io/gorm"
)

// TodoRepository defines the owner-scoped todo data operations.
type TodoRepository interface {
	ListByOwner(ctx context.Context, ownerID uint) ([]domain.Todo, error)
	Create(ctx context.Context, todo *domain.Todo) error
	// FindByID returns ErrNotFound when no record has the id.
	FindByID(ctx context.Context, id uint) (*domain.Todo, error)
	Update(ctx context.Context, id uint, patch domain.TodoPatch) (*domain.Todo, error)
	Delete(ctx context.Context, id uint) error
}

type gormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a new GORM todo repository
func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

func (r *gormTodoRepository) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Todo, error) {
	todos := make([]domain.Todo, 0)
	result := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&todos)
	if result.Error != nil {
		return nil, translate("list todos", result.Error)
	}
	return todos, nil
}

// Create inserts the todo and fills in the generated id and timestamps.
func (r *gormTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	if strings.TrimSpace(todo.Title) == "" || strings.TrimSpace(todo.Description) == "" {
		return ErrValidation
	}
	if todo.Urgency == "" {
		todo.Urgency = domain.UrgencyMedium
	}
	if !todo.Urgency.IsValid() {
		return ErrValidation
	}
	todo.ID = 0
	todo.Completed = false

	result := r.db.WithContext(ctx).Create(todo)
	return translate("create todo", result.Error)
}

func (r *gormTodoRepository) FindByID(ctx context.Context, id uint) (*domain.Todo, error) {
	var todo domain.Todo
	result := r.db.WithContext(ctx).First(&todo, id)
	if result.Error != nil {
		return nil, translate("find todo", result.Error)
	}
	return &todo, nil
}

// Update writes only the columns present in the patch and returns the stored
// record. The read-modify-read runs in one transaction.
func (r *gormTodoRepository) Update(ctx context.Context, id uint, patch domain.TodoPatch) (*domain.Todo, error) {
	if patch.Urgency != nil && !patch.Urgency.IsValid() {
		return nil, ErrValidation
	}

	var todo domain.Todo
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&todo, id).Error; err != nil {
			return err
		}
		if patch.IsEmpty() {
			return nil
		}
		if err := tx.Model(&domain.Todo{ID: id}).Updates(patch.Columns()).Error; err != nil {
			return err
		}
		return tx.First(&todo, id).Error
	})
	if err != nil {
		return nil, translate("update todo", err)
	}
	return &todo, nil
}

// Delete removes the record permanently.
func (r *gormTodoRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Todo{}, id)
	if result.Error != nil {
		return translate("delete todo", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
