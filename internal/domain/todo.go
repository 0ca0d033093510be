package domain

import "time"

// Urgency is the priority label of a todo.
type Urgency string

const (
	UrgencyLow    Urgency = "Low"
	UrgencyMedium Urgency = "Medium"
	UrgencyHigh   Urgency = "High"
)

// IsValid reports whether u is one of the defined levels.
func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// Todo is a task owned by exactly one user. Deletes are hard deletes, so there
// is no gorm.Model / DeletedAt here.
type Todo struct {
	ID          uint       `gorm:"primaryKey"`
	OwnerID     uint       `gorm:"not null;index"`
	Title       string     `gorm:"not null"`
	Description string     `gorm:"type:text;not null"`
	Completed   bool       `gorm:"not null;default:false"`
	DueDate     *time.Time `gorm:"default:null"`
	Urgency     Urgency    `gorm:"type:varchar(10);not null;default:Medium"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OptionalTime distinguishes an omitted value (Set == false) from an explicit
// null (Set == true, Time == nil).
type OptionalTime struct {
	Set  bool
	Time *time.Time
}

// TodoPatch holds the fields to change on an existing todo. Nil pointers and an
// unset DueDate leave the stored value untouched.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDate     OptionalTime
	Urgency     *Urgency
}

// IsEmpty reports whether the patch changes nothing.
func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		!p.DueDate.Set && p.Urgency == nil
}

// Columns maps the present fields to their column names. A cleared due date
// maps to a nil value so the column is set to NULL.
func (p TodoPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Completed != nil {
		cols["completed"] = *p.Completed
	}
	if p.DueDate.Set {
		if p.DueDate.Time == nil {
			cols["due_date"] = nil
		} else {
			cols["due_date"] = *p.DueDate.Time
		}
	}
	if p.Urgency != nil {
		cols["urgency"] = string(*p.Urgency)
	}
	return cols
}
