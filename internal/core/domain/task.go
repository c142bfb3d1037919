package domain

import "time"

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task mirrors the backend task serializer.
type Task struct {
	ID             int64        `json:"id,omitempty"`
	Title          string       `json:"title"                  validate:"required,max=200"`
	Description    string       `json:"description"`
	Status         TaskStatus   `json:"status,omitempty"       validate:"omitempty,oneof=pending in_progress completed"`
	Priority       TaskPriority `json:"priority,omitempty"     validate:"omitempty,oneof=low medium high"`
	DueDate        *time.Time   `json:"due_date"`
	Contact        *int64       `json:"contact"`
	ContactName    string       `json:"contact_name,omitempty"`
	Deal           *int64       `json:"deal"`
	DealTitle      string       `json:"deal_title,omitempty"`
	AssignedTo     *int64       `json:"assigned_to"`
	AssignedToName string       `json:"assigned_to_name,omitempty"`
	CreatedAt      *time.Time   `json:"created_at,omitempty"`
	UpdatedAt      *time.Time   `json:"updated_at,omitempty"`
	CreatedBy      *int64       `json:"created_by,omitempty"`
	CreatedByName  string       `json:"created_by_name,omitempty"`
}

// Overdue reports whether an open task is past its due date at now.
func (t Task) Overdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == TaskCompleted {
		return false
	}
	return t.DueDate.Before(now)
}
