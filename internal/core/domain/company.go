package domain

import "time"

// Company mirrors the backend company serializer. Counts and *_name fields
// are computed by the backend and ignored on write.
type Company struct {
	ID            int64      `json:"id,omitempty"`
	Name          string     `json:"name"                      validate:"required,max=200"`
	Industry      string     `json:"industry"                  validate:"max=100"`
	Website       string     `json:"website"                   validate:"omitempty,url"`
	Phone         string     `json:"phone"                     validate:"max=20"`
	Email         string     `json:"email"                     validate:"omitempty,email"`
	Address       string     `json:"address"`
	Notes         string     `json:"notes"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
	CreatedBy     *int64     `json:"created_by,omitempty"`
	CreatedByName string     `json:"created_by_name,omitempty"`
	ContactsCount int        `json:"contacts_count,omitempty"`
	DealsCount    int        `json:"deals_count,omitempty"`
}
