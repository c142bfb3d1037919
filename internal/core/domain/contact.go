package domain

import "time"

// Contact mirrors the backend contact serializer.
type Contact struct {
	ID            int64      `json:"id,omitempty"`
	FirstName     string     `json:"first_name"                validate:"required,max=100"`
	LastName      string     `json:"last_name"                 validate:"required,max=100"`
	FullName      string     `json:"full_name,omitempty"`
	Email         string     `json:"email"                     validate:"required,email"`
	Phone         string     `json:"phone"                     validate:"max=20"`
	Position      string     `json:"position"                  validate:"max=100"`
	Company       *int64     `json:"company"`
	CompanyName   string     `json:"company_name,omitempty"`
	Notes         string     `json:"notes"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
	CreatedBy     *int64     `json:"created_by,omitempty"`
	CreatedByName string     `json:"created_by_name,omitempty"`
}

// DisplayName returns the backend's full_name, or joins first and last
// name the same way when the contact was built locally.
func (c Contact) DisplayName() string {
	if c.FullName != "" {
		return c.FullName
	}
	return c.FirstName + " " + c.LastName
}
