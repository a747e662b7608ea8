package project

import "time"

// CreateProjectRequest represents the request to create a project
type CreateProjectRequest struct {
	Name        string     `json:"name" validate:"required,min=1,max=255"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}
