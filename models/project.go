package models

import (
	"time"
)

// Project owns exactly one board. Name is 1-50 characters after trimming.
type Project struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description,omitempty" db:"description"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
	LastAccessedAt time.Time `json:"lastAccessedAt" db:"last_accessed_at"`
}

// ProjectsIndex lists every project and names the default one.
// DefaultProjectID is nil only when Projects is empty.
type ProjectsIndex struct {
	Projects         []Project `json:"projects"`
	DefaultProjectID *string   `json:"defaultProjectId"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CreateProjectRequest is the payload for creating a new project.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateProjectRequest carries the fields to change; nil fields are left alone.
type UpdateProjectRequest struct {
	Name           *string    `json:"name"`
	Description    *string    `json:"description"`
	LastAccessedAt *time.Time `json:"lastAccessedAt"`
}
