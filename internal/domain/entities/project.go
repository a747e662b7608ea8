package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusPaused    ProjectStatus = "paused"
)

// IsValid checks if the project status is valid
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusPaused:
		return true
	}
	return false
}

// Project groups meetings and tasks
type Project struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string        `json:"name" gorm:"type:varchar(255);not null"`
	Description *string       `json:"description,omitempty" gorm:"type:text"`
	Status      ProjectStatus `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	CreatedBy   uuid.UUID     `json:"created_by" gorm:"type:uuid;not null;index"`
	DueDate     *time.Time    `json:"due_date,omitempty" gorm:"type:timestamp"`
	CreatedAt   time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// NewProject creates an active project owned by the creator
func NewProject(name string, description *string, createdBy uuid.UUID, dueDate *time.Time) *Project {
	now := time.Now()
	return &Project{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Description: description,
		Status:      ProjectStatusActive,
		CreatedBy:   createdBy,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate validates project data
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidProjectName
	}
	if !p.Status.IsValid() {
		return ErrInvalidProjectStatus
	}
	return nil
}

// MemberRole is a user's role inside a project
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

// IsValid checks if the member role is valid
func (r MemberRole) IsValid() bool {
	switch r {
	case MemberRoleOwner, MemberRoleAdmin, MemberRoleMember:
		return true
	}
	return false
}

// ProjectMember grants a user access to a project
type ProjectMember struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProjectID uuid.UUID  `json:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_project_member"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_project_member;index"`
	Role      MemberRole `json:"role" gorm:"type:varchar(20);not null;default:'member'"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (ProjectMember) TableName() string {
	return "project_members"
}

// NewProjectMember creates a membership row
func NewProjectMember(projectID, userID uuid.UUID, role MemberRole) *ProjectMember {
	return &ProjectMember{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now(),
	}
}
