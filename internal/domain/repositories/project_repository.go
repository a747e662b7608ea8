package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/projectflow/internal/domain/entities"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create inserts the project together with its owner membership
	Create(ctx context.Context, project *entities.Project, owner *entities.ProjectMember) error

	// FindByID returns nil, nil when the project does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Project, error)

	// IsMember reports whether the user created the project or holds a membership
	IsMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error)

	// ListForUser returns projects the user created or belongs to, newest first
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Project, error)
}
