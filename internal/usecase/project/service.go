package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
)

// Service defines the interface for project use case
type Service interface {
	// CreateProject creates a project owned by the caller
	CreateProject(ctx context.Context, input CreateProjectInput) (*entities.Project, error)

	// ListProjects lists the projects a user can access
	ListProjects(ctx context.Context, userID uuid.UUID) ([]*entities.Project, error)

	// Authorize checks that the project exists and the user may use it
	Authorize(ctx context.Context, projectID, userID uuid.UUID) (*entities.Project, error)

	// ListTasks lists a project's tasks
	ListTasks(ctx context.Context, projectID, userID uuid.UUID) ([]*entities.Task, error)

	// ListMeetings lists a project's meetings
	ListMeetings(ctx context.Context, projectID, userID uuid.UUID) ([]*entities.Meeting, error)

	// GetMeeting returns a meeting with its transcription job and derived tasks
	GetMeeting(ctx context.Context, meetingID, userID uuid.UUID) (*MeetingDetail, error)
}

// Ensure ProjectService implements Service interface
var _ Service = (*ProjectService)(nil)
