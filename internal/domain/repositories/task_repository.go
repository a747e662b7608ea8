package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/projectflow/internal/domain/entities"
)

// TaskRepository defines read access to tasks
type TaskRepository interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.Task, error)

	// ListByMeeting returns tasks derived from the meeting's transcript
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Task, error)
}
