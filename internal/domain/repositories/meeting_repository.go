package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/projectflow/internal/domain/entities"
)

// MeetingRepository defines read access to meetings. Meetings are written only
// by TranscriptionRepository.
type MeetingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.Meeting, error)
}
