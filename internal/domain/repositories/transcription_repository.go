package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/projectflow/internal/domain/entities"
)

// Completion is everything written when a transcription job completes
type Completion struct {
	JobID      uuid.UUID
	MeetingID  uuid.UUID
	Transcript string
	Summary    string
	Chapters   []entities.Chapter
	Highlights []entities.Highlight
	Tasks      []*entities.Task
}

// TranscriptionRepository owns the transcription job lifecycle and the
// meeting/task writes tied to it
type TranscriptionRepository interface {
	// CreateSubmission inserts the provisional meeting and its job in one transaction
	CreateSubmission(ctx context.Context, meeting *entities.Meeting, job *entities.TranscriptionJob) error

	// FindByExternalID returns nil, nil when no job carries the id
	FindByExternalID(ctx context.Context, externalID string) (*entities.TranscriptionJob, error)

	// FindLatestByMeeting returns the most recent job of a meeting, or nil, nil
	FindLatestByMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.TranscriptionJob, error)

	// ListOpen returns non-terminal jobs, oldest first
	ListOpen(ctx context.Context, limit int) ([]*entities.TranscriptionJob, error)

	// MarkFailed moves an open job to error or timed_out. It returns false
	// when the job was already terminal.
	MarkFailed(ctx context.Context, jobID uuid.UUID, status entities.TranscriptionStatus, message string) (bool, error)

	// CompleteTranscription claims the job, updates the meeting and inserts the
	// tasks in a single transaction. It returns false without writing anything
	// when another completion already claimed the job.
	CompleteTranscription(ctx context.Context, c Completion) (bool, error)
}
