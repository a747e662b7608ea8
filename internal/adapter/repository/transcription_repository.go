package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
	"github.com/johnquangdev/projectflow/internal/domain/repositories"
)

// TranscriptionRepository handles transcription job data operations
type TranscriptionRepository struct {
	db *gorm.DB
}

var _ repositories.TranscriptionRepository = (*TranscriptionRepository)(nil)

// NewTranscriptionRepository creates a new transcription repository
func NewTranscriptionRepository(db *gorm.DB) *TranscriptionRepository {
	return &TranscriptionRepository{db: db}
}

// CreateSubmission inserts the provisional meeting and the job that tracks it
func (r *TranscriptionRepository) CreateSubmission(ctx context.Context, meeting *entities.Meeting, job *entities.TranscriptionJob) error {
	if meeting == nil || job == nil {
		return errors.New("meeting and job cannot be nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meeting).Error; err != nil {
			return fmt.Errorf("failed to create meeting: %w", err)
		}
		job.MeetingID = meeting.ID
		if err := tx.Create(job).Error; err != nil {
			return fmt.Errorf("failed to create transcription job: %w", err)
		}
		return nil
	})
}

// FindByExternalID retrieves a job by its provider transcript ID
func (r *TranscriptionRepository) FindByExternalID(ctx context.Context, externalID string) (*entities.TranscriptionJob, error) {
	var job entities.TranscriptionJob
	if err := r.db.WithContext(ctx).Where("external_job_id = ?", externalID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// FindLatestByMeeting retrieves the newest job for a meeting
func (r *TranscriptionRepository) FindLatestByMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.TranscriptionJob, error) {
	var job entities.TranscriptionJob
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// ListOpen retrieves queued and processing jobs, oldest first
func (r *TranscriptionRepository) ListOpen(ctx context.Context, limit int) ([]*entities.TranscriptionJob, error) {
	var jobs []*entities.TranscriptionJob
	if limit <= 0 {
		limit = 100
	}
	if err := r.db.WithContext(ctx).
		Where("status IN ?", entities.OpenTranscriptionStatuses).
		Order("submitted_at ASC").
		Limit(limit).
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// MarkFailed records a terminal failure on a job that is still open
func (r *TranscriptionRepository) MarkFailed(ctx context.Context, jobID uuid.UUID, status entities.TranscriptionStatus, message string) (bool, error) {
	if status != entities.TranscriptionStatusError && status != entities.TranscriptionStatusTimedOut {
		return false, entities.ErrInvalidTranscriptionStatus
	}
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&entities.TranscriptionJob{}).
		Where("id = ? AND status IN ?", jobID, entities.OpenTranscriptionStatuses).
		Updates(map[string]interface{}{
			"status":       status,
			"last_error":   message,
			"completed_at": now,
			"updated_at":   now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CompleteTranscription claims the job and writes the meeting and its tasks.
// The claim is a conditional update, so a concurrent completion affects zero
// rows and rolls back without touching the meeting.
func (r *TranscriptionRepository) CompleteTranscription(ctx context.Context, c repositories.Completion) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		claim := tx.Model(&entities.TranscriptionJob{}).
			Where("id = ? AND status IN ?", c.JobID, entities.OpenTranscriptionStatuses).
			Updates(map[string]interface{}{
				"status":       entities.TranscriptionStatusCompleted,
				"last_error":   nil,
				"completed_at": now,
				"updated_at":   now,
			})
		if claim.Error != nil {
			return fmt.Errorf("failed to claim transcription job: %w", claim.Error)
		}
		if claim.RowsAffected == 0 {
			return nil
		}

		updates := map[string]interface{}{
			"transcript": c.Transcript,
			"ai_summary": c.Summary,
			"chapters":   datatypes.JSONSlice[entities.Chapter](nonNilChapters(c.Chapters)),
			"highlights": datatypes.JSONSlice[entities.Highlight](nonNilHighlights(c.Highlights)),
			"updated_at": now,
		}
		meeting := tx.Model(&entities.Meeting{}).Where("id = ?", c.MeetingID).Updates(updates)
		if meeting.Error != nil {
			return fmt.Errorf("failed to update meeting: %w", meeting.Error)
		}
		if meeting.RowsAffected == 0 {
			return fmt.Errorf("meeting %s not found", c.MeetingID)
		}

		if len(c.Tasks) > 0 {
			if err := tx.CreateInBatches(c.Tasks, 100).Error; err != nil {
				return fmt.Errorf("failed to create tasks: %w", err)
			}
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

func nonNilChapters(in []entities.Chapter) []entities.Chapter {
	if in == nil {
		return []entities.Chapter{}
	}
	return in
}

func nonNilHighlights(in []entities.Highlight) []entities.Highlight {
	if in == nil {
		return []entities.Highlight{}
	}
	return in
}
