package entities

import (
	"time"

	"github.com/google/uuid"
)

// TranscriptionStatus represents the state of a speech-to-text job
type TranscriptionStatus string

const (
	TranscriptionStatusQueued     TranscriptionStatus = "queued"     // Accepted by the provider
	TranscriptionStatusProcessing TranscriptionStatus = "processing" // Provider is transcribing
	TranscriptionStatusCompleted  TranscriptionStatus = "completed"  // Transcript stored, tasks derived
	TranscriptionStatusError      TranscriptionStatus = "error"      // Provider reported failure
	TranscriptionStatusTimedOut   TranscriptionStatus = "timed_out"  // Exceeded the maximum wait
)

// IsValid checks if the status is known
func (s TranscriptionStatus) IsValid() bool {
	switch s {
	case TranscriptionStatusQueued, TranscriptionStatusProcessing, TranscriptionStatusCompleted,
		TranscriptionStatusError, TranscriptionStatusTimedOut:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions can occur
func (s TranscriptionStatus) IsTerminal() bool {
	switch s {
	case TranscriptionStatusCompleted, TranscriptionStatusError, TranscriptionStatusTimedOut:
		return true
	}
	return false
}

// OpenTranscriptionStatuses lists the non-terminal states
var OpenTranscriptionStatuses = []TranscriptionStatus{
	TranscriptionStatusQueued,
	TranscriptionStatusProcessing,
}

// TranscriptionJob tracks a remote transcription job for a meeting. The
// job status lives here instead of in the meeting's transcript column.
type TranscriptionJob struct {
	ID            uuid.UUID           `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID     uuid.UUID           `json:"meeting_id" gorm:"type:uuid;not null;index"`
	ExternalJobID string              `json:"external_job_id" gorm:"type:varchar(255);not null;uniqueIndex"`
	Status        TranscriptionStatus `json:"status" gorm:"type:varchar(20);not null;index;default:'queued'"`
	UploadURL     string              `json:"upload_url" gorm:"type:text;not null"`
	LastError     *string             `json:"last_error,omitempty" gorm:"type:text"`

	SubmittedAt time.Time  `json:"submitted_at" gorm:"type:timestamp;not null"`
	CompletedAt *time.Time `json:"completed_at,omitempty" gorm:"type:timestamp"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (TranscriptionJob) TableName() string {
	return "transcription_jobs"
}

// NewTranscriptionJob creates the job row for a freshly submitted transcript
func NewTranscriptionJob(meetingID uuid.UUID, externalJobID, uploadURL string, status TranscriptionStatus) *TranscriptionJob {
	now := time.Now()
	if status != TranscriptionStatusProcessing {
		status = TranscriptionStatusQueued
	}
	return &TranscriptionJob{
		ID:            uuid.New(),
		MeetingID:     meetingID,
		ExternalJobID: externalJobID,
		Status:        status,
		UploadURL:     uploadURL,
		SubmittedAt:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate validates job data
func (j *TranscriptionJob) Validate() error {
	if j.ExternalJobID == "" {
		return ErrMissingExternalJobID
	}
	if !j.Status.IsValid() {
		return ErrInvalidTranscriptionStatus
	}
	return nil
}

// Expired reports whether the job has been open longer than maxWait
func (j *TranscriptionJob) Expired(now time.Time, maxWait time.Duration) bool {
	return !j.Status.IsTerminal() && now.Sub(j.SubmittedAt) > maxWait
}

// ErrorMessage returns the recorded failure text, if any
func (j *TranscriptionJob) ErrorMessage() string {
	if j.LastError == nil {
		return ""
	}
	return *j.LastError
}
