package project

import (
	"time"

	"github.com/johnquangdev/projectflow/internal/adapter/dto/transcription"
)

// ProjectResponse represents a project in responses
type ProjectResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	CreatedBy   string     `json:"created_by"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskResponse represents a task in responses
type TaskResponse struct {
	ID              string     `json:"id"`
	ProjectID       string     `json:"project_id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority"`
	AssignedTo      *string    `json:"assigned_to,omitempty"`
	CreatedBy       string     `json:"created_by"`
	SourceMeetingID *string    `json:"source_meeting_id,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// MeetingResponse represents a meeting in responses
type MeetingResponse struct {
	ID           string                        `json:"id"`
	ProjectID    string                        `json:"project_id"`
	Title        string                        `json:"title"`
	Description  *string                       `json:"description,omitempty"`
	StartTime    *time.Time                    `json:"start_time,omitempty"`
	EndTime      *time.Time                    `json:"end_time,omitempty"`
	RecordingURL *string                       `json:"recording_url,omitempty"`
	Transcript   *string                       `json:"transcript,omitempty"`
	AISummary    *string                       `json:"ai_summary,omitempty"`
	Chapters     []transcription.ChapterItem   `json:"chapters,omitempty"`
	Highlights   []transcription.HighlightItem `json:"highlights,omitempty"`
	CreatedBy    string                        `json:"created_by"`
	CreatedAt    time.Time                     `json:"created_at"`
	UpdatedAt    time.Time                     `json:"updated_at"`
}

// TranscriptionJobResponse represents the transcription state of a meeting
type TranscriptionJobResponse struct {
	TranscriptID string     `json:"transcript_id"`
	Status       string     `json:"status"`
	Error        string     `json:"error,omitempty"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// MeetingDetailResponse is a meeting with its transcription state and tasks
type MeetingDetailResponse struct {
	Meeting       *MeetingResponse          `json:"meeting"`
	Transcription *TranscriptionJobResponse `json:"transcription,omitempty"`
	Tasks         []*TaskResponse           `json:"tasks"`
}
