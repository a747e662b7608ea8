package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	DefaultMeetingTitle       = "Recorded Meeting"
	DefaultMeetingDescription = "Meeting recorded via voice recorder"
)

// Chapter is an auto-generated section summary of a meeting
type Chapter struct {
	Gist     string `json:"gist"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Start    int64  `json:"start"`
	End      int64  `json:"end"`
}

// Highlight is a key phrase detected in a meeting
type Highlight struct {
	Text  string  `json:"text"`
	Count int64   `json:"count"`
	Rank  float64 `json:"rank"`
}

// Meeting is a recorded meeting inside a project. It is created as a
// provisional row at submission; transcript fields stay empty until the
// transcription job completes.
type Meeting struct {
	ID           uuid.UUID                      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProjectID    uuid.UUID                      `json:"project_id" gorm:"type:uuid;not null;index"`
	Title        string                         `json:"title" gorm:"type:varchar(255);not null"`
	Description  *string                        `json:"description,omitempty" gorm:"type:text"`
	StartTime    *time.Time                     `json:"start_time,omitempty" gorm:"type:timestamp"`
	EndTime      *time.Time                     `json:"end_time,omitempty" gorm:"type:timestamp"`
	RecordingURL *string                        `json:"recording_url,omitempty" gorm:"type:text"`
	Transcript   *string                        `json:"transcript,omitempty" gorm:"type:text"`
	AISummary    *string                        `json:"ai_summary,omitempty" gorm:"column:ai_summary;type:text"`
	Chapters     datatypes.JSONSlice[Chapter]   `json:"chapters,omitempty" gorm:"type:jsonb"`
	Highlights   datatypes.JSONSlice[Highlight] `json:"highlights,omitempty" gorm:"type:jsonb"`
	CreatedBy    uuid.UUID                      `json:"created_by" gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time                      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time                      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewRecordedMeeting creates the provisional meeting row for a recording
func NewRecordedMeeting(projectID, createdBy uuid.UUID, title string, recordingURL *string) *Meeting {
	now := time.Now()
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultMeetingTitle
	}
	description := DefaultMeetingDescription
	return &Meeting{
		ID:           uuid.New(),
		ProjectID:    projectID,
		Title:        title,
		Description:  &description,
		StartTime:    &now,
		EndTime:      &now,
		RecordingURL: recordingURL,
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HasTranscript reports whether the completion path has written the transcript
func (m *Meeting) HasTranscript() bool {
	return m.Transcript != nil
}
