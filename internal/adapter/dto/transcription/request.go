package transcription

// SubmitForm represents the non-file fields of a multipart submission
type SubmitForm struct {
	ProjectID    string `form:"projectId" validate:"required,uuid"`
	MeetingTitle string `form:"meetingTitle" validate:"omitempty,max=255"`
}

// StatusRequest represents a status poll
type StatusRequest struct {
	TranscriptID string `json:"transcriptId" validate:"required"`
	MeetingID    string `json:"meetingId" validate:"required,uuid"`
}
