package transcription

// SubmitResponse is returned after a recording was accepted
type SubmitResponse struct {
	TranscriptID string `json:"transcriptId"`
	MeetingID    string `json:"meetingId"`
	Status       string `json:"status"`
}

// TaskItem is one extracted action item
type TaskItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// ChapterItem is an auto-generated section summary
type ChapterItem struct {
	Gist     string `json:"gist"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Start    int64  `json:"start"`
	End      int64  `json:"end"`
}

// HighlightItem is a detected key phrase
type HighlightItem struct {
	Text  string  `json:"text"`
	Count int64   `json:"count"`
	Rank  float64 `json:"rank"`
}

// CompletedResponse is the poll answer once the transcript has been processed
type CompletedResponse struct {
	Status     string          `json:"status"`
	Transcript string          `json:"transcript"`
	Summary    string          `json:"summary"`
	Tasks      []TaskItem      `json:"tasks"`
	Chapters   []ChapterItem   `json:"chapters"`
	Highlights []HighlightItem `json:"highlights"`
}

// PendingResponse is the poll answer for in-progress, failed or timed-out jobs
type PendingResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
