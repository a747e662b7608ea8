package presenter

import (
	dto "github.com/johnquangdev/projectflow/internal/adapter/dto/transcription"
	"github.com/johnquangdev/projectflow/internal/domain/entities"
	"github.com/johnquangdev/projectflow/internal/usecase/extraction"
	"github.com/johnquangdev/projectflow/internal/usecase/transcription"
)

// ToSubmitResponse converts a submission result to its wire shape
func ToSubmitResponse(r *transcription.SubmitResult) *dto.SubmitResponse {
	if r == nil {
		return nil
	}
	return &dto.SubmitResponse{
		TranscriptID: r.TranscriptID,
		MeetingID:    r.MeetingID.String(),
		Status:       string(r.Status),
	}
}

// ToStatusResponse returns the completed payload for completed jobs and the
// short {status, error} payload otherwise
func ToStatusResponse(r *transcription.StatusResult) interface{} {
	if r == nil {
		return nil
	}
	if r.Status != entities.TranscriptionStatusCompleted {
		return &dto.PendingResponse{Status: string(r.Status), Error: r.Error}
	}
	return &dto.CompletedResponse{
		Status:     string(r.Status),
		Transcript: r.Transcript,
		Summary:    r.Summary,
		Tasks:      ToTaskItems(r.Tasks),
		Chapters:   ToChapterItems(r.Chapters),
		Highlights: ToHighlightItems(r.Highlights),
	}
}

// ToTaskItems converts extracted tasks, never returning nil
func ToTaskItems(tasks []extraction.ExtractedTask) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, dto.TaskItem{
			Title:       t.Title,
			Description: t.Description,
			Priority:    string(t.Priority),
		})
	}
	return items
}

// ToChapterItems converts chapters, never returning nil
func ToChapterItems(chapters []entities.Chapter) []dto.ChapterItem {
	items := make([]dto.ChapterItem, 0, len(chapters))
	for _, c := range chapters {
		items = append(items, dto.ChapterItem{
			Gist:     c.Gist,
			Headline: c.Headline,
			Summary:  c.Summary,
			Start:    c.Start,
			End:      c.End,
		})
	}
	return items
}

// ToHighlightItems converts highlights, never returning nil
func ToHighlightItems(highlights []entities.Highlight) []dto.HighlightItem {
	items := make([]dto.HighlightItem, 0, len(highlights))
	for _, h := range highlights {
		items = append(items, dto.HighlightItem{Text: h.Text, Count: h.Count, Rank: h.Rank})
	}
	return items
}
