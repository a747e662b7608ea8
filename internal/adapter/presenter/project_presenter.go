package presenter

import (
	dto "github.com/johnquangdev/projectflow/internal/adapter/dto/project"
	"github.com/johnquangdev/projectflow/internal/domain/entities"
	projectUsecase "github.com/johnquangdev/projectflow/internal/usecase/project"
)

// ToProjectResponse converts a Project entity to ProjectResponse DTO
func ToProjectResponse(p *entities.Project) *dto.ProjectResponse {
	if p == nil {
		return nil
	}
	return &dto.ProjectResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		CreatedBy:   p.CreatedBy.String(),
		DueDate:     p.DueDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProjectResponses converts a slice of projects
func ToProjectResponses(projects []*entities.Project) []*dto.ProjectResponse {
	out := make([]*dto.ProjectResponse, len(projects))
	for i, p := range projects {
		out[i] = ToProjectResponse(p)
	}
	return out
}

// ToTaskResponse converts a Task entity to TaskResponse DTO
func ToTaskResponse(t *entities.Task) *dto.TaskResponse {
	if t == nil {
		return nil
	}
	response := &dto.TaskResponse{
		ID:          t.ID.String(),
		ProjectID:   t.ProjectID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedBy:   t.CreatedBy.String(),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
	}

	// Set optional references
	if t.AssignedTo != nil {
		id := t.AssignedTo.String()
		response.AssignedTo = &id
	}
	if t.SourceMeetingID != nil {
		id := t.SourceMeetingID.String()
		response.SourceMeetingID = &id
	}
	return response
}

// ToTaskResponses converts a slice of tasks
func ToTaskResponses(tasks []*entities.Task) []*dto.TaskResponse {
	out := make([]*dto.TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskResponse(t)
	}
	return out
}

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *dto.MeetingResponse {
	if m == nil {
		return nil
	}
	response := &dto.MeetingResponse{
		ID:           m.ID.String(),
		ProjectID:    m.ProjectID.String(),
		Title:        m.Title,
		Description:  m.Description,
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
		RecordingURL: m.RecordingURL,
		Transcript:   m.Transcript,
		AISummary:    m.AISummary,
		CreatedBy:    m.CreatedBy.String(),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if len(m.Chapters) > 0 {
		response.Chapters = ToChapterItems(m.Chapters)
	}
	if len(m.Highlights) > 0 {
		response.Highlights = ToHighlightItems(m.Highlights)
	}
	return response
}

// ToMeetingResponses converts a slice of meetings
func ToMeetingResponses(meetings []*entities.Meeting) []*dto.MeetingResponse {
	out := make([]*dto.MeetingResponse, len(meetings))
	for i, m := range meetings {
		out[i] = ToMeetingResponse(m)
	}
	return out
}

// ToMeetingDetailResponse converts a meeting with its job and tasks
func ToMeetingDetailResponse(d *projectUsecase.MeetingDetail) *dto.MeetingDetailResponse {
	if d == nil {
		return nil
	}
	response := &dto.MeetingDetailResponse{
		Meeting: ToMeetingResponse(d.Meeting),
		Tasks:   ToTaskResponses(d.Tasks),
	}
	if d.Job != nil {
		response.Transcription = &dto.TranscriptionJobResponse{
			TranscriptID: d.Job.ExternalJobID,
			Status:       string(d.Job.Status),
			Error:        d.Job.ErrorMessage(),
			SubmittedAt:  d.Job.SubmittedAt,
			CompletedAt:  d.Job.CompletedAt,
		}
	}
	return response
}
