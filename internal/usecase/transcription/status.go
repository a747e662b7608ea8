package transcription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
	"github.com/johnquangdev/projectflow/internal/domain/repositories"
	"github.com/johnquangdev/projectflow/internal/infrastructure/cache"
	"github.com/johnquangdev/projectflow/internal/usecase/extraction"
	ucErrors "github.com/johnquangdev/projectflow/internal/usecase/errors"
	"github.com/johnquangdev/projectflow/pkg/ai"
)

// CheckStatus performs one poll of a transcription job. Non-terminal answers
// write nothing; the completed branch is the only path that updates the
// meeting and creates tasks.
func (s *transcriptionService) CheckStatus(ctx context.Context, in StatusInput) (*StatusResult, error) {
	res, err := s.checkStatus(ctx, in)
	if err == nil {
		s.metrics.StatusCheck(string(res.Status))
	}
	return res, err
}

func (s *transcriptionService) checkStatus(ctx context.Context, in StatusInput) (*StatusResult, error) {
	if in.TranscriptID == "" || in.MeetingID == uuid.Nil {
		return nil, ucErrors.ErrMissingIDs
	}
	if !s.configured() {
		return nil, ucErrors.ErrNotConfigured
	}

	job, err := s.transcriptions.FindByExternalID(ctx, in.TranscriptID)
	if err != nil {
		return nil, fmt.Errorf("%w: load job: %v", ucErrors.ErrPersistence, err)
	}
	if job == nil || job.MeetingID != in.MeetingID {
		return nil, ucErrors.ErrTranscriptionNotFound
	}

	meeting, err := s.meetings.FindByID(ctx, job.MeetingID)
	if err != nil {
		return nil, fmt.Errorf("%w: load meeting: %v", ucErrors.ErrPersistence, err)
	}
	if meeting == nil {
		return nil, ucErrors.ErrMeetingNotFound
	}
	if in.UserID != uuid.Nil {
		if _, err := s.authorize(ctx, meeting.ProjectID, in.UserID); err != nil {
			return nil, err
		}
	}

	if job.Status.IsTerminal() {
		return s.storedResult(ctx, job)
	}

	remote, err := s.stt.Get(ctx, in.TranscriptID)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Failed to fetch transcription status",
				zap.String("transcript_id", in.TranscriptID),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("%w: get status: %v", ucErrors.ErrUpstream, err)
	}

	switch remote.Status {
	case ai.TranscriptStatusCompleted:
		return s.complete(ctx, in, job, meeting, remote)
	case ai.TranscriptStatusError:
		return s.fail(ctx, job, entities.TranscriptionStatusError, remote.Error)
	}

	// Only a job still pending remotely can time out; a late poll of a
	// finished transcript completes normally
	if job.Expired(s.now(), s.cfg.MaxWait) {
		return s.fail(ctx, job, entities.TranscriptionStatusTimedOut,
			fmt.Sprintf("transcription did not complete within %s", s.cfg.MaxWait))
	}
	if remote.Status == ai.TranscriptStatusQueued {
		return &StatusResult{Status: entities.TranscriptionStatusQueued}, nil
	}
	return &StatusResult{Status: entities.TranscriptionStatusProcessing}, nil
}

// fail records a terminal failure, deferring to whatever state won a race
func (s *transcriptionService) fail(ctx context.Context, job *entities.TranscriptionJob, status entities.TranscriptionStatus, message string) (*StatusResult, error) {
	applied, err := s.transcriptions.MarkFailed(ctx, job.ID, status, message)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Failed to record transcription failure",
				zap.String("job_id", job.ID.String()),
				zap.String("status", string(status)),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("%w: mark %s: %v", ucErrors.ErrPersistence, status, err)
	}
	if !applied {
		return s.reload(ctx, job.ExternalJobID)
	}
	if s.logger != nil {
		s.logger.Warn("⚠️ Transcription ended without a transcript",
			zap.String("transcript_id", job.ExternalJobID),
			zap.String("status", string(status)),
			zap.String("error", message),
		)
	}
	return &StatusResult{Status: status, Error: message}, nil
}

// complete extracts tasks and persists the finished transcript exactly once
func (s *transcriptionService) complete(ctx context.Context, in StatusInput, job *entities.TranscriptionJob, meeting *entities.Meeting, remote *ai.Transcript) (*StatusResult, error) {
	unlock, err := s.locker.Lock(ctx, "transcription:complete:"+job.ID.String(), s.cfg.CompletionLockTTL)
	switch {
	case errors.Is(err, cache.ErrLockHeld):
		// Another poll is completing this job right now
		s.metrics.Completion("locked", 0, 0)
		return &StatusResult{Status: entities.TranscriptionStatusProcessing}, nil
	case err != nil:
		// The conditional claim still prevents duplicate writes
		if s.logger != nil {
			s.logger.Warn("⚠️ Completion lock unavailable, relying on job claim",
				zap.String("job_id", job.ID.String()),
				zap.Error(err),
			)
		}
	default:
		defer func() {
			if err := unlock(context.Background()); err != nil && s.logger != nil {
				s.logger.Warn("⚠️ Failed to release completion lock", zap.Error(err))
			}
		}()
	}

	current, err := s.transcriptions.FindByExternalID(ctx, job.ExternalJobID)
	if err != nil {
		return nil, fmt.Errorf("%w: reload job: %v", ucErrors.ErrPersistence, err)
	}
	if current != nil && current.Status.IsTerminal() {
		return s.storedResult(ctx, current)
	}

	result := s.extractor.Extract(ctx, remote.Text)

	author := in.UserID
	if author == uuid.Nil {
		author = meeting.CreatedBy
	}
	tasks := make([]*entities.Task, 0, len(result.Tasks))
	for _, t := range result.Tasks {
		tasks = append(tasks, entities.NewMeetingTask(meeting.ProjectID, author, meeting.ID, t.Title, t.Description, t.Priority))
	}
	chapters := convertChapters(remote.Chapters)
	highlights := convertHighlights(remote.Highlights)

	applied, err := s.transcriptions.CompleteTranscription(ctx, repositories.Completion{
		JobID:      job.ID,
		MeetingID:  meeting.ID,
		Transcript: remote.Text,
		Summary:    result.Summary,
		Chapters:   chapters,
		Highlights: highlights,
		Tasks:      tasks,
	})
	if err != nil {
		s.metrics.Completion("failed", 0, 0)
		if s.logger != nil {
			s.logger.Error("❌ Failed to persist completed transcription",
				zap.String("meeting_id", meeting.ID.String()),
				zap.String("transcript_id", job.ExternalJobID),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("%w: %v", ucErrors.ErrPersistence, err)
	}
	if !applied {
		s.metrics.Completion("duplicate", 0, 0)
		return s.reload(ctx, job.ExternalJobID)
	}

	s.metrics.Completion("applied", s.now().Sub(job.SubmittedAt), len(tasks))
	if s.logger != nil {
		s.logger.Info("✅ Transcription completed",
			zap.String("meeting_id", meeting.ID.String()),
			zap.String("transcript_id", job.ExternalJobID),
			zap.String("provider", result.Provider),
			zap.Int("tasks", len(tasks)),
		)
	}

	return &StatusResult{
		Status:     entities.TranscriptionStatusCompleted,
		Transcript: remote.Text,
		Summary:    result.Summary,
		Tasks:      result.Tasks,
		Chapters:   chapters,
		Highlights: highlights,
	}, nil
}

func (s *transcriptionService) reload(ctx context.Context, externalID string) (*StatusResult, error) {
	job, err := s.transcriptions.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("%w: reload job: %v", ucErrors.ErrPersistence, err)
	}
	if job == nil {
		return nil, ucErrors.ErrTranscriptionNotFound
	}
	return s.storedResult(ctx, job)
}

// storedResult answers from the database for a job that is already terminal
func (s *transcriptionService) storedResult(ctx context.Context, job *entities.TranscriptionJob) (*StatusResult, error) {
	if job.Status != entities.TranscriptionStatusCompleted {
		return &StatusResult{Status: job.Status, Error: job.ErrorMessage()}, nil
	}

	meeting, err := s.meetings.FindByID(ctx, job.MeetingID)
	if err != nil {
		return nil, fmt.Errorf("%w: load meeting: %v", ucErrors.ErrPersistence, err)
	}
	if meeting == nil {
		return nil, ucErrors.ErrMeetingNotFound
	}
	tasks, err := s.tasks.ListByMeeting(ctx, meeting.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: load tasks: %v", ucErrors.ErrPersistence, err)
	}

	res := &StatusResult{
		Status:     entities.TranscriptionStatusCompleted,
		Tasks:      make([]extraction.ExtractedTask, 0, len(tasks)),
		Chapters:   meeting.Chapters,
		Highlights: meeting.Highlights,
	}
	if meeting.Transcript != nil {
		res.Transcript = *meeting.Transcript
	}
	if meeting.AISummary != nil {
		res.Summary = *meeting.AISummary
	}
	for _, t := range tasks {
		et := extraction.ExtractedTask{Title: t.Title, Priority: t.Priority}
		if t.Description != nil {
			et.Description = *t.Description
		}
		res.Tasks = append(res.Tasks, et)
	}
	return res, nil
}

func convertChapters(in []ai.Chapter) []entities.Chapter {
	out := make([]entities.Chapter, 0, len(in))
	for _, c := range in {
		out = append(out, entities.Chapter{
			Gist:     c.Gist,
			Headline: c.Headline,
			Summary:  c.Summary,
			Start:    c.Start,
			End:      c.End,
		})
	}
	return out
}

func convertHighlights(in []ai.Highlight) []entities.Highlight {
	out := make([]entities.Highlight, 0, len(in))
	for _, h := range in {
		out = append(out, entities.Highlight{Text: h.Text, Count: h.Count, Rank: h.Rank})
	}
	return out
}
