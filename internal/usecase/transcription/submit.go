package transcription

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
	ucErrors "github.com/johnquangdev/projectflow/internal/usecase/errors"
)

// Submit uploads a recording, starts a remote transcription job and records
// the provisional meeting. Nothing is written unless both remote calls succeed.
func (s *transcriptionService) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	if len(in.Audio) == 0 {
		s.metrics.Submission("rejected")
		return nil, ucErrors.ErrMissingAudio
	}
	if s.maxAudioBytes > 0 && int64(len(in.Audio)) > s.maxAudioBytes {
		s.metrics.Submission("rejected")
		return nil, ucErrors.ErrAudioTooLarge
	}
	if !s.configured() {
		s.metrics.Submission("rejected")
		return nil, ucErrors.ErrNotConfigured
	}
	if _, err := s.authorize(ctx, in.ProjectID, in.UserID); err != nil {
		s.metrics.Submission("rejected")
		return nil, err
	}

	recordingURL := s.archive(ctx, in)

	uploadURL, err := s.stt.Upload(ctx, bytes.NewReader(in.Audio))
	if err != nil {
		s.metrics.Submission("failed")
		if s.logger != nil {
			s.logger.Error("❌ Failed to upload audio", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: upload: %v", ucErrors.ErrUpstream, err)
	}

	remote, err := s.stt.Submit(ctx, uploadURL)
	if err != nil {
		s.metrics.Submission("failed")
		if s.logger != nil {
			s.logger.Error("❌ Failed to create transcription job", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: create job: %v", ucErrors.ErrUpstream, err)
	}

	meeting := entities.NewRecordedMeeting(in.ProjectID, in.UserID, in.Title, recordingURL)
	job := entities.NewTranscriptionJob(meeting.ID, remote.ID, uploadURL, entities.TranscriptionStatus(remote.Status))
	job.SubmittedAt = s.now()

	if err := s.transcriptions.CreateSubmission(ctx, meeting, job); err != nil {
		s.metrics.Submission("failed")
		if s.logger != nil {
			// The remote job keeps running with nothing referencing it
			s.logger.Error("❌ Failed to persist submission, remote job orphaned",
				zap.String("transcript_id", remote.ID),
				zap.String("project_id", in.ProjectID.String()),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("%w: %v", ucErrors.ErrPersistence, err)
	}

	s.metrics.Submission("accepted")
	if s.logger != nil {
		s.logger.Info("🎙️ Recording submitted for transcription",
			zap.String("transcript_id", remote.ID),
			zap.String("meeting_id", meeting.ID.String()),
			zap.Int("audio_bytes", len(in.Audio)),
		)
	}

	return &SubmitResult{
		TranscriptID: remote.ID,
		MeetingID:    meeting.ID,
		Status:       job.Status,
	}, nil
}

// archive stores the raw audio when an archiver is configured. Failures are
// logged and the submission continues without a recording URL.
func (s *transcriptionService) archive(ctx context.Context, in SubmitInput) *string {
	if s.archiver == nil {
		return nil
	}
	ext := filepath.Ext(in.Filename)
	if ext == "" {
		ext = ".webm"
	}
	key := fmt.Sprintf("meetings/%s/%s%s", in.ProjectID, uuid.NewString(), ext)

	url, err := s.archiver.Archive(ctx, key, in.Audio, in.ContentType)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Failed to archive recording", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	return &url
}
