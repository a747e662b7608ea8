package handler

import (
	stdErrors "errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/projectflow/errors"
	dto "github.com/johnquangdev/projectflow/internal/adapter/dto/transcription"
	"github.com/johnquangdev/projectflow/internal/adapter/presenter"
	usecaseErrors "github.com/johnquangdev/projectflow/internal/usecase/errors"
	"github.com/johnquangdev/projectflow/internal/usecase/transcription"
)

const speechToTextService = "AssemblyAI"

// Transcription handles recording submission and status polling
type Transcription struct {
	svc           transcription.Service
	maxAudioBytes int64
	logger        *zap.Logger
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(svc transcription.Service, maxAudioBytes int64, logger *zap.Logger) *Transcription {
	return &Transcription{svc: svc, maxAudioBytes: maxAudioBytes, logger: logger}
}

// Submit handles POST /transcriptions
// @Summary      Submit a meeting recording
// @Description  Uploads audio, starts an asynchronous transcription job and creates the provisional meeting
// @Tags         Transcriptions
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        audio         formData  file    true   "Recorded audio"
// @Param        projectId     formData  string  true   "Project ID (UUID)"
// @Param        meetingTitle  formData  string  false  "Meeting title"
// @Success      200  {object}  transcription.SubmitResponse
// @Failure      400  {object}  common.ErrorResponse  "No audio provided, invalid project ID or missing configuration"
// @Failure      401  {object}  common.ErrorResponse  "User not authenticated"
// @Failure      403  {object}  common.ErrorResponse  "Not a member of the project"
// @Failure      404  {object}  common.ErrorResponse  "Project not found"
// @Failure      413  {object}  common.ErrorResponse  "Audio too large"
// @Failure      500  {object}  common.ErrorResponse  "Upload, job creation or database failure"
// @Router       /transcriptions [post]
func (h *Transcription) Submit(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil || fileHeader.Size == 0 {
		return HandleError(h.logger, c, errors.ErrMissingAudio())
	}
	if h.maxAudioBytes > 0 && fileHeader.Size > h.maxAudioBytes {
		return HandleError(h.logger, c, errors.ErrAudioTooLarge(h.maxAudioBytes))
	}

	var form dto.SubmitForm
	if err := c.Bind(&form); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&form); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(fmt.Sprintf("invalid submission: %v", err)))
	}
	projectID, err := uuid.Parse(form.ProjectID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("projectId must be a valid UUID"))
	}

	audio, err := readAudio(fileHeader, h.maxAudioBytes)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrProcessingFailed(err))
	}

	result, err := h.svc.Submit(c.Request().Context(), transcription.SubmitInput{
		UserID:      userID,
		ProjectID:   projectID,
		Title:       form.MeetingTitle,
		Audio:       audio,
		Filename:    filepath.Base(fileHeader.Filename),
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
	})
	if err != nil {
		return HandleError(h.logger, c, submitError(err, form.ProjectID, h.maxAudioBytes))
	}

	return c.JSON(http.StatusOK, presenter.ToSubmitResponse(result))
}

// Status handles POST /transcriptions/status
// @Summary      Check transcription status
// @Description  Polls the job once. On completion the transcript is analysed, the meeting updated and tasks created
// @Tags         Transcriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      transcription.StatusRequest  true  "Job identifiers"
// @Success      200      {object}  transcription.CompletedResponse  "Completed"
// @Success      200      {object}  transcription.PendingResponse    "Queued, processing, error or timed out"
// @Failure      400      {object}  common.ErrorResponse  "Missing transcript ID or meeting ID"
// @Failure      404      {object}  common.ErrorResponse  "Unknown job or meeting"
// @Failure      500      {object}  common.ErrorResponse  "Missing configuration or status fetch failure"
// @Router       /transcriptions/status [post]
func (h *Transcription) Status(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req dto.StatusRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if req.TranscriptID == "" || req.MeetingID == "" {
		return HandleError(h.logger, c, errors.ErrMissingIDs())
	}
	meetingID, err := uuid.Parse(req.MeetingID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("meetingId must be a valid UUID"))
	}

	result, err := h.svc.CheckStatus(c.Request().Context(), transcription.StatusInput{
		UserID:       userID,
		TranscriptID: req.TranscriptID,
		MeetingID:    meetingID,
	})
	if err != nil {
		return HandleError(h.logger, c, statusError(err, req))
	}

	return c.JSON(http.StatusOK, presenter.ToStatusResponse(result))
}

// readAudio reads the uploaded file, never more than maxBytes+1 bytes
func readAudio(fh *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	return data, nil
}

func submitError(err error, projectID string, maxBytes int64) error {
	switch {
	case stdErrors.Is(err, usecaseErrors.ErrMissingAudio):
		return errors.ErrMissingAudio()
	case stdErrors.Is(err, usecaseErrors.ErrAudioTooLarge):
		return errors.ErrAudioTooLarge(maxBytes)
	case stdErrors.Is(err, usecaseErrors.ErrNotConfigured):
		return errors.ErrMissingConfiguration(speechToTextService)
	case stdErrors.Is(err, usecaseErrors.ErrProjectNotFound):
		return errors.ErrProjectNotFound(projectID)
	case stdErrors.Is(err, usecaseErrors.ErrProjectAccessDenied):
		return errors.ErrProjectAccessDenied(projectID)
	default:
		return errors.ErrProcessingFailed(err)
	}
}

func statusError(err error, req dto.StatusRequest) error {
	switch {
	case stdErrors.Is(err, usecaseErrors.ErrMissingIDs):
		return errors.ErrMissingIDs()
	case stdErrors.Is(err, usecaseErrors.ErrNotConfigured):
		return errors.ErrMissingConfiguration(speechToTextService).WithHTTPCode(http.StatusInternalServerError)
	case stdErrors.Is(err, usecaseErrors.ErrTranscriptionNotFound):
		return errors.ErrTranscriptionNotFound(req.TranscriptID)
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound(req.MeetingID)
	case stdErrors.Is(err, usecaseErrors.ErrProjectNotFound):
		return errors.ErrMeetingNotFound(req.MeetingID)
	case stdErrors.Is(err, usecaseErrors.ErrProjectAccessDenied):
		return errors.ErrPermissionDenied("poll transcription")
	default:
		return errors.ErrStatusCheckFailed(err)
	}
}
