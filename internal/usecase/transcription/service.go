package transcription

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
	"github.com/johnquangdev/projectflow/internal/domain/repositories"
	"github.com/johnquangdev/projectflow/internal/infrastructure/cache"
	"github.com/johnquangdev/projectflow/internal/usecase/extraction"
	ucErrors "github.com/johnquangdev/projectflow/internal/usecase/errors"
	"github.com/johnquangdev/projectflow/pkg/ai"
	"github.com/johnquangdev/projectflow/pkg/config"
	"github.com/johnquangdev/projectflow/pkg/metrics"
)

// Service defines the recording-to-tasks workflow
type Service interface {
	Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error)
	CheckStatus(ctx context.Context, in StatusInput) (*StatusResult, error)
	AwaitCompletion(ctx context.Context, in StatusInput) (*StatusResult, error)
	StartWorkerPool(ctx context.Context, workerCount int) error
	StopWorkerPool() error
}

// SpeechToText is the remote transcription service
type SpeechToText interface {
	Configured() bool
	Upload(ctx context.Context, audio io.Reader) (string, error)
	Submit(ctx context.Context, audioURL string) (*ai.Transcript, error)
	Get(ctx context.Context, transcriptID string) (*ai.Transcript, error)
}

// TaskExtractor turns transcript text into a summary and tasks
type TaskExtractor interface {
	Extract(ctx context.Context, transcript string) *extraction.Result
}

// Archiver stores raw recordings
type Archiver interface {
	Archive(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// SubmitInput is one recording submission
type SubmitInput struct {
	UserID      uuid.UUID
	ProjectID   uuid.UUID
	Title       string
	Audio       []byte
	Filename    string
	ContentType string
}

// SubmitResult identifies the created job and meeting
type SubmitResult struct {
	TranscriptID string
	MeetingID    uuid.UUID
	Status       entities.TranscriptionStatus
}

// StatusInput identifies a job to poll. A nil UserID skips the project access
// check and attributes tasks to the meeting's creator; the sweeper uses it.
type StatusInput struct {
	UserID       uuid.UUID
	TranscriptID string
	MeetingID    uuid.UUID
}

// StatusResult is the answer of one poll
type StatusResult struct {
	Status     entities.TranscriptionStatus
	Transcript string
	Summary    string
	Tasks      []extraction.ExtractedTask
	Chapters   []entities.Chapter
	Highlights []entities.Highlight
	Error      string
}

// Deps groups the collaborators of the service
type Deps struct {
	Transcriptions repositories.TranscriptionRepository
	Projects       repositories.ProjectRepository
	Meetings       repositories.MeetingRepository
	Tasks          repositories.TaskRepository
	SpeechToText   SpeechToText
	Extractor      TaskExtractor
	Archiver       Archiver
	Locker         cache.Locker
	Metrics        *metrics.Metrics
	Logger         *zap.Logger
}

type transcriptionService struct {
	transcriptions repositories.TranscriptionRepository
	projects       repositories.ProjectRepository
	meetings       repositories.MeetingRepository
	tasks          repositories.TaskRepository
	stt            SpeechToText
	extractor      TaskExtractor
	archiver       Archiver
	locker         cache.Locker
	metrics        *metrics.Metrics
	logger         *zap.Logger
	cfg            config.TranscriptionConfig
	maxAudioBytes  int64
	now            func() time.Time

	workerStopChan      chan struct{}
	workerWg            sync.WaitGroup
	isWorkerPoolRunning bool
	workerMutex         sync.Mutex
	inFlight            sync.Map
}

// NewService constructs the transcription service
func NewService(deps Deps, cfg *config.Config) Service {
	return newService(deps, cfg)
}

func newService(deps Deps, cfg *config.Config) *transcriptionService {
	locker := deps.Locker
	if locker == nil {
		locker = cache.NewMemoryLocker(cache.NewMemoryStore(), "")
	}
	return &transcriptionService{
		transcriptions: deps.Transcriptions,
		projects:       deps.Projects,
		meetings:       deps.Meetings,
		tasks:          deps.Tasks,
		stt:            deps.SpeechToText,
		extractor:      deps.Extractor,
		archiver:       deps.Archiver,
		locker:         locker,
		metrics:        deps.Metrics,
		logger:         deps.Logger,
		cfg:            cfg.Transcription,
		maxAudioBytes:  cfg.Recording.MaxBytes,
		now:            time.Now,
		workerStopChan: make(chan struct{}),
	}
}

func (s *transcriptionService) configured() bool {
	return s.stt != nil && s.stt.Configured()
}

// authorize checks that the project exists and the user may use it
func (s *transcriptionService) authorize(ctx context.Context, projectID, userID uuid.UUID) (*entities.Project, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: load project: %v", ucErrors.ErrPersistence, err)
	}
	if project == nil {
		return nil, ucErrors.ErrProjectNotFound
	}
	if userID == uuid.Nil || project.CreatedBy == userID {
		return project, nil
	}
	ok, err := s.projects.IsMember(ctx, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: check membership: %v", ucErrors.ErrPersistence, err)
	}
	if !ok {
		return nil, ucErrors.ErrProjectAccessDenied
	}
	return project, nil
}
