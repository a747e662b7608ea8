package transcription

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
	"github.com/johnquangdev/projectflow/internal/domain/repositories"
	"github.com/johnquangdev/projectflow/internal/usecase/extraction"
	"github.com/johnquangdev/projectflow/pkg/ai"
	"github.com/johnquangdev/projectflow/pkg/config"
)

// store is an in-memory stand-in for the gorm repositories that mirrors the
// conditional-claim semantics of CompleteTranscription
type store struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*entities.Project
	members  map[uuid.UUID][]uuid.UUID
	meetings map[uuid.UUID]*entities.Meeting
	jobs     map[string]*entities.TranscriptionJob
	tasks    []*entities.Task

	submissions    int
	meetingUpdates int
	taskInserts    int
	writes         int
	failSubmission error
	failComplete   error
}

func newStore() *store {
	return &store{
		projects: map[uuid.UUID]*entities.Project{},
		members:  map[uuid.UUID][]uuid.UUID{},
		meetings: map[uuid.UUID]*entities.Meeting{},
		jobs:     map[string]*entities.TranscriptionJob{},
	}
}

func (s *store) addProject(owner uuid.UUID) *entities.Project {
	p := entities.NewProject("Launch", nil, owner, nil)
	s.projects[p.ID] = p
	return p
}

// seedJob stores a submitted meeting and its open job
func (s *store) seedJob(project *entities.Project, externalID string, submittedAt time.Time) (*entities.Meeting, *entities.TranscriptionJob) {
	m := entities.NewRecordedMeeting(project.ID, project.CreatedBy, "", nil)
	j := entities.NewTranscriptionJob(m.ID, externalID, "https://cdn/upload", entities.TranscriptionStatusQueued)
	j.SubmittedAt = submittedAt
	s.meetings[m.ID] = m
	s.jobs[externalID] = j
	return m, j
}

// projects

func (s *store) Create(_ context.Context, p *entities.Project, owner *entities.ProjectMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = p
	if owner != nil {
		s.members[p.ID] = append(s.members[p.ID], owner.UserID)
	}
	return nil
}

func (s *store) FindByID(_ context.Context, id uuid.UUID) (*entities.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projects[id], nil
}

func (s *store) IsMember(_ context.Context, projectID, userID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.projects[projectID]; ok && p.CreatedBy == userID {
		return true, nil
	}
	for _, id := range s.members[projectID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *store) ListForUser(context.Context, uuid.UUID) ([]*entities.Project, error) {
	return nil, nil
}

// meetings and tasks

type meetingStore struct{ *store }

func (m meetingStore) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	meeting, ok := m.meetings[id]
	if !ok {
		return nil, nil
	}
	cp := *meeting
	return &cp, nil
}

func (m meetingStore) ListByProject(context.Context, uuid.UUID) ([]*entities.Meeting, error) {
	return nil, nil
}

func (s *store) ListByProject(context.Context, uuid.UUID) ([]*entities.Task, error) {
	return nil, nil
}

func (s *store) ListByMeeting(_ context.Context, meetingID uuid.UUID) ([]*entities.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entities.Task
	for _, t := range s.tasks {
		if t.SourceMeetingID != nil && *t.SourceMeetingID == meetingID {
			out = append(out, t)
		}
	}
	return out, nil
}

// transcriptions

type jobStore struct{ *store }

func (j jobStore) CreateSubmission(_ context.Context, m *entities.Meeting, job *entities.TranscriptionJob) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.failSubmission != nil {
		return j.failSubmission
	}
	j.submissions++
	j.writes++
	j.meetings[m.ID] = m
	j.jobs[job.ExternalJobID] = job
	return nil
}

func (j jobStore) FindByExternalID(_ context.Context, externalID string) (*entities.TranscriptionJob, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	job, ok := j.jobs[externalID]
	if !ok {
		return nil, nil
	}
	cp := *job
	return &cp, nil
}

func (j jobStore) FindLatestByMeeting(_ context.Context, meetingID uuid.UUID) (*entities.TranscriptionJob, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, job := range j.jobs {
		if job.MeetingID == meetingID {
			cp := *job
			return &cp, nil
		}
	}
	return nil, nil
}

func (j jobStore) ListOpen(_ context.Context, _ int) ([]*entities.TranscriptionJob, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []*entities.TranscriptionJob
	for _, job := range j.jobs {
		if !job.Status.IsTerminal() {
			cp := *job
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (j jobStore) byID(id uuid.UUID) *entities.TranscriptionJob {
	for _, job := range j.jobs {
		if job.ID == id {
			return job
		}
	}
	return nil
}

func (j jobStore) MarkFailed(_ context.Context, jobID uuid.UUID, status entities.TranscriptionStatus, message string) (bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	job := j.byID(jobID)
	if job == nil || job.Status.IsTerminal() {
		return false, nil
	}
	j.writes++
	job.Status = status
	job.LastError = &message
	return true, nil
}

func (j jobStore) CompleteTranscription(_ context.Context, c repositories.Completion) (bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.failComplete != nil {
		return false, j.failComplete
	}
	job := j.byID(c.JobID)
	if job == nil || job.Status.IsTerminal() {
		return false, nil
	}
	job.Status = entities.TranscriptionStatusCompleted
	m := j.meetings[c.MeetingID]
	m.Transcript = &c.Transcript
	m.AISummary = &c.Summary
	m.Chapters = c.Chapters
	m.Highlights = c.Highlights
	j.meetingUpdates++
	j.taskInserts += len(c.Tasks)
	j.tasks = append(j.tasks, c.Tasks...)
	j.writes++
	return true, nil
}

// speech-to-text

type fakeSTT struct {
	mu         sync.Mutex
	configured bool
	uploadErr  error
	submitErr  error
	getErr     error
	statuses   []*ai.Transcript // consumed by Get in order; the last one repeats
	uploads    int
	gets       int
}

func (f *fakeSTT) Configured() bool { return f.configured }

func (f *fakeSTT) Upload(_ context.Context, audio io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	_, _ = io.ReadAll(audio)
	return "https://cdn/upload/1", nil
}

func (f *fakeSTT) Submit(context.Context, string) (*ai.Transcript, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &ai.Transcript{ID: "tr-new", Status: ai.TranscriptStatusQueued}, nil
}

func (f *fakeSTT) Get(context.Context, string) (*ai.Transcript, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if len(f.statuses) == 0 {
		return nil, errors.New("no status scripted")
	}
	next := f.statuses[0]
	if len(f.statuses) > 1 {
		f.statuses = f.statuses[1:]
	}
	return next, nil
}

func completedTranscript(text string) *ai.Transcript {
	return &ai.Transcript{
		ID:         "tr-1",
		Status:     ai.TranscriptStatusCompleted,
		Text:       text,
		Chapters:   []ai.Chapter{{Headline: "Client follow-up", Start: 0, End: 4200}},
		Highlights: []ai.Highlight{{Text: "client", Count: 2, Rank: 0.8}},
	}
}

type countingExtractor struct {
	mu    sync.Mutex
	inner *extraction.Extractor
	calls int
}

func (c *countingExtractor) Extract(ctx context.Context, transcript string) *extraction.Result {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.inner.Extract(ctx, transcript)
}

type fakeArchiver struct {
	err  error
	keys []string
}

func (f *fakeArchiver) Archive(_ context.Context, key string, _ []byte, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "http://minio/recordings/" + key, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Transcription: config.TranscriptionConfig{
			InitialDelay:      time.Millisecond,
			InitialInterval:   time.Millisecond,
			MaxInterval:       5 * time.Millisecond,
			Multiplier:        1.5,
			MaxWait:           2 * time.Hour,
			SweepInterval:     5 * time.Millisecond,
			SweepWorkers:      2,
			SweepBatchSize:    10,
			CompletionLockTTL: time.Minute,
		},
		Recording: config.RecordingConfig{
			MaxDuration: 2 * time.Hour,
			MaxBytes:    1 << 20,
		},
	}
}

type fixture struct {
	store     *store
	stt       *fakeSTT
	extractor *countingExtractor
	archiver  *fakeArchiver
	svc       *transcriptionService
}

func newFixture() *fixture {
	st := newStore()
	stt := &fakeSTT{configured: true}
	ex := &countingExtractor{inner: extraction.NewExtractor(nil, nil)}
	arch := &fakeArchiver{}
	svc := newService(Deps{
		Transcriptions: jobStore{st},
		Projects:       st,
		Meetings:       meetingStore{st},
		Tasks:          st,
		SpeechToText:   stt,
		Extractor:      ex,
		Archiver:       arch,
	}, testConfig())
	return &fixture{store: st, stt: stt, extractor: ex, archiver: arch, svc: svc}
}
