package transcription

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
	ucErrors "github.com/johnquangdev/projectflow/internal/usecase/errors"
	"github.com/johnquangdev/projectflow/pkg/ai"
)

const followUpTranscript = "We need to follow up with the client by Friday. This is urgent."

func TestCheckStatus_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CheckStatus(context.Background(), StatusInput{MeetingID: uuid.New()})
	assert.ErrorIs(t, err, ucErrors.ErrMissingIDs)

	_, err = f.svc.CheckStatus(context.Background(), StatusInput{TranscriptID: "tr-1"})
	assert.ErrorIs(t, err, ucErrors.ErrMissingIDs)

	f.stt.configured = false
	_, err = f.svc.CheckStatus(context.Background(), StatusInput{TranscriptID: "tr-1", MeetingID: uuid.New()})
	assert.ErrorIs(t, err, ucErrors.ErrNotConfigured)
}

func TestCheckStatus_UnknownJobOrMeetingMismatch(t *testing.T) {
	f := newFixture()
	project := f.store.addProject(uuid.New())
	f.store.seedJob(project, "tr-1", time.Now())

	_, err := f.svc.CheckStatus(context.Background(), StatusInput{TranscriptID: "nope", MeetingID: uuid.New()})
	assert.ErrorIs(t, err, ucErrors.ErrTranscriptionNotFound)

	_, err = f.svc.CheckStatus(context.Background(), StatusInput{TranscriptID: "tr-1", MeetingID: uuid.New()})
	assert.ErrorIs(t, err, ucErrors.ErrTranscriptionNotFound)
}

func TestCheckStatus_ForeignUserDenied(t *testing.T) {
	f := newFixture()
	project := f.store.addProject(uuid.New())
	meeting, _ := f.store.seedJob(project, "tr-1", time.Now())

	_, err := f.svc.CheckStatus(context.Background(), StatusInput{UserID: uuid.New(), TranscriptID: "tr-1", MeetingID: meeting.ID})
	assert.ErrorIs(t, err, ucErrors.ErrProjectAccessDenied)
	assert.Zero(t, f.stt.gets)
}

func TestCheckStatus_ProcessingWritesNothing(t *testing.T) {
	f := newFixture()
	project := f.store.addProject(uuid.New())
	meeting, _ := f.store.seedJob(project, "tr-1", time.Now())
	f.stt.statuses = []*ai.Transcript{{ID: "tr-1", Status: ai.TranscriptStatusProcessing}}

	res, err := f.svc.CheckStatus(context.Background(), StatusInput{UserID: project.CreatedBy, TranscriptID: "tr-1", MeetingID: meeting.ID})
	require.NoError(t, err)

	assert.Equal(t, entities.TranscriptionStatusProcessing, res.Status)
	assert.False(t, res.Status.IsTerminal())
	assert.Zero(t, f.store.writes)
	assert.Equal(t, entities.TranscriptionStatusQueued, f.store.jobs["tr-1"].Status)
	assert.False(t, f.store.meetings[meeting.ID].HasTranscript())
	assert.Zero(t, f.extractor.calls)
}

func TestCheckStatus_CompletedWritesOnce(t *testing.T) {
	f := newFixture()
	project := f.store.addProject(uuid.New())
	meeting, _ := f.store.seedJob(project, "tr-1", time.Now())
	f.stt.statuses = []*ai.Transcript{completedTranscript(followUpTranscript)}
	in := StatusInput{UserID: project.CreatedBy, TranscriptID: "tr-1", MeetingID: meeting.ID}

	res, err := f.svc.CheckStatus(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, entities.TranscriptionStatusCompleted, res.Status)
	assert.Equal(t, followUpTranscript, res.Transcript)
	assert.Contains(t, res.Summary, "1 potential action items")
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, entities.TaskPriorityUrgent, res.Tasks[0].Priority)
	require.Len(t, res.Chapters, 1)
	require.Len(t, res.Highlights, 1)

	assert.Equal(t, 1, f.store.meetingUpdates)
	assert.Equal(t, len(res.Tasks), f.store.taskInserts)

	task := f.store.tasks[0]
	assert.Equal(t, project.ID, task.ProjectID)
	assert.Equal(t, project.CreatedBy, task.CreatedBy)
	assert.Equal(t, entities.TaskStatusTodo, task.Status)
	assert.Equal(t, meeting.ID, *task.SourceMeetingID)

	// A repeated poll answers from the database
	again, err := f.svc.CheckStatus(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entities.TranscriptionStatusCompleted, again.Status)
	assert.Equal(t, res.Summary, again.Summary)
	assert.Len(t, again.Tasks, 1)
	assert.Equal(t, 1, f.store.meetingUpdates)
	assert.Equal(t, 1, f.store.taskInserts)
	assert.Equal(t, 1, f.stt.gets)
}

func TestCheckStatus_ConcurrentCompletionsDoNotDuplicate(t *testing.T) {
	f := newFixture()
	project := f.store.addProject(uuid.New())
	meeting, _ := f.store.seedJob(project, "tr-1", time.Now())
	f.stt.statuses = []*ai.Transcript{completedTranscript(followUpTranscript)}
	in := StatusInput{UserID: project.CreatedBy, TranscriptID: "tr-1", MeetingID: meeting.ID}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CheckStatus(context.Background(), in)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, f.store.meetingUpdates)
	assert.Equal(t, 1, f.store.taskInserts)
	assert.Len(t, f.store.tasks, 1)
}

func TestCheckStatus_LostClaimAnswersFromDatabase(t *testing.T) {
	f := newFixture()
	project := f.store.addProject(uuid.New())
	meeting, job := f.store.seedJob(project, "tr-1", time.Now())
	f.stt.statuses = []*ai.Transcript{completedTranscript(followUpTranscript)}

	// Another completion lands after this poll read the job
	remote := completedTranscript(followUpTranscript)
	jobCopy := *job
	f.store.jobs["tr-1"].Status = entities.TranscriptionStatusCompleted
	summary := "stored summary"
	f.store.meetings[meeting.ID].AISummary = &summary

	res, err := f.svc.complete(context.Background(), StatusInput{TranscriptID: "tr-1", MeetingID: meeting.ID}, &jobCopy, f.store.meetings[meeting.ID], remote)
	require.NoError(t, err)

	assert.Equal(t, entities.TranscriptionStatusCompleted, res.Status)
	assert.Equal(t, "stored summary", res.Summary)
	assert.Zero(t, f.store.meetingUpdates)
	assert.Zero(t, f.extractor.calls)
}

func TestCheckStatus_PersistenceFailureKeepsJobOpen(t *testing.T) {
	f := newFixture()
	project := f.store.addProject(uuid.New())
	meeting, _ := f.store.seedJob(project, "tr-1", time.Now())
	f.stt.statuses = []*ai.Transcript{completedTranscript(followUpTranscript)}
	f.store.failComplete = errors.New("tx aborted")
	in := StatusInput{UserID: project.CreatedBy, TranscriptID: "tr-1", MeetingID: meeting.ID}

	_, err := f.svc.CheckStatus(context.Background(), in)
	assert.ErrorIs(t, err, ucErrors.ErrPersistence)
	assert.Equal(t, entities.TranscriptionStatusQueued, f.store.jobs["tr-1"].Status)

	f.store.failComplete = nil
	res, err := f.svc.CheckStatus(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entities.TranscriptionStatusCompleted, res.Status)
	assert.Equal(t, 1, f.store.meetingUpdates)
}

func TestCheckStatus_RemoteError(t *testing.T) {
	f := newFixture()
	project := f.store.addProject(uuid.New())
	meeting, _ := f.store.seedJob(project, "tr-1", time.Now())
	f.stt.statuses = []*ai.Transcript{{ID: "tr-1", Status: ai.TranscriptStatusError, Error: "audio too short"}}
	in := StatusInput{UserID: project.CreatedBy, TranscriptID: "tr-1", MeetingID: meeting.ID}

	res, err := f.svc.CheckStatus(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entities.TranscriptionStatusError, res.Status)
	assert.Equal(t, "audio too short", res.Error)
	assert.Equal(t, entities.TranscriptionStatusError, f.store.jobs["tr-1"].Status)

	// terminal: no further remote calls
	res, err = f.svc.CheckStatus(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "audio too short", res.Error)
	assert.Equal(t, 1, f.stt.gets)
	assert.False(t, f.store.meetings[meeting.ID].HasTranscript())
}

func TestCheckStatus_TimesOut(t *testing.T) {
	f := newFixture()
	project := f.store.addProject(uuid.New())
	meeting, _ := f.store.seedJob(project, "tr-1", time.Now().Add(-3*time.Hour))
	f.stt.statuses = []*ai.Transcript{{ID: "tr-1", Status: ai.TranscriptStatusProcessing}}
	in := StatusInput{TranscriptID: "tr-1", MeetingID: meeting.ID}

	res, err := f.svc.CheckStatus(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, entities.TranscriptionStatusTimedOut, res.Status)
	assert.Contains(t, res.Error, "2h0m0s")
	assert.Equal(t, 1, f.stt.gets)
	assert.Equal(t, entities.TranscriptionStatusTimedOut, f.store.jobs["tr-1"].Status)
	assert.Zero(t, f.extractor.calls)

	// terminal: answered from the database
	res, err = f.svc.CheckStatus(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entities.TranscriptionStatusTimedOut, res.Status)
	assert.Equal(t, 1, f.stt.gets)
}

func TestCheckStatus_LatePollOfFinishedTranscriptCompletes(t *testing.T) {
	f := newFixture()
	project := f.store.addProject(uuid.New())
	meeting, _ := f.store.seedJob(project, "tr-1", time.Now().Add(-2*time.Hour-time.Minute))
	f.stt.statuses = []*ai.Transcript{completedTranscript(followUpTranscript)}

	res, err := f.svc.CheckStatus(context.Background(), StatusInput{TranscriptID: "tr-1", MeetingID: meeting.ID})
	require.NoError(t, err)

	assert.Equal(t, entities.TranscriptionStatusCompleted, res.Status)
	assert.Equal(t, entities.TranscriptionStatusCompleted, f.store.jobs["tr-1"].Status)
	assert.True(t, f.store.meetings[meeting.ID].HasTranscript())
	assert.Len(t, f.store.tasks, 1)
}

func TestCheckStatus_LatePollOfFailedTranscriptKeepsRemoteError(t *testing.T) {
	f := newFixture()
	project := f.store.addProject(uuid.New())
	meeting, _ := f.store.seedJob(project, "tr-1", time.Now().Add(-3*time.Hour))
	f.stt.statuses = []*ai.Transcript{{ID: "tr-1", Status: ai.TranscriptStatusError, Error: "unsupported codec"}}

	res, err := f.svc.CheckStatus(context.Background(), StatusInput{TranscriptID: "tr-1", MeetingID: meeting.ID})
	require.NoError(t, err)
	assert.Equal(t, entities.TranscriptionStatusError, res.Status)
	assert.Equal(t, "unsupported codec", res.Error)
}

func TestCheckStatus_UpstreamFailure(t *testing.T) {
	f := newFixture()
	project := f.store.addProject(uuid.New())
	meeting, _ := f.store.seedJob(project, "tr-1", time.Now())
	f.stt.getErr = errors.New("503")

	_, err := f.svc.CheckStatus(context.Background(), StatusInput{TranscriptID: "tr-1", MeetingID: meeting.ID})
	assert.ErrorIs(t, err, ucErrors.ErrUpstream)
	assert.Zero(t, f.store.writes)
}

func TestCheckStatus_SweeperAttributesTasksToCreator(t *testing.T) {
	f := newFixture()
	project := f.store.addProject(uuid.New())
	meeting, _ := f.store.seedJob(project, "tr-1", time.Now())
	f.stt.statuses = []*ai.Transcript{completedTranscript(followUpTranscript)}

	_, err := f.svc.CheckStatus(context.Background(), StatusInput{TranscriptID: "tr-1", MeetingID: meeting.ID})
	require.NoError(t, err)
	require.Len(t, f.store.tasks, 1)
	assert.Equal(t, meeting.CreatedBy, f.store.tasks[0].CreatedBy)
}
