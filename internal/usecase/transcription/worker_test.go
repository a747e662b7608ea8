package transcription

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
	"github.com/johnquangdev/projectflow/pkg/ai"
)

func TestWorkerPool_SettlesOpenJobs(t *testing.T) {
	f := newFixture()
	project := f.store.addProject(uuid.New())
	f.store.seedJob(project, "tr-1", time.Now())
	f.stt.statuses = []*ai.Transcript{completedTranscript(followUpTranscript)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, f.svc.StartWorkerPool(ctx, 2))
	assert.Error(t, f.svc.StartWorkerPool(ctx, 2))

	assert.Eventually(t, func() bool {
		j, _ := jobStore{f.store}.FindByExternalID(ctx, "tr-1")
		return j.Status == entities.TranscriptionStatusCompleted
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, f.svc.StopWorkerPool())
	assert.Error(t, f.svc.StopWorkerPool())

	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	assert.Equal(t, 1, f.store.meetingUpdates)
	assert.Equal(t, 1, f.store.taskInserts)
}
