package jobcontext

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBegin_CarriesMeta(t *testing.T) {
	id := uuid.New()
	ctx, cancel := Begin(context.Background(), Meta{JobID: id, ExternalID: "tr-1", WorkerID: 2}, time.Second)
	defer cancel()

	meta, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, meta.JobID)
	assert.Equal(t, "tr-1", meta.ExternalID)
	assert.False(t, meta.StartTime.IsZero())
	assert.Len(t, Fields(ctx), 4)

	_, hasDeadline := ctx.Deadline()
	assert.True(t, hasDeadline)
}

func TestFields_OutsideJob(t *testing.T) {
	assert.Nil(t, Fields(context.Background()))
}

func TestRun_RecoversPanic(t *testing.T) {
	err := Run(context.Background(), func(context.Context) error {
		panic("boom")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := Run(ctx, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestRun_ReturnsError(t *testing.T) {
	want := errors.New("fail")
	assert.ErrorIs(t, Run(context.Background(), func(context.Context) error { return want }), want)
}
