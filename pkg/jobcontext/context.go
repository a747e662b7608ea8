package jobcontext

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type keyContext string

const keyMeta keyContext = "job_meta"

// DefaultTimeout bounds a single background job run
const DefaultTimeout = 5 * time.Minute

// Meta holds metadata for a background job execution
type Meta struct {
	JobID      uuid.UUID
	ExternalID string
	WorkerID   int
	StartTime  time.Time
}

// Begin derives a job context carrying meta, bounded by timeout (DefaultTimeout when zero)
func Begin(parent context.Context, meta Meta, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if meta.StartTime.IsZero() {
		meta.StartTime = time.Now()
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	return context.WithValue(ctx, keyMeta, meta), cancel
}

// FromContext extracts job metadata from context
func FromContext(ctx context.Context) (Meta, bool) {
	meta, ok := ctx.Value(keyMeta).(Meta)
	return meta, ok
}

// Fields returns zap fields describing the job in ctx, or nil outside a job
func Fields(ctx context.Context) []zap.Field {
	meta, ok := FromContext(ctx)
	if !ok {
		return nil
	}
	return []zap.Field{
		zap.String("job_id", meta.JobID.String()),
		zap.String("transcript_id", meta.ExternalID),
		zap.Int("worker_id", meta.WorkerID),
		zap.Duration("elapsed", time.Since(meta.StartTime)),
	}
}

// Run executes fn, turning a panic into an error
func Run(ctx context.Context, fn func(context.Context) error) (err error) {
	if ctx.Err() != nil {
		return fmt.Errorf("context cancelled before job execution: %w", ctx.Err())
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic recovered: %v", p)
		}
	}()
	return fn(ctx)
}
