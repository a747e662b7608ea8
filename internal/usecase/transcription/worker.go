package transcription

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
	"github.com/johnquangdev/projectflow/pkg/jobcontext"
)

// StartWorkerPool starts the sweeper: a dispatcher that periodically lists
// open jobs and workers that poll each one, so jobs whose client went away
// still complete or time out.
func (s *transcriptionService) StartWorkerPool(ctx context.Context, workerCount int) error {
	s.workerMutex.Lock()
	defer s.workerMutex.Unlock()

	if s.isWorkerPoolRunning {
		return fmt.Errorf("worker pool already running")
	}
	if workerCount <= 0 {
		workerCount = 1
	}

	s.isWorkerPoolRunning = true
	s.workerStopChan = make(chan struct{})
	jobs := make(chan *entities.TranscriptionJob)

	if s.logger != nil {
		s.logger.Info("🚀 Starting transcription sweeper",
			zap.Int("worker_count", workerCount),
			zap.Duration("interval", s.cfg.SweepInterval),
		)
	}

	for i := 0; i < workerCount; i++ {
		s.workerWg.Add(1)
		go s.sweepWorker(ctx, i, jobs)
	}

	s.workerWg.Add(1)
	go s.dispatchOpenJobs(ctx, jobs)

	return nil
}

// StopWorkerPool gracefully stops all worker goroutines
func (s *transcriptionService) StopWorkerPool() error {
	s.workerMutex.Lock()
	defer s.workerMutex.Unlock()

	if !s.isWorkerPoolRunning {
		return fmt.Errorf("worker pool not running")
	}

	if s.logger != nil {
		s.logger.Info("🛑 Stopping transcription sweeper...")
	}

	close(s.workerStopChan)
	s.workerWg.Wait()
	s.isWorkerPoolRunning = false

	if s.logger != nil {
		s.logger.Info("✅ Transcription sweeper stopped")
	}
	return nil
}

func (s *transcriptionService) dispatchOpenJobs(ctx context.Context, jobs chan<- *entities.TranscriptionJob) {
	defer s.workerWg.Done()
	defer close(jobs)

	interval := s.cfg.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.workerStopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		open, err := s.transcriptions.ListOpen(ctx, s.cfg.SweepBatchSize)
		if err != nil {
			if s.logger != nil {
				s.logger.Error("❌ Failed to list open transcription jobs", zap.Error(err))
			}
			continue
		}

		for _, job := range open {
			if _, busy := s.inFlight.LoadOrStore(job.ID, struct{}{}); busy {
				continue
			}
			select {
			case jobs <- job:
			case <-s.workerStopChan:
				s.inFlight.Delete(job.ID)
				return
			case <-ctx.Done():
				s.inFlight.Delete(job.ID)
				return
			}
		}
	}
}

func (s *transcriptionService) sweepWorker(parentCtx context.Context, workerID int, jobs <-chan *entities.TranscriptionJob) {
	defer s.workerWg.Done()

	for job := range jobs {
		s.sweepJob(parentCtx, workerID, job)
		s.inFlight.Delete(job.ID)
	}
}

func (s *transcriptionService) sweepJob(parentCtx context.Context, workerID int, job *entities.TranscriptionJob) {
	jobCtx, cancel := jobcontext.Begin(parentCtx, jobcontext.Meta{
		JobID:      job.ID,
		ExternalID: job.ExternalJobID,
		WorkerID:   workerID,
	}, s.cfg.CompletionLockTTL)
	defer cancel()

	var res *StatusResult
	err := jobcontext.Run(jobCtx, func(ctx context.Context) error {
		var err error
		res, err = s.CheckStatus(ctx, StatusInput{
			TranscriptID: job.ExternalJobID,
			MeetingID:    job.MeetingID,
		})
		return err
	})

	if s.logger == nil {
		return
	}
	if err != nil {
		s.logger.Error("❌ Sweep poll failed", append(jobcontext.Fields(jobCtx), zap.Error(err))...)
		return
	}
	if res.Status.IsTerminal() {
		s.logger.Info("🧹 Sweep settled transcription job",
			append(jobcontext.Fields(jobCtx), zap.String("status", string(res.Status)))...)
	}
}
