package transcription

import (
	"context"
	"errors"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
	"github.com/johnquangdev/projectflow/pkg/config"
)

// Policy bounds how long and how often a job is polled
type Policy struct {
	InitialDelay    time.Duration
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	MaxWait         time.Duration
}

// PolicyFromConfig builds the polling policy from configuration
func PolicyFromConfig(cfg config.TranscriptionConfig) Policy {
	return Policy{
		InitialDelay:    cfg.InitialDelay,
		InitialInterval: cfg.InitialInterval,
		MaxInterval:     cfg.MaxInterval,
		Multiplier:      cfg.Multiplier,
		MaxWait:         cfg.MaxWait,
	}
}

// CheckFunc performs one status poll
type CheckFunc func(ctx context.Context) (*StatusResult, error)

var errPending = errors.New("transcription still pending")

// Await polls check until the job reaches a terminal state, backing off
// exponentially between polls. When MaxWait elapses first the outcome is
// timed_out. Check errors stop polling immediately. onPoll, when set, sees
// every answer.
func Await(ctx context.Context, p Policy, check CheckFunc, onPoll func(*StatusResult)) (*StatusResult, error) {
	if p.InitialDelay > 0 {
		timer := time.NewTimer(p.InitialDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval
	b.Multiplier = p.Multiplier
	b.RandomizationFactor = 0.1
	b.MaxElapsedTime = p.MaxWait

	var last *StatusResult
	op := func() error {
		res, err := check(ctx)
		if err != nil {
			return backoff.Permanent(err)
		}
		last = res
		if onPoll != nil {
			onPoll(res)
		}
		if res.Status.IsTerminal() {
			return nil
		}
		return errPending
	}

	err := backoff.Retry(op, backoff.WithContext(b, ctx))
	switch {
	case err == nil:
		return last, nil
	case errors.Is(err, errPending):
		return &StatusResult{
			Status: entities.TranscriptionStatusTimedOut,
			Error:  fmt.Sprintf("transcription did not complete within %s", p.MaxWait),
		}, nil
	default:
		return nil, err
	}
}

// AwaitCompletion polls CheckStatus under the configured policy
func (s *transcriptionService) AwaitCompletion(ctx context.Context, in StatusInput) (*StatusResult, error) {
	return Await(ctx, PolicyFromConfig(s.cfg), func(ctx context.Context) (*StatusResult, error) {
		return s.CheckStatus(ctx, in)
	}, nil)
}
