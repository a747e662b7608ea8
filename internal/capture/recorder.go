// Package capture buffers microphone audio in memory until it is submitted
// for transcription.
package capture

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultMaxDuration caps recording time, pauses excluded
const DefaultMaxDuration = 7200 * time.Second

// DefaultMaxBytes caps the in-memory buffer
const DefaultMaxBytes int64 = 500 << 20

var (
	ErrInvalidState   = errors.New("invalid recorder state transition")
	ErrMaxDuration    = errors.New("maximum recording duration reached")
	ErrBufferFull     = errors.New("recording buffer is full")
	ErrEmptyRecording = errors.New("recording is empty")
)

// State is the lifecycle state of a Recorder
type State string

const (
	StateIdle      State = "idle"
	StateRecording State = "recording"
	StatePaused    State = "paused"
	StateStopped   State = "stopped"
)

// Recording is a finished capture
type Recording struct {
	Data     []byte
	Duration time.Duration
	MimeType string
}

// Options configures a Recorder
type Options struct {
	MaxDuration time.Duration
	MaxBytes    int64
	MimeType    string
	// Clock overrides time.Now in tests
	Clock func() time.Time
}

// Recorder accumulates audio chunks while recording. It implements io.Writer
// so an audio source can be copied straight into it.
type Recorder struct {
	mu           sync.Mutex
	opts         Options
	state        State
	buf          bytes.Buffer
	elapsed      time.Duration
	segmentStart time.Time
}

// NewRecorder creates an idle recorder
func NewRecorder(opts Options) *Recorder {
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = DefaultMaxDuration
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.MimeType == "" {
		opts.MimeType = "audio/wav"
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Recorder{opts: opts, state: StateIdle}
}

// Start begins recording
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateIdle {
		return fmt.Errorf("%w: start from %s", ErrInvalidState, r.state)
	}
	r.state = StateRecording
	r.segmentStart = r.opts.Clock()
	return nil
}

// Pause suspends recording; chunks written while paused are discarded
func (r *Recorder) Pause() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording {
		return fmt.Errorf("%w: pause from %s", ErrInvalidState, r.state)
	}
	r.elapsed = r.elapsedLocked()
	r.state = StatePaused
	return nil
}

// Resume continues a paused recording
func (r *Recorder) Resume() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StatePaused {
		return fmt.Errorf("%w: resume from %s", ErrInvalidState, r.state)
	}
	r.state = StateRecording
	r.segmentStart = r.opts.Clock()
	return nil
}

// Stop ends the recording and returns the captured audio
func (r *Recorder) Stop() (*Recording, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording && r.state != StatePaused {
		return nil, fmt.Errorf("%w: stop from %s", ErrInvalidState, r.state)
	}
	r.elapsed = r.elapsedLocked()
	r.state = StateStopped

	if r.buf.Len() == 0 {
		return nil, ErrEmptyRecording
	}
	data := make([]byte, r.buf.Len())
	copy(data, r.buf.Bytes())
	r.buf.Reset()

	return &Recording{Data: data, Duration: r.elapsed, MimeType: r.opts.MimeType}, nil
}

// Write appends a chunk while recording. Writes while paused are dropped.
func (r *Recorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case StatePaused:
		return len(p), nil
	case StateRecording:
	default:
		return 0, fmt.Errorf("%w: write while %s", ErrInvalidState, r.state)
	}

	if r.elapsedLocked() >= r.opts.MaxDuration {
		return 0, ErrMaxDuration
	}

	room := r.opts.MaxBytes - int64(r.buf.Len())
	if int64(len(p)) > room {
		n, _ := r.buf.Write(p[:room])
		return n, ErrBufferFull
	}
	return r.buf.Write(p)
}

// Elapsed returns recorded time, pauses excluded, capped at the max duration
func (r *Recorder) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.elapsedLocked()
}

// State returns the current state
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Size returns the number of buffered bytes
func (r *Recorder) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Len()
}

func (r *Recorder) elapsedLocked() time.Duration {
	d := r.elapsed
	if r.state == StateRecording {
		d += r.opts.Clock().Sub(r.segmentStart)
	}
	if d > r.opts.MaxDuration {
		d = r.opts.MaxDuration
	}
	return d
}
