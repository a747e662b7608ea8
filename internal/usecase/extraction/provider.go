package extraction

import (
	"context"
	"errors"
	"fmt"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
)

const (
	// MaxTasks caps the tasks kept from a single transcript
	MaxTasks = 10
	// MaxTitleLength is the title length in characters
	MaxTitleLength = 100
)

// ExtractedTask is a candidate task derived from a transcript
type ExtractedTask struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    entities.TaskPriority `json:"priority"`
}

// Result is the outcome of one extraction
type Result struct {
	Summary  string          `json:"summary"`
	Tasks    []ExtractedTask `json:"tasks"`
	Provider string          `json:"-"`
	// Degraded is set when the provider answered with text that was not the
	// expected JSON and the summary was built from the raw response.
	Degraded bool `json:"-"`
}

// Provider turns transcript text into a summary and tasks
type Provider interface {
	Name() string
	Extract(ctx context.Context, transcript string) (*Result, error)
}

// ErrorKind tags why a provider failed
type ErrorKind string

const (
	KindUnavailable ErrorKind = "unavailable"
	KindTimeout     ErrorKind = "timeout"
	KindAuth        ErrorKind = "auth"
	KindUpstream    ErrorKind = "upstream"
	KindParse       ErrorKind = "parse"
)

// ErrProviderUnavailable is wrapped when a provider has no credentials
var ErrProviderUnavailable = errors.New("provider not configured")

// ProviderError is a tagged provider failure
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s extraction failed (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// KindOf returns the tag of a provider error, or "" for other errors
func KindOf(err error) ErrorKind {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
