package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/projectflow/pkg/config"
)

// ErrNotConfigured is returned when the speech-to-text API key is missing
var ErrNotConfigured = errors.New("assemblyai api key not configured")

// TranscriptStatus mirrors the remote job state
type TranscriptStatus string

const (
	TranscriptStatusQueued     TranscriptStatus = "queued"
	TranscriptStatusProcessing TranscriptStatus = "processing"
	TranscriptStatusCompleted  TranscriptStatus = "completed"
	TranscriptStatusError      TranscriptStatus = "error"
)

// Chapter is an auto-chapter summary returned with a completed transcript
type Chapter struct {
	Gist     string `json:"gist"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Start    int64  `json:"start"`
	End      int64  `json:"end"`
}

// Highlight is a key phrase detected in the transcript
type Highlight struct {
	Text  string  `json:"text"`
	Count int64   `json:"count"`
	Rank  float64 `json:"rank"`
}

// Transcript is the subset of a remote transcript this service consumes
type Transcript struct {
	ID         string
	Status     TranscriptStatus
	Text       string
	Error      string
	Chapters   []Chapter
	Highlights []Highlight
}

// AssemblyAIClient wraps the official SDK with the feature set used for meetings
type AssemblyAIClient struct {
	sdk        *aai.Client
	configured bool
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// A client without an API key is returned unconfigured rather than failing so
// callers can report the missing credential per request.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	var apiKey, baseURL string
	if cfg != nil {
		apiKey = cfg.APIKey
		baseURL = cfg.BaseURL
	}

	opts := []aai.ClientOption{
		aai.WithAPIKey(apiKey),
		aai.WithHTTPClient(&http.Client{Timeout: 5 * time.Minute}),
	}
	if baseURL != "" {
		opts = append(opts, aai.WithBaseURL(baseURL))
	}

	return &AssemblyAIClient{
		sdk:        aai.NewClientWithOptions(opts...),
		configured: apiKey != "",
	}
}

// Configured reports whether an API key is present
func (c *AssemblyAIClient) Configured() bool {
	return c != nil && c.configured
}

// Upload sends raw audio bytes and returns the private upload URL
func (c *AssemblyAIClient) Upload(ctx context.Context, audio io.Reader) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	uploadURL, err := c.sdk.Upload(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("assemblyai upload: %w", err)
	}
	return uploadURL, nil
}

// Submit registers a transcription job for an uploaded file without waiting for it
func (c *AssemblyAIClient) Submit(ctx context.Context, audioURL string) (*Transcript, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	params := &aai.TranscriptOptionalParams{
		SpeakerLabels:     aai.Bool(true),
		AutoChapters:      aai.Bool(true),
		EntityDetection:   aai.Bool(true),
		IABCategories:     aai.Bool(true),
		SentimentAnalysis: aai.Bool(true),
		AutoHighlights:    aai.Bool(true),
		Punctuate:         aai.Bool(true),
		FormatText:        aai.Bool(true),
	}

	transcript, err := c.sdk.Transcripts.SubmitFromURL(ctx, audioURL, params)
	if err != nil {
		return nil, fmt.Errorf("assemblyai submit: %w", err)
	}

	out := convertTranscript(transcript)
	if out.ID == "" {
		return nil, fmt.Errorf("assemblyai submit: response carried no transcript id")
	}
	return out, nil
}

// Get fetches the current state of a transcription job
func (c *AssemblyAIClient) Get(ctx context.Context, transcriptID string) (*Transcript, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	transcript, err := c.sdk.Transcripts.Get(ctx, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("assemblyai get %s: %w", transcriptID, err)
	}
	return convertTranscript(transcript), nil
}

func convertTranscript(t aai.Transcript) *Transcript {
	out := &Transcript{
		ID:     derefString(t.ID),
		Status: TranscriptStatus(t.Status),
		Text:   derefString(t.Text),
		Error:  derefString(t.Error),
	}

	for _, ch := range t.Chapters {
		out.Chapters = append(out.Chapters, Chapter{
			Gist:     derefString(ch.Gist),
			Headline: derefString(ch.Headline),
			Summary:  derefString(ch.Summary),
			Start:    derefInt64(ch.Start),
			End:      derefInt64(ch.End),
		})
	}

	for _, h := range t.AutoHighlightsResult.Results {
		out.Highlights = append(out.Highlights, Highlight{
			Text:  derefString(h.Text),
			Count: derefInt64(h.Count),
			Rank:  derefFloat64(h.Rank),
		})
	}

	return out
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefFloat64(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
