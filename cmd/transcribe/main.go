package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/johnquangdev/projectflow/internal/capture"
	"github.com/johnquangdev/projectflow/internal/client"
	"github.com/johnquangdev/projectflow/internal/domain/entities"
	"github.com/johnquangdev/projectflow/internal/usecase/transcription"
	"github.com/johnquangdev/projectflow/pkg/config"
)

var (
	apiURL     string
	apiToken   string
	reqTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Record meetings and turn them into ProjectFlow tasks",
	Long: `transcribe submits meeting recordings to the ProjectFlow API and reports
the transcript, summary and extracted tasks once processing finishes.

The access token is read from --token or the PROJECTFLOW_TOKEN environment
variable.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", envOr("PROJECTFLOW_API_URL", "http://localhost:8080"), "ProjectFlow API base URL")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "Access token (default $PROJECTFLOW_TOKEN)")
	rootCmd.PersistentFlags().DurationVar(&reqTimeout, "timeout", 5*time.Minute, "Per-request timeout")

	rootCmd.AddCommand(newUploadCommand(), newRecordCommand(), newStatusCommand())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newClient() (*client.Client, error) {
	token := apiToken
	if token == "" {
		token = os.Getenv("PROJECTFLOW_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("no access token: pass --token or set PROJECTFLOW_TOKEN")
	}
	return client.New(apiURL, token, reqTimeout), nil
}

// settings are the polling and recording limits; the server's environment
// configuration is reused when present
type settings struct {
	policy    transcription.Policy
	recording capture.Options
}

func loadSettings() settings {
	s := settings{
		policy: transcription.Policy{
			InitialDelay:    3 * time.Second,
			InitialInterval: 5 * time.Second,
			MaxInterval:     30 * time.Second,
			Multiplier:      1.5,
			MaxWait:         2 * time.Hour,
		},
		recording: capture.Options{
			MaxDuration: capture.DefaultMaxDuration,
			MaxBytes:    capture.DefaultMaxBytes,
		},
	}
	if cfg, err := config.Load(); err == nil {
		s.policy = transcription.PolicyFromConfig(cfg.Transcription)
		s.recording.MaxDuration = cfg.Recording.MaxDuration
		s.recording.MaxBytes = cfg.Recording.MaxBytes
	}
	return s
}

// submitAndReport submits audio and, when wait is set, polls until the job
// finishes
func submitAndReport(ctx context.Context, c *client.Client, in client.Upload, wait bool) error {
	res, err := c.Submit(ctx, in)
	if err != nil {
		return fmt.Errorf("submitting recording: %w", err)
	}
	fmt.Printf("Submitted: transcript %s, meeting %s (%s)\n", res.TranscriptID, res.MeetingID, res.Status)

	if !wait {
		fmt.Printf("Check progress with: transcribe status --transcript %s --meeting %s\n", res.TranscriptID, res.MeetingID)
		return nil
	}
	meetingID, err := uuid.Parse(res.MeetingID)
	if err != nil {
		return fmt.Errorf("invalid meeting id in response: %w", err)
	}
	return awaitAndReport(ctx, c, res.TranscriptID, meetingID)
}

func awaitAndReport(ctx context.Context, c *client.Client, transcriptID string, meetingID uuid.UUID) error {
	var last entities.TranscriptionStatus
	result, err := transcription.Await(ctx, loadSettings().policy, c.CheckFunc(transcriptID, meetingID), func(r *transcription.StatusResult) {
		if r.Status != last {
			fmt.Fprintf(os.Stderr, "status: %s\n", r.Status)
			last = r.Status
		}
	})
	if err != nil {
		return fmt.Errorf("waiting for transcription: %w", err)
	}
	return printResult(os.Stdout, result)
}

func printResult(w io.Writer, r *transcription.StatusResult) error {
	switch r.Status {
	case entities.TranscriptionStatusCompleted:
	case entities.TranscriptionStatusError, entities.TranscriptionStatusTimedOut:
		fmt.Fprintf(w, "Status: %s\n", r.Status)
		return fmt.Errorf("transcription %s: %s", r.Status, r.Error)
	default:
		fmt.Fprintf(w, "Status: %s\n", r.Status)
		return nil
	}

	fmt.Fprintf(w, "Status: %s\n\n", r.Status)
	if r.Summary != "" {
		fmt.Fprintf(w, "Summary:\n  %s\n\n", r.Summary)
	}
	fmt.Fprintf(w, "Tasks (%d):\n", len(r.Tasks))
	for i, t := range r.Tasks {
		fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, t.Priority, t.Title)
		if t.Description != "" {
			fmt.Fprintf(w, "     %s\n", t.Description)
		}
	}
	if len(r.Chapters) > 0 {
		fmt.Fprintf(w, "\nChapters:\n")
		for _, ch := range r.Chapters {
			fmt.Fprintf(w, "  - %s\n", ch.Headline)
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
