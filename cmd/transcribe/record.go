package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/projectflow/internal/capture"
	"github.com/johnquangdev/projectflow/internal/client"
)

func newRecordCommand() *cobra.Command {
	var (
		projectID string
		title     string
		wait      bool
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record from the default microphone and submit",
		Long: `Record from the default microphone with ffmpeg until Ctrl-C or the
maximum duration, then submit the recording.

Examples:
  transcribe record --project 2f6c... --title "Design review"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := capture.CheckFFmpeg(); err != nil {
				return err
			}

			rec, err := recordMicrophone(cmd.Context(), loadSettings().recording)
			if err != nil {
				return err
			}
			fmt.Printf("Recorded %s (%d bytes)\n", rec.Duration.Round(time.Second), len(rec.Data))

			return submitAndReport(cmd.Context(), c, client.Upload{
				ProjectID:    projectID,
				MeetingTitle: title,
				Filename:     "recording.wav",
				Audio:        bytes.NewReader(rec.Data),
			}, wait)
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID")
	cmd.Flags().StringVar(&title, "title", "", "Meeting title")
	cmd.Flags().BoolVar(&wait, "wait", true, "Wait for the transcript and tasks (--wait=false returns right after submitting)")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

// recordMicrophone captures until interrupted or a recorder limit is reached
func recordMicrophone(parent context.Context, opts capture.Options) (*capture.Recording, error) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ffmpeg, err := capture.MicrophoneCommand(ctx, runtime.GOOS)
	if err != nil {
		return nil, err
	}
	ffmpeg.Stderr = os.Stderr
	stdout, err := ffmpeg.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := ffmpeg.Start(); err != nil {
		return nil, fmt.Errorf("starting ffmpeg: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Recording... press Ctrl-C to stop")

	rec, captureErr := capture.Capture(capture.NewRecorder(opts), stdout)
	interrupted := ctx.Err() != nil

	// A limit ends Capture while ffmpeg is still running
	stop()
	waitErr := ffmpeg.Wait()

	if captureErr != nil {
		if errors.Is(captureErr, capture.ErrEmptyRecording) {
			return nil, fmt.Errorf("nothing was recorded")
		}
		return nil, captureErr
	}
	if waitErr != nil && !interrupted && !limitReached(rec, opts) {
		return nil, fmt.Errorf("ffmpeg: %w", waitErr)
	}
	return rec, nil
}

func limitReached(rec *capture.Recording, opts capture.Options) bool {
	return rec.Duration >= opts.MaxDuration || int64(len(rec.Data)) >= opts.MaxBytes
}
