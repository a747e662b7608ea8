package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/projectflow/internal/client"
)

func newUploadCommand() *cobra.Command {
	var (
		file      string
		projectID string
		title     string
		wait      bool
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Submit an existing audio file",
		Long: `Submit an existing audio file for transcription and task extraction.

Examples:
  transcribe upload --file standup.wav --project 2f6c...
  transcribe upload --file standup.m4a --project 2f6c... --title "Weekly sync" --wait=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("opening audio file: %w", err)
			}
			defer f.Close()

			return submitAndReport(cmd.Context(), c, client.Upload{
				ProjectID:    projectID,
				MeetingTitle: title,
				Filename:     filepath.Base(file),
				Audio:        f,
			}, wait)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to the audio file")
	cmd.Flags().StringVar(&projectID, "project", "", "Project ID")
	cmd.Flags().StringVar(&title, "title", "", "Meeting title")
	cmd.Flags().BoolVar(&wait, "wait", true, "Wait for the transcript and tasks (--wait=false returns right after submitting)")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
