package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newStatusCommand() *cobra.Command {
	var (
		transcriptID string
		meetingID    string
		wait         bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check a submitted transcription",
		Long: `Poll a submitted transcription once, or with --wait until it completes,
fails or exceeds the maximum wait.

Examples:
  transcribe status --transcript tr-123 --meeting 7d1e...
  transcribe status --transcript tr-123 --meeting 7d1e... --wait`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mid, err := uuid.Parse(meetingID)
			if err != nil {
				return fmt.Errorf("invalid --meeting: %w", err)
			}
			c, err := newClient()
			if err != nil {
				return err
			}

			if wait {
				return awaitAndReport(cmd.Context(), c, transcriptID, mid)
			}
			res, err := c.Status(cmd.Context(), transcriptID, mid)
			if err != nil {
				return err
			}
			return printResult(os.Stdout, res)
		},
	}

	cmd.Flags().StringVar(&transcriptID, "transcript", "", "Transcript ID returned by upload or record")
	cmd.Flags().StringVar(&meetingID, "meeting", "", "Meeting ID returned by upload or record")
	cmd.Flags().BoolVar(&wait, "wait", false, "Poll until the transcription finishes")
	_ = cmd.MarkFlagRequired("transcript")
	_ = cmd.MarkFlagRequired("meeting")
	return cmd
}
