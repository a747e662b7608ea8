package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
	"github.com/johnquangdev/projectflow/internal/usecase/extraction"
	"github.com/johnquangdev/projectflow/internal/usecase/transcription"
)

func TestPrintResult_Completed(t *testing.T) {
	var out bytes.Buffer
	err := printResult(&out, &transcription.StatusResult{
		Status:  entities.TranscriptionStatusCompleted,
		Summary: "Planned the release",
		Tasks: []extraction.ExtractedTask{
			{Title: "Send deck", Description: "to the board", Priority: entities.TaskPriorityHigh},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Planned the release")
	assert.Contains(t, out.String(), "1. [high] Send deck")
	assert.Contains(t, out.String(), "to the board")
}

func TestPrintResult_FailedReturnsError(t *testing.T) {
	var out bytes.Buffer
	err := printResult(&out, &transcription.StatusResult{
		Status: entities.TranscriptionStatusTimedOut,
		Error:  "gave up",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gave up")
	assert.Contains(t, out.String(), "timed_out")
}

func TestPrintResult_Pending(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printResult(&out, &transcription.StatusResult{Status: entities.TranscriptionStatusProcessing}))
	assert.Equal(t, "Status: processing\n", out.String())
}
