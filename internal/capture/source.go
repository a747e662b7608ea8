package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// CheckFFmpeg verifies that ffmpeg is on PATH
func CheckFFmpeg() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found on PATH: %w", err)
	}
	return nil
}

// microphoneInput returns the ffmpeg input flags for the default device
func microphoneInput(goos string) ([]string, error) {
	switch goos {
	case "darwin":
		return []string{"-f", "avfoundation", "-i", ":default"}, nil
	case "linux":
		return []string{"-f", "pulse", "-i", "default"}, nil
	case "windows":
		return []string{"-f", "dshow", "-i", "audio=default"}, nil
	default:
		return nil, fmt.Errorf("microphone capture is not supported on %s", goos)
	}
}

// MicrophoneCommand builds an ffmpeg process writing mono 16 kHz WAV from the
// default microphone to stdout. Cancelling ctx interrupts ffmpeg so it can
// flush what it has.
func MicrophoneCommand(ctx context.Context, goos string) (*exec.Cmd, error) {
	input, err := microphoneInput(goos)
	if err != nil {
		return nil, err
	}

	args := append([]string{"-hide_banner", "-loglevel", "error"}, input...)
	args = append(args, "-ac", "1", "-ar", "16000", "-f", "wav", "pipe:1")

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = 5 * time.Second
	return cmd, nil
}

// Capture starts rec, copies src into it until src ends or a limit is hit,
// and stops it. Reaching the max duration or the buffer size ends the capture
// normally with what was recorded.
func Capture(rec *Recorder, src io.Reader) (*Recording, error) {
	if err := rec.Start(); err != nil {
		return nil, err
	}

	_, copyErr := io.Copy(rec, src)
	recording, stopErr := rec.Stop()

	if copyErr != nil && !errors.Is(copyErr, ErrMaxDuration) && !errors.Is(copyErr, ErrBufferFull) {
		return recording, fmt.Errorf("read audio source: %w", copyErr)
	}
	return recording, stopErr
}
