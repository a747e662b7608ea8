package errors

import "errors"

// Common errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden access")
	ErrNotFound     = errors.New("resource not found")
)

// Auth errors
var (
	ErrInvalidToken = errors.New("invalid authentication token")
	ErrTokenExpired = errors.New("authentication token has expired")
)

// Project errors
var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrProjectAccessDenied = errors.New("access denied to this project")
	ErrMeetingNotFound     = errors.New("meeting not found")
)

// Transcription errors
var (
	ErrMissingAudio          = errors.New("no audio provided")
	ErrAudioTooLarge         = errors.New("audio exceeds the maximum size")
	ErrMissingIDs            = errors.New("missing transcript ID or meeting ID")
	ErrNotConfigured         = errors.New("speech-to-text service not configured")
	ErrTranscriptionNotFound = errors.New("transcription job not found")
	ErrUpstream              = errors.New("speech-to-text service request failed")
	ErrPersistence           = errors.New("failed to persist transcription result")
)
