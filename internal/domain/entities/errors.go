package entities

import "errors"

// Domain errors
var (
	// User errors
	ErrInvalidEmail = errors.New("invalid email")
	ErrInvalidRole  = errors.New("invalid role")
	ErrUserNotFound = errors.New("user not found")

	// Project errors
	ErrInvalidProjectName   = errors.New("project name is required")
	ErrInvalidProjectStatus = errors.New("invalid project status")
	ErrInvalidMemberRole    = errors.New("invalid member role")

	// Task errors
	ErrInvalidTaskTitle    = errors.New("task title is required")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskPriority = errors.New("invalid task priority")

	// Transcription errors
	ErrInvalidTranscriptionStatus = errors.New("invalid transcription status")
	ErrMissingExternalJobID       = errors.New("external job id is required")
)
