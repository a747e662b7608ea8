package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the progress of a task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValid checks if the task status is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// TaskPriority ranks a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// IsValid checks if the priority is one of the known values
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// Rank orders priorities from low (0) to urgent (3)
func (p TaskPriority) Rank() int {
	switch p {
	case TaskPriorityLow:
		return 0
	case TaskPriorityHigh:
		return 2
	case TaskPriorityUrgent:
		return 3
	default:
		return 1
	}
}

// ParseTaskPriority normalizes free text to a priority, defaulting to medium
func ParseTaskPriority(s string) TaskPriority {
	p := TaskPriority(strings.ToLower(strings.TrimSpace(s)))
	if p.IsValid() {
		return p
	}
	return TaskPriorityMedium
}

// Task is a unit of work inside a project
type Task struct {
	ID              uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProjectID       uuid.UUID    `json:"project_id" gorm:"type:uuid;not null;index"`
	Title           string       `json:"title" gorm:"type:varchar(255);not null"`
	Description     *string      `json:"description,omitempty" gorm:"type:text"`
	Status          TaskStatus   `json:"status" gorm:"type:varchar(20);not null;default:'todo';index"`
	Priority        TaskPriority `json:"priority" gorm:"type:varchar(20);not null;default:'medium'"`
	AssignedTo      *uuid.UUID   `json:"assigned_to,omitempty" gorm:"type:uuid;index"`
	CreatedBy       uuid.UUID    `json:"created_by" gorm:"type:uuid;not null"`
	SourceMeetingID *uuid.UUID   `json:"source_meeting_id,omitempty" gorm:"type:uuid;index"`
	DueDate         *time.Time   `json:"due_date,omitempty" gorm:"type:timestamp"`
	CreatedAt       time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// NewMeetingTask creates a todo task derived from a meeting transcript
func NewMeetingTask(projectID, createdBy, meetingID uuid.UUID, title, description string, priority TaskPriority) *Task {
	now := time.Now()
	if !priority.IsValid() {
		priority = TaskPriorityMedium
	}
	t := &Task{
		ID:              uuid.New(),
		ProjectID:       projectID,
		Title:           title,
		Status:          TaskStatusTodo,
		Priority:        priority,
		CreatedBy:       createdBy,
		SourceMeetingID: &meetingID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if description != "" {
		t.Description = &description
	}
	return t
}

// Validate validates task data
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrInvalidTaskTitle
	}
	if !t.Status.IsValid() {
		return ErrInvalidTaskStatus
	}
	if !t.Priority.IsValid() {
		return ErrInvalidTaskPriority
	}
	return nil
}
