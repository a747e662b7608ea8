package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
	"github.com/johnquangdev/projectflow/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/projectflow/internal/usecase/errors"
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo       repositories.ProjectRepository
	meetingRepo       repositories.MeetingRepository
	taskRepo          repositories.TaskRepository
	transcriptionRepo repositories.TranscriptionRepository
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	meetingRepo repositories.MeetingRepository,
	taskRepo repositories.TaskRepository,
	transcriptionRepo repositories.TranscriptionRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo:       projectRepo,
		meetingRepo:       meetingRepo,
		taskRepo:          taskRepo,
		transcriptionRepo: transcriptionRepo,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description *string
	OwnerID     uuid.UUID
	DueDate     *time.Time
}

// MeetingDetail is a meeting with its latest transcription job and tasks
type MeetingDetail struct {
	Meeting *entities.Meeting
	Job     *entities.TranscriptionJob
	Tasks   []*entities.Task
}

// CreateProject creates a new project and its owner membership
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*entities.Project, error) {
	if strings.TrimSpace(input.Name) == "" || input.OwnerID == uuid.Nil {
		return nil, usecaseErrors.ErrInvalidInput
	}

	project := entities.NewProject(input.Name, input.Description, input.OwnerID, input.DueDate)
	if err := project.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidInput, err)
	}

	owner := entities.NewProjectMember(project.ID, input.OwnerID, entities.MemberRoleOwner)
	if err := s.projectRepo.Create(ctx, project, owner); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// ListProjects lists projects the user created or belongs to
func (s *ProjectService) ListProjects(ctx context.Context, userID uuid.UUID) ([]*entities.Project, error) {
	projects, err := s.projectRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Authorize checks project existence and membership
func (s *ProjectService) Authorize(ctx context.Context, projectID, userID uuid.UUID) (*entities.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, usecaseErrors.ErrProjectNotFound
	}
	if project.CreatedBy == userID {
		return project, nil
	}

	ok, err := s.projectRepo.IsMember(ctx, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !ok {
		return nil, usecaseErrors.ErrProjectAccessDenied
	}
	return project, nil
}

// ListTasks lists a project's tasks
func (s *ProjectService) ListTasks(ctx context.Context, projectID, userID uuid.UUID) ([]*entities.Task, error) {
	if _, err := s.Authorize(ctx, projectID, userID); err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListMeetings lists a project's meetings
func (s *ProjectService) ListMeetings(ctx context.Context, projectID, userID uuid.UUID) ([]*entities.Meeting, error) {
	if _, err := s.Authorize(ctx, projectID, userID); err != nil {
		return nil, err
	}
	meetings, err := s.meetingRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, nil
}

// GetMeeting returns the meeting, its latest job and the tasks derived from it
func (s *ProjectService) GetMeeting(ctx context.Context, meetingID, userID uuid.UUID) (*MeetingDetail, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	if meeting == nil {
		return nil, usecaseErrors.ErrMeetingNotFound
	}
	if _, err := s.Authorize(ctx, meeting.ProjectID, userID); err != nil {
		return nil, err
	}

	job, err := s.transcriptionRepo.FindLatestByMeeting(ctx, meeting.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transcription job: %w", err)
	}
	tasks, err := s.taskRepo.ListByMeeting(ctx, meeting.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meeting tasks: %w", err)
	}

	return &MeetingDetail{Meeting: meeting, Job: job, Tasks: tasks}, nil
}
