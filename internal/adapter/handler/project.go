package handler

import (
	stdErrors "errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/projectflow/errors"
	"github.com/johnquangdev/projectflow/internal/adapter/dto/common"
	dto "github.com/johnquangdev/projectflow/internal/adapter/dto/project"
	"github.com/johnquangdev/projectflow/internal/adapter/presenter"
	"github.com/johnquangdev/projectflow/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/projectflow/internal/usecase/errors"
	projectUsecase "github.com/johnquangdev/projectflow/internal/usecase/project"
)

// Project handles project, task and meeting reads
type Project struct {
	projectService projectUsecase.Service
	logger         *zap.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService projectUsecase.Service, logger *zap.Logger) *Project {
	return &Project{projectService: projectService, logger: logger}
}

// Me handles GET /me
// @Summary      Current user
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  auth.UserResponse
// @Failure      401  {object}  common.ErrorResponse
// @Router       /me [get]
func (h *Project) Me(c echo.Context) error {
	user, ok := c.Get("user").(*entities.User)
	if !ok || user == nil {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}
	return HandleSuccess(h.logger, c, presenter.ToUserResponse(user))
}

// CreateProject handles POST /projects
// @Summary      Create a project
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      project.CreateProjectRequest  true  "Project creation request"
// @Success      201      {object}  project.ProjectResponse
// @Failure      400      {object}  common.ErrorResponse
// @Failure      401      {object}  common.ErrorResponse
// @Router       /projects [post]
func (h *Project) CreateProject(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req dto.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(fmt.Sprintf("validation failed: %v", err)))
	}

	p, err := h.projectService.CreateProject(c.Request().Context(), projectUsecase.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return HandleError(h.logger, c, h.mapError(err, ""))
	}

	return HandleCreated(h.logger, c, presenter.ToProjectResponse(p))
}

// ListProjects handles GET /projects
// @Summary      List projects
// @Tags         Projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.ListResponse
// @Failure      401  {object}  common.ErrorResponse
// @Router       /projects [get]
func (h *Project) ListProjects(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	projects, err := h.projectService.ListProjects(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, h.mapError(err, ""))
	}
	return HandleSuccess(h.logger, c, common.NewListResponse(presenter.ToProjectResponses(projects), len(projects)))
}

// ListTasks handles GET /projects/:id/tasks
// @Summary      List project tasks
// @Tags         Projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID (UUID)"
// @Success      200  {object}  common.ListResponse
// @Failure      403  {object}  common.ErrorResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /projects/{id}/tasks [get]
func (h *Project) ListTasks(c echo.Context) error {
	userID, projectID, err := h.projectScope(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	tasks, err := h.projectService.ListTasks(c.Request().Context(), projectID, userID)
	if err != nil {
		return HandleError(h.logger, c, h.mapError(err, projectID.String()))
	}
	return HandleSuccess(h.logger, c, common.NewListResponse(presenter.ToTaskResponses(tasks), len(tasks)))
}

// ListMeetings handles GET /projects/:id/meetings
// @Summary      List project meetings
// @Tags         Projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID (UUID)"
// @Success      200  {object}  common.ListResponse
// @Failure      403  {object}  common.ErrorResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /projects/{id}/meetings [get]
func (h *Project) ListMeetings(c echo.Context) error {
	userID, projectID, err := h.projectScope(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meetings, err := h.projectService.ListMeetings(c.Request().Context(), projectID, userID)
	if err != nil {
		return HandleError(h.logger, c, h.mapError(err, projectID.String()))
	}
	return HandleSuccess(h.logger, c, common.NewListResponse(presenter.ToMeetingResponses(meetings), len(meetings)))
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get meeting details
// @Description  Returns the meeting with its transcription status and the tasks derived from it
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  project.MeetingDetailResponse
// @Failure      400  {object}  common.ErrorResponse
// @Failure      403  {object}  common.ErrorResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /meetings/{id} [get]
func (h *Project) GetMeeting(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("meeting ID must be a valid UUID"))
	}

	detail, err := h.projectService.GetMeeting(c.Request().Context(), meetingID, userID)
	if err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound) {
			return HandleError(h.logger, c, errors.ErrMeetingNotFound(meetingID.String()))
		}
		return HandleError(h.logger, c, h.mapError(err, ""))
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingDetailResponse(detail))
}

// projectScope reads the caller and the :id project parameter
func (h *Project) projectScope(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	userID, ok := currentUserID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, errors.ErrUnauthenticated()
	}
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.ErrInvalidArgument("project ID must be a valid UUID")
	}
	return userID, projectID, nil
}

func (h *Project) mapError(err error, projectID string) error {
	switch {
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrProjectNotFound):
		return errors.ErrProjectNotFound(projectID)
	case stdErrors.Is(err, usecaseErrors.ErrProjectAccessDenied):
		return errors.ErrProjectAccessDenied(projectID)
	default:
		return errors.ErrDBQueryFailed("projects", err)
	}
}
