package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/projectflow/internal/usecase/errors"
)

// ProjectAuthorizer checks project access for a user
type ProjectAuthorizer interface {
	Authorize(ctx context.Context, projectID, userID uuid.UUID) (*entities.Project, error)
}

// RequireProjectMember middleware: only allow the owner or a member of the
// project named by the :id path parameter. The project is stored under "project".
func RequireProjectMember(projects ProjectAuthorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			projectID, err := uuid.Parse(c.Param("id"))
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]interface{}{
					"error":   "invalid_project_id",
					"message": "project ID must be a valid UUID",
				})
			}
			userID, ok := c.Get("user_id").(uuid.UUID)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error":   "unauthorized",
					"message": "user not authenticated",
				})
			}

			project, err := projects.Authorize(c.Request().Context(), projectID, userID)
			switch {
			case err == nil:
			case errors.Is(err, usecaseErrors.ErrProjectNotFound):
				return c.JSON(http.StatusNotFound, map[string]interface{}{
					"error":   "project_not_found",
					"message": "project not found",
				})
			case errors.Is(err, usecaseErrors.ErrProjectAccessDenied):
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"error":   "not_member",
					"message": "user is not a member of this project",
				})
			default:
				return c.JSON(http.StatusInternalServerError, map[string]interface{}{
					"error":   "internal_error",
					"message": "failed to check project access",
				})
			}

			c.Set("project", project)
			return next(c)
		}
	}
}
