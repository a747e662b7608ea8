package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/projectflow/internal/usecase/errors"
)

type authorizerFunc func(ctx context.Context, projectID, userID uuid.UUID) (*entities.Project, error)

func (f authorizerFunc) Authorize(ctx context.Context, projectID, userID uuid.UUID) (*entities.Project, error) {
	return f(ctx, projectID, userID)
}

func run(t *testing.T, authz ProjectAuthorizer, param string, userID interface{}) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues(param)
	if userID != nil {
		c.Set("user_id", userID)
	}
	_ = RequireProjectMember(authz)(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})(c)
	return rec, c
}

func TestRequireProjectMember(t *testing.T) {
	project := entities.NewProject("Launch", nil, uuid.New(), nil)
	userID := uuid.New()

	cases := map[string]struct {
		param  string
		user   interface{}
		err    error
		expect int
	}{
		"member":     {param: project.ID.String(), user: userID, expect: http.StatusNoContent},
		"bad id":     {param: "nope", user: userID, expect: http.StatusBadRequest},
		"anonymous":  {param: project.ID.String(), expect: http.StatusUnauthorized},
		"missing":    {param: project.ID.String(), user: userID, err: usecaseErrors.ErrProjectNotFound, expect: http.StatusNotFound},
		"forbidden":  {param: project.ID.String(), user: userID, err: usecaseErrors.ErrProjectAccessDenied, expect: http.StatusForbidden},
		"repository": {param: project.ID.String(), user: userID, err: errors.New("db down"), expect: http.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			authz := authorizerFunc(func(_ context.Context, pid, uid uuid.UUID) (*entities.Project, error) {
				if tc.err != nil {
					return nil, tc.err
				}
				assert.Equal(t, project.ID, pid)
				assert.Equal(t, userID, uid)
				return project, nil
			})
			rec, c := run(t, authz, tc.param, tc.user)
			assert.Equal(t, tc.expect, rec.Code)
			if tc.expect == http.StatusNoContent {
				assert.Same(t, project, c.Get("project"))
			}
		})
	}
}
