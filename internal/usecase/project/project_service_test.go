package project

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
	"github.com/johnquangdev/projectflow/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/projectflow/internal/usecase/errors"
)

type fakeRepos struct {
	projects map[uuid.UUID]*entities.Project
	members  map[uuid.UUID][]*entities.ProjectMember
	meetings map[uuid.UUID]*entities.Meeting
	tasks    []*entities.Task
	jobs     map[uuid.UUID]*entities.TranscriptionJob
	failList error
}

func newFakeRepos() *fakeRepos {
	return &fakeRepos{
		projects: map[uuid.UUID]*entities.Project{},
		members:  map[uuid.UUID][]*entities.ProjectMember{},
		meetings: map[uuid.UUID]*entities.Meeting{},
		jobs:     map[uuid.UUID]*entities.TranscriptionJob{},
	}
}

func (r *fakeRepos) Create(_ context.Context, p *entities.Project, owner *entities.ProjectMember) error {
	r.projects[p.ID] = p
	r.members[p.ID] = append(r.members[p.ID], owner)
	return nil
}

func (r *fakeRepos) FindByID(_ context.Context, id uuid.UUID) (*entities.Project, error) {
	return r.projects[id], nil
}

func (r *fakeRepos) IsMember(_ context.Context, projectID, userID uuid.UUID) (bool, error) {
	for _, m := range r.members[projectID] {
		if m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepos) ListForUser(_ context.Context, userID uuid.UUID) ([]*entities.Project, error) {
	if r.failList != nil {
		return nil, r.failList
	}
	var out []*entities.Project
	for id, p := range r.projects {
		if ok, _ := r.IsMember(context.Background(), id, userID); ok || p.CreatedBy == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type meetingRepo struct{ *fakeRepos }

func (r meetingRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	return r.meetings[id], nil
}

func (r meetingRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*entities.Meeting, error) {
	var out []*entities.Meeting
	for _, m := range r.meetings {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	return out, nil
}

type taskRepo struct{ *fakeRepos }

func (r taskRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*entities.Task, error) {
	var out []*entities.Task
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r taskRepo) ListByMeeting(_ context.Context, meetingID uuid.UUID) ([]*entities.Task, error) {
	var out []*entities.Task
	for _, t := range r.tasks {
		if t.SourceMeetingID != nil && *t.SourceMeetingID == meetingID {
			out = append(out, t)
		}
	}
	return out, nil
}

type jobRepo struct {
	repositories.TranscriptionRepository
	*fakeRepos
}

func (r jobRepo) FindLatestByMeeting(_ context.Context, meetingID uuid.UUID) (*entities.TranscriptionJob, error) {
	return r.jobs[meetingID], nil
}

func newTestService() (*ProjectService, *fakeRepos) {
	repos := newFakeRepos()
	return NewProjectService(repos, meetingRepo{repos}, taskRepo{repos}, jobRepo{fakeRepos: repos}), repos
}

func TestCreateProject(t *testing.T) {
	svc, repos := newTestService()
	owner := uuid.New()

	p, err := svc.CreateProject(context.Background(), CreateProjectInput{Name: "  Launch  ", OwnerID: owner})
	require.NoError(t, err)
	assert.Equal(t, "Launch", p.Name)
	assert.Equal(t, entities.ProjectStatusActive, p.Status)
	require.Len(t, repos.members[p.ID], 1)
	assert.Equal(t, entities.MemberRoleOwner, repos.members[p.ID][0].Role)
	assert.Equal(t, owner, repos.members[p.ID][0].UserID)
}

func TestCreateProject_InvalidInput(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateProject(context.Background(), CreateProjectInput{Name: "   ", OwnerID: uuid.New()})
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)

	_, err = svc.CreateProject(context.Background(), CreateProjectInput{Name: "Launch"})
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)
}

func TestAuthorize(t *testing.T) {
	svc, repos := newTestService()
	owner, member, stranger := uuid.New(), uuid.New(), uuid.New()
	p := entities.NewProject("Launch", nil, owner, nil)
	repos.projects[p.ID] = p
	repos.members[p.ID] = []*entities.ProjectMember{entities.NewProjectMember(p.ID, member, entities.MemberRoleMember)}

	_, err := svc.Authorize(context.Background(), p.ID, owner)
	assert.NoError(t, err)
	_, err = svc.Authorize(context.Background(), p.ID, member)
	assert.NoError(t, err)
	_, err = svc.Authorize(context.Background(), p.ID, stranger)
	assert.ErrorIs(t, err, usecaseErrors.ErrProjectAccessDenied)
	_, err = svc.Authorize(context.Background(), uuid.New(), owner)
	assert.ErrorIs(t, err, usecaseErrors.ErrProjectNotFound)
}

func TestListProjects_WrapsRepositoryError(t *testing.T) {
	svc, repos := newTestService()
	repos.failList = errors.New("db down")

	_, err := svc.ListProjects(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestListTasks_RequiresAccess(t *testing.T) {
	svc, repos := newTestService()
	owner := uuid.New()
	p := entities.NewProject("Launch", nil, owner, nil)
	repos.projects[p.ID] = p
	repos.tasks = []*entities.Task{
		entities.NewMeetingTask(p.ID, owner, uuid.New(), "Send deck", "", entities.TaskPriorityHigh),
		entities.NewMeetingTask(uuid.New(), owner, uuid.New(), "Other project", "", entities.TaskPriorityLow),
	}

	tasks, err := svc.ListTasks(context.Background(), p.ID, owner)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Send deck", tasks[0].Title)

	_, err = svc.ListTasks(context.Background(), p.ID, uuid.New())
	assert.ErrorIs(t, err, usecaseErrors.ErrProjectAccessDenied)
}

func TestGetMeeting(t *testing.T) {
	svc, repos := newTestService()
	owner := uuid.New()
	p := entities.NewProject("Launch", nil, owner, nil)
	repos.projects[p.ID] = p
	m := entities.NewRecordedMeeting(p.ID, owner, "Standup", nil)
	repos.meetings[m.ID] = m
	job := entities.NewTranscriptionJob(m.ID, "tr-1", "https://upload", entities.TranscriptionStatusQueued)
	repos.jobs[m.ID] = job
	repos.tasks = []*entities.Task{entities.NewMeetingTask(p.ID, owner, m.ID, "Send deck", "", entities.TaskPriorityMedium)}

	detail, err := svc.GetMeeting(context.Background(), m.ID, owner)
	require.NoError(t, err)
	assert.Same(t, m, detail.Meeting)
	assert.Same(t, job, detail.Job)
	assert.Len(t, detail.Tasks, 1)

	meetings, err := svc.ListMeetings(context.Background(), p.ID, owner)
	require.NoError(t, err)
	assert.Len(t, meetings, 1)

	_, err = svc.GetMeeting(context.Background(), uuid.New(), owner)
	assert.ErrorIs(t, err, usecaseErrors.ErrMeetingNotFound)

	_, err = svc.GetMeeting(context.Background(), m.ID, uuid.New())
	assert.ErrorIs(t, err, usecaseErrors.ErrProjectAccessDenied)
}
