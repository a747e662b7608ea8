package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
	"github.com/johnquangdev/projectflow/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/projectflow/internal/usecase/errors"
	"github.com/johnquangdev/projectflow/pkg/jwt"
)

type fakeUserRepo struct {
	upserts int
	err     error
	users   map[uuid.UUID]*entities.User
}

func (r *fakeUserRepo) Upsert(_ context.Context, u *entities.User) error {
	if r.err != nil {
		return r.err
	}
	r.upserts++
	if r.users == nil {
		r.users = map[uuid.UUID]*entities.User{}
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, entities.ErrUserNotFound
}

func TestValidateSession_ProvisionsOnce(t *testing.T) {
	manager := jwt.NewManager("secret", time.Minute)
	repo := &fakeUserRepo{}
	svc := NewSessionService(repo, manager, cache.NewMemoryStore(), nil)

	userID := uuid.New()
	token, err := manager.GenerateAccessToken(userID, "ana@example.com", "member")
	require.NoError(t, err)

	user, err := svc.ValidateSession(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, entities.RoleMember, user.Role)

	_, err = svc.ValidateSession(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.upserts)
}

func TestValidateSession_ReprovisionsOnClaimChange(t *testing.T) {
	manager := jwt.NewManager("secret", time.Minute)
	repo := &fakeUserRepo{}
	svc := NewSessionService(repo, manager, nil, nil)

	userID := uuid.New()
	first, _ := manager.GenerateAccessToken(userID, "ana@example.com", "member")
	second, _ := manager.GenerateAccessToken(userID, "ana@example.com", "admin")

	_, err := svc.ValidateSession(context.Background(), first)
	require.NoError(t, err)
	_, err = svc.ValidateSession(context.Background(), second)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.upserts)
	assert.Equal(t, entities.RoleAdmin, repo.users[userID].Role)
}

func TestValidateSession_Errors(t *testing.T) {
	manager := jwt.NewManager("secret", time.Minute)
	svc := NewSessionService(&fakeUserRepo{}, manager, nil, nil)

	_, err := svc.ValidateSession(context.Background(), "")
	assert.ErrorIs(t, err, usecaseErrors.ErrUnauthorized)

	_, err = svc.ValidateSession(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidToken)

	expired := jwt.NewManager("secret", -time.Minute)
	token, _ := expired.GenerateAccessToken(uuid.New(), "ana@example.com", "member")
	_, err = svc.ValidateSession(context.Background(), token)
	assert.ErrorIs(t, err, usecaseErrors.ErrTokenExpired)

	other := jwt.NewManager("other-secret", time.Minute)
	token, _ = other.GenerateAccessToken(uuid.New(), "ana@example.com", "member")
	_, err = svc.ValidateSession(context.Background(), token)
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidToken)
}

func TestValidateSession_RepositoryFailure(t *testing.T) {
	manager := jwt.NewManager("secret", time.Minute)
	svc := NewSessionService(&fakeUserRepo{err: errors.New("db down")}, manager, nil, nil)

	token, _ := manager.GenerateAccessToken(uuid.New(), "ana@example.com", "member")
	_, err := svc.ValidateSession(context.Background(), token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, usecaseErrors.ErrInvalidToken)
}

func TestValidateSession_MissingEmailRejected(t *testing.T) {
	manager := jwt.NewManager("secret", time.Minute)
	repo := &fakeUserRepo{}
	svc := NewSessionService(repo, manager, nil, nil)

	token, _ := manager.GenerateAccessToken(uuid.New(), "", "member")
	_, err := svc.ValidateSession(context.Background(), token)
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidToken)
	assert.Zero(t, repo.upserts)
}
