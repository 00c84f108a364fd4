package application

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolmvp/usersvc/internal/domain/entity"
	repo "github.com/poolmvp/usersvc/internal/domain/repository"
)

type fakeRepo struct {
	users       []*entity.User
	emailExists bool
	existsErr   error
	createErr   error
	createCalls int
}

func (f *fakeRepo) List(context.Context) ([]*entity.User, error) {
	return f.users, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeRepo) EmailExists(context.Context, string) (bool, error) {
	return f.emailExists, f.existsErr
}

func (f *fakeRepo) Create(_ context.Context, name, email string) (*entity.User, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	u := &entity.User{ID: len(f.users) + 1, Name: name, Email: email}
	f.users = append(f.users, u)
	return u, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestService_CreateUser(t *testing.T) {
	t.Parallel()

	f := &fakeRepo{}
	svc := NewService(f, quietLogger())

	u, err := svc.CreateUser(context.Background(), "Alice", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.Equal(t, 1, f.createCalls)
}

func TestService_CreateUserPreCheckShortCircuits(t *testing.T) {
	t.Parallel()

	f := &fakeRepo{emailExists: true}
	svc := NewService(f, quietLogger())

	_, err := svc.CreateUser(context.Background(), "Alice", "alice@example.com")
	assert.ErrorIs(t, err, repo.ErrDuplicateEmail)
	assert.Zero(t, f.createCalls, "pre-check hit must skip the insert")
}

func TestService_CreateUserConstraintIsAuthoritative(t *testing.T) {
	t.Parallel()

	// Two concurrent creates can both pass the pre-check; the insert's
	// constraint mapping still decides.
	f := &fakeRepo{emailExists: false, createErr: repo.ErrDuplicateEmail}
	svc := NewService(f, quietLogger())

	_, err := svc.CreateUser(context.Background(), "Bob", "bob@x.com")
	assert.ErrorIs(t, err, repo.ErrDuplicateEmail)
	assert.Equal(t, 1, f.createCalls)
}

func TestService_CreateUserPreCheckFailurePropagates(t *testing.T) {
	t.Parallel()

	cause := errors.New("storage down")
	f := &fakeRepo{existsErr: cause}
	svc := NewService(f, quietLogger())

	_, err := svc.CreateUser(context.Background(), "Bob", "bob@x.com")
	assert.ErrorIs(t, err, cause)
	assert.Zero(t, f.createCalls)
}

func TestService_GetUserNotFound(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeRepo{}, quietLogger())
	_, err := svc.GetUser(context.Background(), 999999)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
