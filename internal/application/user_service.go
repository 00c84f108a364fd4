package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/poolmvp/usersvc/internal/domain/entity"
	repo "github.com/poolmvp/usersvc/internal/domain/repository"
)

// Service is the use-case layer over the user repository.
type Service struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
}

func NewService(r repo.UserRepository, logger *logrus.Logger) *Service {
	return &Service{Repo: r, Logger: logger}
}

func (s *Service) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return s.Repo.List(ctx)
}

func (s *Service) GetUser(ctx context.Context, id int) (*entity.User, error) {
	return s.Repo.GetByID(ctx, id)
}

// CreateUser inserts a new user. The EmailExists pre-check is a fast path
// only; two concurrent creates with the same email can both pass it, so
// the insert's constraint mapping remains the source of truth.
func (s *Service) CreateUser(ctx context.Context, name, email string) (*entity.User, error) {
	exists, err := s.Repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repo.ErrDuplicateEmail
	}

	u, err := s.Repo.Create(ctx, name, email)
	if err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID}).Info("user created")
	return u, nil
}
