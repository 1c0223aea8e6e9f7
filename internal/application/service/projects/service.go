package projects

import (
	"context"
	"errors"

	"trade-journal/internal/application/failure"
	domain "trade-journal/internal/domain/entity/journal"
	interfaces "trade-journal/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Service exposes the read side of projects. Like trade listing, project
// listing is public and compares no caller identity.
type Service struct {
	projects interfaces.ProjectRepository
	users    interfaces.UserRepository
	log      *logrus.Logger
}

func NewService(projects interfaces.ProjectRepository, users interfaces.UserRepository, log *logrus.Logger) *Service {
	return &Service{projects: projects, users: users, log: log}
}

// ListProjects returns the projects owned by the named user.
func (s *Service) ListProjects(ctx context.Context, username string) ([]domain.Project, error) {
	const msg = "Failed to get projects."

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, interfaces.ErrUserNotFound) {
			return nil, failure.NotFound("User does not exist.")
		}
		s.log.WithError(err).WithField("op", "get user by username").Error("project operation failed")
		return nil, failure.Internal(msg, err)
	}

	list, err := s.projects.GetProjectsByUser(ctx, user.UUID)
	if err != nil {
		s.log.WithError(err).WithField("op", "get projects by user").Error("project operation failed")
		return nil, failure.Internal(msg, err)
	}
	return list, nil
}
