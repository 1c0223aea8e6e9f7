package interfaces

import (
	"context"
	"errors"

	domain "trade-journal/internal/domain/entity/journal"

	"github.com/google/uuid"
)

// ErrProjectNotFound is returned by lookups when no project matches.
var ErrProjectNotFound = errors.New("project not found")

type ProjectRepository interface {
	GetProjectByName(ctx context.Context, userUUID uuid.UUID, name string) (*domain.Project, error)
	GetProjectByID(ctx context.Context, id int64) (*domain.Project, error)
	GetProjectsByUser(ctx context.Context, userUUID uuid.UUID) ([]domain.Project, error)
	Close()
}
