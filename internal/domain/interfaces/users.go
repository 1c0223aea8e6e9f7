package interfaces

import (
	"context"
	"errors"

	domain "trade-journal/internal/domain/entity/journal"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned by lookups when no user matches.
var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByUUID(ctx context.Context, userUUID uuid.UUID) (*domain.User, error)
	Close()
}
