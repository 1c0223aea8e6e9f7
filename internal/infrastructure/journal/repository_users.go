package journal

import (
	"context"
	"errors"

	domain "trade-journal/internal/domain/entity/journal"
	interfaces "trade-journal/internal/domain/interfaces"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `SELECT uuid, username FROM users WHERE username=$1`

	user := &domain.User{}
	if err := r.pool.QueryRow(ctx, query, username).Scan(&user.UUID, &user.Username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, interfaces.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *Repository) GetUserByUUID(ctx context.Context, userUUID uuid.UUID) (*domain.User, error) {
	const query = `SELECT uuid, username FROM users WHERE uuid=$1`

	user := &domain.User{}
	if err := r.pool.QueryRow(ctx, query, userUUID).Scan(&user.UUID, &user.Username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, interfaces.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
