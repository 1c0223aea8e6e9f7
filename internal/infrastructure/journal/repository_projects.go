package journal

import (
	"context"
	"errors"

	domain "trade-journal/internal/domain/entity/journal"
	interfaces "trade-journal/internal/domain/interfaces"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func scanProjectInto(row pgx.Row, project *domain.Project) error {
	return row.Scan(&project.ID, &project.UserUUID, &project.Name, &project.CreatedAt)
}

func (r *Repository) GetProjectByName(ctx context.Context, userUUID uuid.UUID, name string) (*domain.Project, error) {
	const query = `SELECT id, user_uuid, name, created_at FROM projects WHERE user_uuid=$1 AND name=$2`

	project := &domain.Project{}
	if err := scanProjectInto(r.pool.QueryRow(ctx, query, userUUID, name), project); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, interfaces.ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

func (r *Repository) GetProjectByID(ctx context.Context, id int64) (*domain.Project, error) {
	const query = `SELECT id, user_uuid, name, created_at FROM projects WHERE id=$1`

	project := &domain.Project{}
	if err := scanProjectInto(r.pool.QueryRow(ctx, query, id), project); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, interfaces.ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

func (r *Repository) GetProjectsByUser(ctx context.Context, userUUID uuid.UUID) ([]domain.Project, error) {
	const query = `SELECT id, user_uuid, name, created_at FROM projects WHERE user_uuid=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var project domain.Project
		if err := scanProjectInto(rows, &project); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}
