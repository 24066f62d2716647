package pg

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kish38/paas-api/internal/domain/repository"
)

type resourceRepo struct{ pool *pgxpool.Pool }

func (r *resourceRepo) GetByID(ctx context.Context, id uuid.UUID) (*repository.Resource, error) {
	var res repository.Resource
	err := r.pool.QueryRow(ctx,
		`SELECT id, owner_id, value, created_at FROM resource WHERE id = $1`, id,
	).Scan(&res.ID, &res.OwnerID, &res.Value, &res.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &res, nil
}

func (r *resourceRepo) List(ctx context.Context, filter repository.ListResourcesFilter) ([]repository.Resource, error) {
	q := `SELECT id, owner_id, value, created_at FROM resource`
	args := []any{}
	if filter.OwnerID != nil {
		q += ` WHERE owner_id = $1`
		args = append(args, *filter.OwnerID)
	}
	q += ` ORDER BY created_at`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []repository.Resource
	for rows.Next() {
		var res repository.Resource
		if err := rows.Scan(&res.ID, &res.OwnerID, &res.Value, &res.CreatedAt); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, res)
	}
	return out, mapErr(rows.Err())
}

func (r *resourceRepo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM resource WHERE owner_id = $1`, ownerID).Scan(&n)
	if err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}

func (r *resourceRepo) Update(ctx context.Context, res *repository.Resource) error {
	tag, err := r.pool.Exec(ctx, `UPDATE resource SET value = $1 WHERE id = $2`, res.Value, res.ID)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
