package pg

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kish38/paas-api/internal/domain/repository"
)

type accountRepo struct{ pool *pgxpool.Pool }

const accountCols = `id, username, email, role, password_hash, quota, quota_left, created_at`

func scanAccount(row interface{ Scan(...any) error }) (*repository.Account, error) {
	var acc repository.Account
	var role string
	var created time.Time
	if err := row.Scan(&acc.ID, &acc.Username, &acc.Email, &role, &acc.PasswordHash, &acc.Quota, &acc.QuotaLeft, &created); err != nil {
		return nil, mapErr(err)
	}
	acc.Role = repository.Role(role)
	acc.CreatedAt = created
	return &acc, nil
}

func (r *accountRepo) GetByID(ctx context.Context, id uuid.UUID) (*repository.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountCols+` FROM account WHERE id = $1`, id)
	return scanAccount(row)
}

func (r *accountRepo) GetByLogin(ctx context.Context, login string) (*repository.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountCols+` FROM account WHERE lower(username) = lower($1) OR lower(email) = lower($1)`,
		login,
	)
	return scanAccount(row)
}

func (r *accountRepo) List(ctx context.Context) ([]repository.Account, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+accountCols+` FROM account ORDER BY created_at`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []repository.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *acc)
	}
	return out, mapErr(rows.Err())
}

func (r *accountRepo) Create(ctx context.Context, input repository.CreateAccountInput) (*repository.Account, error) {
	acc := &repository.Account{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		Role:         input.Role,
		PasswordHash: input.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO account (id, username, email, role, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		acc.ID, acc.Username, acc.Email, string(acc.Role), acc.PasswordHash, acc.CreatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return acc, nil
}

func (r *accountRepo) Save(ctx context.Context, acc *repository.Account) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE account SET username = $1, email = $2, role = $3, password_hash = $4, quota = $5, quota_left = $6
		 WHERE id = $7`,
		acc.Username, acc.Email, string(acc.Role), acc.PasswordHash, acc.Quota, acc.QuotaLeft, acc.ID,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *accountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// ON DELETE CASCADE se lleva los recursos de la cuenta.
	tag, err := r.pool.Exec(ctx, `DELETE FROM account WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
