// Package pg implementa repository.Store sobre Postgres con pgx.
// Las mutaciones recurso+quota van en una transacción; el resto son
// statements sueltos contra el pool.
package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kish38/paas-api/internal/domain/repository"
	"github.com/kish38/paas-api/internal/observability/logger"
)

type Store struct{ pool *pgxpool.Pool }

// Config tuning del pool.
type Config struct {
	MaxConns        int
	MinConns        int
	ConnMaxLifetime string
}

// New abre el pool. El ping de arranque es no bloqueante: el servicio puede
// levantar aunque la base esté momentáneamente abajo.
func New(ctx context.Context, dsn string, cfg Config) (*Store, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		pcfg.MinConns = int32(cfg.MinConns)
	}
	if cfg.ConnMaxLifetime != "" {
		if d, err := time.ParseDuration(cfg.ConnMaxLifetime); err == nil {
			pcfg.MaxConnLifetime = d
			pcfg.MaxConnIdleTime = d
		}
	}
	if pcfg.MaxConns == 0 {
		pcfg.MaxConns = 8
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		logger.L().Warn("pg pool startup ping failed", logger.Err(err))
	} else {
		logger.L().Info("pg pool ready", logger.Int("max_conns", int(pcfg.MaxConns)))
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Accounts() repository.AccountRepository   { return &accountRepo{s.pool} }
func (s *Store) Resources() repository.ResourceRepository { return &resourceRepo{s.pool} }

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Store) Close() error {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// CreateResource inserta el recurso y escribe el estado de quota del owner
// en la misma transacción. El ajuste del ledger nunca queda a medias.
func (s *Store) CreateResource(ctx context.Context, res *repository.Resource, owner *repository.Account) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return storageErr(err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE account SET quota = $1, quota_left = $2 WHERE id = $3`,
		owner.Quota, owner.QuotaLeft, owner.ID,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO resource (id, owner_id, value, created_at) VALUES ($1, $2, $3, $4)`,
		res.ID, res.OwnerID, res.Value, res.CreatedAt,
	)
	if err != nil {
		return mapErr(err)
	}

	return storageErr(tx.Commit(ctx))
}

// DeleteResource borra el recurso y escribe el estado de quota del owner en
// la misma transacción.
func (s *Store) DeleteResource(ctx context.Context, id uuid.UUID, owner *repository.Account) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return storageErr(err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM resource WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	tag, err = tx.Exec(ctx,
		`UPDATE account SET quota = $1, quota_left = $2 WHERE id = $3`,
		owner.Quota, owner.QuotaLeft, owner.ID,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return storageErr(tx.Commit(ctx))
}

// mapErr traduce errores de pgx a los sentinelas del dominio.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return repository.ErrConflict
		case "23503": // foreign_key_violation
			return repository.ErrNotFound
		}
	}
	return storageErr(err)
}

func storageErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", repository.ErrStorageUnavailable, err)
}
