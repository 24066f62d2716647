// Package store abre el driver de persistencia configurado.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/kish38/paas-api/internal/domain/repository"
	"github.com/kish38/paas-api/internal/store/memory"
	"github.com/kish38/paas-api/internal/store/pg"
)

// Config selecciona y configura el driver.
type Config struct {
	Driver   string // "memory" | "postgres"
	DSN      string
	Postgres pg.Config
}

// Open devuelve el repository.Store del driver configurado.
func Open(ctx context.Context, cfg Config) (repository.Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "memory", "mem":
		return memory.New(), nil
	case "postgres", "pg", "postgresql":
		return pg.New(ctx, cfg.DSN, cfg.Postgres)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
