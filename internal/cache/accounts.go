// Package cache mantiene un cache in-process de cuentas para la
// resolución de actores en el middleware de autenticación. El TTL es
// corto: una cuenta borrada deja de autenticar en segundos, no en horas.
package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/kish38/paas-api/internal/domain/repository"
)

// DefaultTTL es el tiempo de vida de una entrada si no se configura otro.
const DefaultTTL = 30 * time.Second

// Accounts envuelve un AccountRepository con un cache por id.
type Accounts struct {
	repo  repository.AccountRepository
	store *gocache.Cache
	ttl   time.Duration
}

// NewAccounts crea el cache. Con ttl <= 0 se usa DefaultTTL.
func NewAccounts(repo repository.AccountRepository, ttl time.Duration) *Accounts {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Accounts{
		repo:  repo,
		store: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// Get devuelve la cuenta por id, del cache si está fresca. Los misses y
// los errores del repo se propagan tal cual; nunca se cachean errores.
func (a *Accounts) Get(ctx context.Context, id uuid.UUID) (*repository.Account, error) {
	if v, ok := a.store.Get(id.String()); ok {
		if acc, ok := v.(*repository.Account); ok {
			return acc.Clone(), nil
		}
	}

	acc, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.store.Set(id.String(), acc.Clone(), a.ttl)
	return acc, nil
}

// Invalidate descarta la entrada de una cuenta. Llamar después de toda
// mutación de cuenta (cupo, borrado) para que el actor no vea estado viejo.
func (a *Accounts) Invalidate(id uuid.UUID) {
	a.store.Delete(id.String())
}

// InvalidateAll vacía el cache completo.
func (a *Accounts) InvalidateAll() {
	a.store.Flush()
}
