// Package service implementa el orquestador de la plataforma: compone la
// política de acceso, el ledger de quota y el storage en operaciones
// atómicas. Toda mutación de cuentas/recursos entra por acá; no hay otros
// caminos de escritura que puedan desincronizar el ledger.
package service

import (
	"github.com/kish38/paas-api/internal/domain/repository"
)

// Service expone las operaciones observables de la plataforma. El actor
// viene explícito en cada llamada; nunca hay estado global de request.
type Service struct {
	store repository.Store
	locks *accountLocks
}

// New crea el servicio sobre un Store.
func New(store repository.Store) *Service {
	return &Service{
		store: store,
		locks: newAccountLocks(),
	}
}
