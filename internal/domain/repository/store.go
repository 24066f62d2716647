package repository

import (
	"context"

	"github.com/google/uuid"
)

// Store agrupa los repositorios y expone las mutaciones que deben
// comprometerse como una sola unidad: crear/borrar un recurso junto con el
// estado de quota actualizado de la cuenta dueña. Si la mitad falla, nada
// se persiste.
type Store interface {
	Accounts() AccountRepository
	Resources() ResourceRepository

	// CreateResource persiste res y el estado de quota de owner (ya ajustado
	// por el ledger) en una sola unidad atómica.
	CreateResource(ctx context.Context, res *Resource, owner *Account) error

	// DeleteResource elimina el recurso id y persiste el estado de quota de
	// owner en una sola unidad atómica. Retorna ErrNotFound si no existe.
	DeleteResource(ctx context.Context, id uuid.UUID, owner *Account) error

	Ping(ctx context.Context) error
	Close() error
}
