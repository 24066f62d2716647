package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Resource es un registro opaco de la plataforma, propiedad de exactamente
// una cuenta. El owner es inmutable después de la creación.
type Resource struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Value     string
	CreatedAt time.Time
}

// ListResourcesFilter opciones para listar recursos.
type ListResourcesFilter struct {
	// OwnerID filtra por dueño. nil = todos.
	OwnerID *uuid.UUID
}

// ResourceRepository define operaciones de lectura sobre recursos.
// Las mutaciones van por Store, que las acopla al ajuste de quota.
type ResourceRepository interface {
	// GetByID busca un recurso por ID. Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*Resource, error)

	// List lista recursos según el filtro.
	List(ctx context.Context, filter ListResourcesFilter) ([]Resource, error)

	// CountByOwner cuenta los recursos vivos de una cuenta.
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)

	// Update persiste los campos mutables de un recurso (el value).
	// Retorna ErrNotFound si no existe.
	Update(ctx context.Context, res *Resource) error
}
