package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role es el rol de una cuenta dentro de la plataforma.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleRegular Role = "regular"
)

// Account representa una cuenta de la plataforma.
//
// Quota y QuotaLeft son punteros: nil significa "sin límite". QuotaLeft solo
// tiene significado cuando Quota está seteada, y mantiene el invariante
// quota_left == quota - (recursos vivos de la cuenta) después de cada
// mutación comprometida.
type Account struct {
	ID           uuid.UUID
	Username     string
	Email        string
	Role         Role
	PasswordHash string
	Quota        *int
	QuotaLeft    *int
	CreatedAt    time.Time
}

// IsAdmin indica si la cuenta tiene rol de administrador.
func (a *Account) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// Clone devuelve una copia profunda de la cuenta.
// Las mutaciones del ledger trabajan sobre copias para que un fallo de
// persistencia no deje estado a medias en memoria compartida.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	if a.Quota != nil {
		q := *a.Quota
		c.Quota = &q
	}
	if a.QuotaLeft != nil {
		ql := *a.QuotaLeft
		c.QuotaLeft = &ql
	}
	return &c
}

// CreateAccountInput contiene los datos para crear una cuenta.
type CreateAccountInput struct {
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	Quota        *int
}

// AccountRepository define operaciones sobre cuentas.
type AccountRepository interface {
	// GetByID busca una cuenta por ID. Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// GetByLogin busca una cuenta por username o email (case-insensitive).
	// Retorna ErrNotFound si no existe.
	GetByLogin(ctx context.Context, login string) (*Account, error)

	// List lista todas las cuentas.
	List(ctx context.Context) ([]Account, error)

	// Create crea una cuenta nueva. Retorna ErrConflict si el username o
	// email ya existen.
	Create(ctx context.Context, input CreateAccountInput) (*Account, error)

	// Save persiste el estado completo de una cuenta existente.
	// Retorna ErrNotFound si no existe.
	Save(ctx context.Context, acc *Account) error

	// Delete elimina una cuenta y, en cascada, sus recursos.
	Delete(ctx context.Context, id uuid.UUID) error
}
