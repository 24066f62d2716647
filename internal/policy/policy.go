// Package policy centraliza las decisiones de autorización en una función
// pura, testeable sin storage ni transporte. Toda rama de control basada en
// rol vive acá, no repartida por los handlers.
package policy

import (
	"github.com/google/uuid"

	"github.com/kish38/paas-api/internal/domain/repository"
)

// Action es la acción que el actor intenta ejecutar.
type Action string

const (
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Target identifica sobre qué opera la acción. Para create/list de recursos
// no hay target concreto y ambos campos van en nil.
type Target struct {
	// Account apunta a la cuenta objetivo en acciones de administración de
	// cuentas. nil para list/create.
	Account *repository.Account
	// Resource apunta al recurso objetivo en read/update/delete.
	Resource *repository.Resource
}

// AccountTarget arma un Target de cuenta.
func AccountTarget(a *repository.Account) Target { return Target{Account: a} }

// ResourceTarget arma un Target de recurso.
func ResourceTarget(r *repository.Resource) Target { return Target{Resource: r} }

// DecideAccount evalúa una acción de administración de cuentas
// (list/create/read/update/delete sobre cuentas). Solo admin.
func DecideAccount(actor *repository.Account, action Action, target Target) error {
	if actor == nil {
		return repository.ErrAuthenticationRequired
	}
	if !actor.IsAdmin() {
		return repository.ErrAccessDenied
	}
	return nil
}

// DecideResource evalúa una acción sobre recursos.
//
// Precedencia de reglas:
//  1. actor nil → authentication required (el orquestador lo distingue de un
//     denegado de autorización).
//  2. list y create: cualquier actor autenticado (el alcance de list y la
//     resolución de owner en create van por ScopeList / ResolveOwner).
//  3. read/update/delete sobre un recurso concreto: admin o dueño.
func DecideResource(actor *repository.Account, action Action, target Target) error {
	if actor == nil {
		return repository.ErrAuthenticationRequired
	}
	switch action {
	case ActionList, ActionCreate:
		return nil
	case ActionRead, ActionUpdate, ActionDelete:
		if target.Resource == nil {
			return repository.ErrNotFound
		}
		if actor.IsAdmin() || target.Resource.OwnerID == actor.ID {
			return nil
		}
		return repository.ErrAccessDenied
	default:
		return repository.ErrAccessDenied
	}
}

// ResolveOwner determina el dueño efectivo de una creación. Un admin puede
// crear en nombre de otra cuenta pasando un owner explícito; a un no-admin
// se le fuerza el owner a sí mismo, ignorando lo que haya mandado.
func ResolveOwner(actor *repository.Account, requested *uuid.UUID) uuid.UUID {
	if actor.IsAdmin() && requested != nil {
		return *requested
	}
	return actor.ID
}

// ScopeList arma el filtro de listado de recursos según el actor: los admin
// ven todo (con filtro opcional por owner), los no-admin solo lo propio.
func ScopeList(actor *repository.Account, ownerFilter *uuid.UUID) repository.ListResourcesFilter {
	if actor.IsAdmin() {
		return repository.ListResourcesFilter{OwnerID: ownerFilter}
	}
	own := actor.ID
	return repository.ListResourcesFilter{OwnerID: &own}
}
