// Package controllers expone los handlers HTTP de la API. Cada
// controller traduce request/response y delega toda la lógica al
// service; acá no vive ninguna regla de negocio.
package controllers

import (
	"github.com/kish38/paas-api/internal/cache"
	"github.com/kish38/paas-api/internal/domain/repository"
	"github.com/kish38/paas-api/internal/service"
	"github.com/kish38/paas-api/internal/token"
)

// Controllers agrupa todos los controllers de la API.
type Controllers struct {
	Auth      *AuthController
	Accounts  *AccountsController
	Resources *ResourcesController
	Health    *HealthController
}

// New cablea los controllers contra el service y sus colaboradores.
func New(svc *service.Service, issuer *token.Issuer, actors *cache.Accounts, store repository.Store) *Controllers {
	return &Controllers{
		Auth:      &AuthController{service: svc, issuer: issuer},
		Accounts:  &AccountsController{service: svc, actors: actors},
		Resources: &ResourcesController{service: svc},
		Health:    &HealthController{store: store},
	}
}
