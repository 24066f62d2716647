package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kish38/paas-api/internal/domain/repository"
	"github.com/kish38/paas-api/internal/observability/logger"
	"github.com/kish38/paas-api/internal/policy"
	"github.com/kish38/paas-api/internal/quota"
)

// CreateResourceInput contiene los datos para crear un recurso.
type CreateResourceInput struct {
	// OwnerID es el dueño pedido. Solo un admin puede fijarlo; para un
	// no-admin se ignora y el dueño es el propio actor.
	OwnerID *uuid.UUID
	Value   string
}

// UpdateResourceInput contiene los campos de un update de recurso.
type UpdateResourceInput struct {
	// OwnerID presente en el payload siempre se rechaza: el owner es
	// inmutable después de la creación.
	OwnerID *uuid.UUID
	Value   *string
}

// CreateResource ejecuta la máquina de estados de creación:
// resolver dueño → gate de política → check de capacidad → persistir recurso
// y descuento de quota como una sola unidad. Los pasos de capacidad en
// adelante corren bajo el lock de la cuenta dueña.
func (s *Service) CreateResource(ctx context.Context, actor *repository.Account, in CreateResourceInput) (*repository.Resource, error) {
	if err := policy.DecideResource(actor, policy.ActionCreate, policy.Target{}); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Value) == "" {
		return nil, fmt.Errorf("%w: resource_value is required", repository.ErrValidation)
	}

	ownerID := policy.ResolveOwner(actor, in.OwnerID)

	unlock := s.locks.Lock(ownerID)
	defer unlock()

	owner, err := s.store.Accounts().GetByID(ctx, ownerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: owner account", repository.ErrNotFound)
		}
		return nil, err
	}

	// Fail closed: sin cupo no se intenta crear.
	if !quota.HasCapacity(owner) {
		logger.From(ctx).Info("resource creation blocked",
			logger.Layer("service"),
			logger.AccountID(owner.ID),
			logger.Quota(owner.Quota),
		)
		return nil, repository.ErrQuotaExceeded
	}

	res := &repository.Resource{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Value:     in.Value,
		CreatedAt: time.Now().UTC(),
	}

	owner = owner.Clone()
	quota.OnResourceCreated(owner)

	// Recurso y descuento comprometen juntos o no comprometen.
	if err := s.store.CreateResource(ctx, res, owner); err != nil {
		return nil, err
	}

	logger.From(ctx).Info("resource created",
		logger.Layer("service"),
		logger.ResourceID(res.ID),
		logger.AccountID(ownerID),
	)
	return res, nil
}

// GetResource devuelve un recurso si el actor es admin o dueño.
func (s *Service) GetResource(ctx context.Context, actor *repository.Account, id uuid.UUID) (*repository.Resource, error) {
	if actor == nil {
		return nil, repository.ErrAuthenticationRequired
	}
	res, err := s.store.Resources().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.DecideResource(actor, policy.ActionRead, policy.ResourceTarget(res)); err != nil {
		return nil, err
	}
	return res, nil
}

// ListResources lista recursos con alcance por política: admin ve todo
// (filtro opcional por owner), el resto solo lo propio.
func (s *Service) ListResources(ctx context.Context, actor *repository.Account, ownerFilter *uuid.UUID) ([]repository.Resource, error) {
	if err := policy.DecideResource(actor, policy.ActionList, policy.Target{}); err != nil {
		return nil, err
	}
	return s.store.Resources().List(ctx, policy.ScopeList(actor, ownerFilter))
}

// UpdateResource actualiza el value de un recurso. Cualquier intento de
// tocar el owner se rechaza como error de validación, sin importar el rol.
func (s *Service) UpdateResource(ctx context.Context, actor *repository.Account, id uuid.UUID, in UpdateResourceInput) (*repository.Resource, error) {
	if actor == nil {
		return nil, repository.ErrAuthenticationRequired
	}
	res, err := s.store.Resources().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.DecideResource(actor, policy.ActionUpdate, policy.ResourceTarget(res)); err != nil {
		return nil, err
	}
	if in.OwnerID != nil {
		return nil, fmt.Errorf("%w: change owner not allowed", repository.ErrValidation)
	}
	if in.Value == nil {
		return res, nil
	}
	if strings.TrimSpace(*in.Value) == "" {
		return nil, fmt.Errorf("%w: resource_value is required", repository.ErrValidation)
	}

	updated := *res
	updated.Value = *in.Value
	if err := s.store.Resources().Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteResource borra un recurso y devuelve el cupo a la cuenta dueña,
// como una sola unidad bajo el lock de esa cuenta.
func (s *Service) DeleteResource(ctx context.Context, actor *repository.Account, id uuid.UUID) error {
	if actor == nil {
		return repository.ErrAuthenticationRequired
	}
	res, err := s.store.Resources().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.DecideResource(actor, policy.ActionDelete, policy.ResourceTarget(res)); err != nil {
		return err
	}

	unlock := s.locks.Lock(res.OwnerID)
	defer unlock()

	// Releer bajo el lock: otro borrado concurrente pudo ganar, y un doble
	// incremento de quota_left rompería el invariante.
	res, err = s.store.Resources().GetByID(ctx, id)
	if err != nil {
		return err
	}

	owner, err := s.store.Accounts().GetByID(ctx, res.OwnerID)
	if err != nil {
		return err
	}

	owner = owner.Clone()
	quota.OnResourceDeleted(owner)

	if err := s.store.DeleteResource(ctx, id, owner); err != nil {
		return err
	}

	logger.From(ctx).Info("resource deleted",
		logger.Layer("service"),
		logger.ResourceID(id),
		logger.AccountID(owner.ID),
	)
	return nil
}
