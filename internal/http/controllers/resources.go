package controllers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/kish38/paas-api/internal/domain/repository"
	httpx "github.com/kish38/paas-api/internal/http"
	"github.com/kish38/paas-api/internal/http/dto"
	httperrors "github.com/kish38/paas-api/internal/http/errors"
	"github.com/kish38/paas-api/internal/http/middlewares"
	"github.com/kish38/paas-api/internal/observability/logger"
	"github.com/kish38/paas-api/internal/service"
)

// ResourcesController maneja el CRUD de recursos.
type ResourcesController struct {
	service *service.Service
}

// List maneja GET /v1/resources. Un admin puede filtrar con
// ?owner_id=<uuid>; para el resto el alcance es siempre lo propio.
func (c *ResourcesController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var ownerFilter *uuid.UUID
	if raw := r.URL.Query().Get("owner_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("owner_id inválido"))
			return
		}
		ownerFilter = &id
	}

	ress, err := c.service.ListResources(ctx, middlewares.GetActor(ctx), ownerFilter)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.FromResources(ress))
}

// Create maneja POST /v1/resources.
func (c *ResourcesController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ResourcesController.Create"))

	var req dto.CreateResourceRequest
	if !httpx.ReadJSON(w, r, &req) {
		return
	}

	in := service.CreateResourceInput{Value: req.Value}
	if req.Owner != "" {
		id, err := uuid.Parse(req.Owner)
		if err != nil {
			httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("owner inválido"))
			return
		}
		in.OwnerID = &id
	}

	res, err := c.service.CreateResource(ctx, middlewares.GetActor(ctx), in)
	if err != nil {
		if errors.Is(err, repository.ErrQuotaExceeded) {
			httpx.ObserveQuotaExceeded()
		}
		httperrors.WriteError(w, err)
		return
	}

	httpx.ObserveResourceCreated()
	log.Info("recurso creado", logger.ResourceID(res.ID))
	httpx.WriteJSON(w, http.StatusCreated, dto.FromResource(res))
}

// Get maneja GET /v1/resources/{id}.
func (c *ResourcesController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := c.service.GetResource(ctx, middlewares.GetActor(ctx), id)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.FromResource(res))
}

// Update maneja PUT /v1/resources/{id}. El owner es inmutable: su sola
// presencia en el payload, con cualquier valor, se rechaza.
func (c *ResourcesController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateResourceRequest
	if !httpx.ReadJSON(w, r, &req) {
		return
	}

	in := service.UpdateResourceInput{Value: req.Value}
	if req.Owner != nil {
		// Parsear da igual: presencia del campo ya invalida el update.
		// El service lo rechaza tras verificar permisos sobre el recurso.
		parsed, err := uuid.Parse(*req.Owner)
		if err != nil {
			parsed = uuid.Nil
		}
		in.OwnerID = &parsed
	}

	res, err := c.service.UpdateResource(ctx, middlewares.GetActor(ctx), id, in)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.FromResource(res))
}

// Delete maneja DELETE /v1/resources/{id}.
func (c *ResourcesController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ResourcesController.Delete"))

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.service.DeleteResource(ctx, middlewares.GetActor(ctx), id); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	httpx.ObserveResourceDeleted()
	log.Info("recurso eliminado", logger.ResourceID(id))
	w.WriteHeader(http.StatusNoContent)
}
