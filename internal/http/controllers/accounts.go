package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kish38/paas-api/internal/cache"
	"github.com/kish38/paas-api/internal/domain/repository"
	httpx "github.com/kish38/paas-api/internal/http"
	"github.com/kish38/paas-api/internal/http/dto"
	httperrors "github.com/kish38/paas-api/internal/http/errors"
	"github.com/kish38/paas-api/internal/http/middlewares"
	"github.com/kish38/paas-api/internal/observability/logger"
	"github.com/kish38/paas-api/internal/service"
)

// AccountsController maneja la gestión de cuentas. Toda operación acá
// es solo-admin; el service aplica la política.
type AccountsController struct {
	service *service.Service
	actors  *cache.Accounts
}

// List maneja GET /v1/accounts.
func (c *AccountsController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accs, err := c.service.ListAccounts(ctx, middlewares.GetActor(ctx))
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.FromAccounts(accs))
}

// Create maneja POST /v1/accounts.
func (c *AccountsController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AccountsController.Create"))

	var req dto.CreateAccountRequest
	if !httpx.ReadJSON(w, r, &req) {
		return
	}

	acc, err := c.service.CreateAccount(ctx, middlewares.GetActor(ctx), service.CreateAccountInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     repository.Role(req.Role),
		Quota:    req.Quota,
	})
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	log.Info("cuenta creada", logger.AccountID(acc.ID), logger.Username(acc.Username))
	httpx.WriteJSON(w, http.StatusCreated, dto.FromAccount(acc))
}

// Get maneja GET /v1/accounts/{id}.
func (c *AccountsController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	acc, err := c.service.GetAccount(ctx, middlewares.GetActor(ctx), id)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.FromAccount(acc))
}

// SetQuota maneja PUT /v1/accounts/{id}/quota. Un body con quota en
// null quita el tope: la cuenta pasa a ilimitada.
func (c *AccountsController) SetQuota(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dto.QuotaRequest
	if !httpx.ReadJSON(w, r, &req) {
		return
	}

	var (
		acc *repository.Account
		err error
	)
	if req.Quota == nil {
		acc, err = c.service.ClearAccountQuota(ctx, middlewares.GetActor(ctx), id)
	} else {
		acc, err = c.service.SetAccountQuota(ctx, middlewares.GetActor(ctx), id, *req.Quota)
	}
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	// El actor cacheado quedó viejo: su cupo cambió.
	c.actors.Invalidate(id)
	httpx.WriteJSON(w, http.StatusOK, dto.FromAccount(acc))
}

// Delete maneja DELETE /v1/accounts/{id}. Borra la cuenta y sus
// recursos en cascada.
func (c *AccountsController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AccountsController.Delete"))

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.service.DeleteAccount(ctx, middlewares.GetActor(ctx), id); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	c.actors.Invalidate(id)
	log.Info("cuenta eliminada", logger.AccountID(id))
	w.WriteHeader(http.StatusNoContent)
}

// pathID parsea el URL param {id} como UUID. Un id malformado es 404:
// no hay recurso posible detrás.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrNotFound)
		return uuid.Nil, false
	}
	return id, true
}
