package controllers

import (
	"net/http"

	httpx "github.com/kish38/paas-api/internal/http"
	"github.com/kish38/paas-api/internal/http/dto"
	httperrors "github.com/kish38/paas-api/internal/http/errors"
	"github.com/kish38/paas-api/internal/observability/logger"
	"github.com/kish38/paas-api/internal/service"
	"github.com/kish38/paas-api/internal/token"
	"github.com/kish38/paas-api/internal/util"
)

// AuthController maneja el endpoint de login.
type AuthController struct {
	service *service.Service
	issuer  *token.Issuer
}

// Login maneja POST /v1/auth/login. Acepta username o email más
// password y devuelve un token de acceso.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AuthController.Login"))

	var req dto.LoginRequest
	if !httpx.ReadJSON(w, r, &req) {
		return
	}
	if req.Login() == "" || req.Password == "" {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("username o email y password son obligatorios"))
		return
	}

	acc, err := c.service.Authenticate(ctx, req.Login(), req.Password)
	if err != nil {
		// Cuenta inexistente y password malo responden igual.
		log.Debug("login rechazado", logger.String("login", util.MaskLogin(req.Login())))
		httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
		return
	}

	tk, err := c.issuer.Sign(acc)
	if err != nil {
		log.Error("no se pudo firmar el token", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	log.Info("login exitoso", logger.AccountID(acc.ID), logger.Username(acc.Username))
	w.Header().Set("Cache-Control", "no-store")
	httpx.WriteJSON(w, http.StatusOK, dto.LoginResponse{
		AccessToken: tk,
		TokenType:   "Bearer",
		ExpiresIn:   int(c.issuer.TTL().Seconds()),
		Account:     dto.FromAccount(acc),
	})
}
