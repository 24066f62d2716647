// Package errors define los errores tipados de la capa HTTP y el mapeo
// desde los sentinelas del dominio a status codes.
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kish38/paas-api/internal/domain/repository"
)

// errorResponse estructura interna para la serialización JSON.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// WriteError escribe la respuesta HTTP para el error dado. Maneja tanto
// *AppError como errores genéricos.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Detail:  appErr.Detail,
	})
}

// FromError convierte un error genérico en *AppError. Reconoce los
// sentinelas del dominio; cualquier otra cosa es un error interno.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, repository.ErrAuthenticationRequired):
		return ErrAuthenticationRequired.WithCause(err)
	case errors.Is(err, repository.ErrAccessDenied):
		return ErrAccessDenied.WithCause(err)
	case errors.Is(err, repository.ErrQuotaExceeded):
		return ErrQuotaExceeded.WithCause(err)
	case errors.Is(err, repository.ErrValidation):
		return ErrValidation.WithDetail(detailOf(err, repository.ErrValidation)).WithCause(err)
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound.WithCause(err)
	case errors.Is(err, repository.ErrConflict):
		return ErrConflict.WithCause(err)
	case errors.Is(err, repository.ErrStorageUnavailable):
		return ErrStorageUnavailable.WithCause(err)
	default:
		return ErrInternalServerError.WithCause(err)
	}
}

// detailOf extrae el texto que el servicio agregó después del sentinela,
// tipo "validation failed: resource_value is required".
func detailOf(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return ""
}
