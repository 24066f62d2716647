package repository

import "errors"

var (
	// ErrNotFound indica que el recurso solicitado no existe.
	ErrNotFound = errors.New("not found")

	// ErrConflict indica un conflicto (ej: username o email duplicado).
	ErrConflict = errors.New("conflict")

	// ErrValidation indica que los datos de entrada son inválidos
	// (payload malformado, intento de cambiar el owner, etc).
	ErrValidation = errors.New("validation failed")

	// ErrAuthenticationRequired indica que no hay credenciales o son inválidas.
	// Es distinto de ErrAccessDenied: acá ni siquiera sabemos quién llama.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrAccessDenied indica un actor autenticado sin permisos para la operación.
	ErrAccessDenied = errors.New("access denied")

	// ErrQuotaExceeded indica que la creación fue bloqueada por falta de cupo,
	// o que el admin intentó fijar una quota menor al uso actual.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrStorageUnavailable indica una falla de la capa de persistencia.
	// La capa web lo mapea a un server error; nunca se descarta en silencio
	// un ajuste del ledger por esta causa.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// IsNotFound verifica si el error es ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict verifica si el error es ErrConflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsQuotaExceeded verifica si el error es ErrQuotaExceeded.
func IsQuotaExceeded(err error) bool {
	return errors.Is(err, ErrQuotaExceeded)
}

// IsAccessDenied verifica si el error es ErrAccessDenied.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}
