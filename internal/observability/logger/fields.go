package logger

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Helpers de campos estándar para que los nombres queden consistentes
// en todo el servicio.

// RequestID crea un campo para el ID del request.
func RequestID(v string) zap.Field {
	return zap.String("request_id", v)
}

// Method crea un campo para el método HTTP.
func Method(v string) zap.Field {
	return zap.String("method", v)
}

// Path crea un campo para el path del request.
func Path(v string) zap.Field {
	return zap.String("path", v)
}

// Status crea un campo para el status code HTTP.
func Status(v int) zap.Field {
	return zap.Int("status", v)
}

// Duration crea un campo para la duración del request.
func Duration(v time.Duration) zap.Field {
	return zap.Duration("duration", v)
}

// ClientIP crea un campo para la IP del cliente.
func ClientIP(v string) zap.Field {
	return zap.String("client_ip", v)
}

// AccountID crea un campo para el ID de una cuenta.
func AccountID(v uuid.UUID) zap.Field {
	return zap.String("account_id", v.String())
}

// ActorID crea un campo para el ID del actor autenticado.
func ActorID(v uuid.UUID) zap.Field {
	return zap.String("actor_id", v.String())
}

// ResourceID crea un campo para el ID de un recurso.
func ResourceID(v uuid.UUID) zap.Field {
	return zap.String("resource_id", v.String())
}

// Username crea un campo para el username.
func Username(v string) zap.Field {
	return zap.String("username", v)
}

// Quota crea un campo para un valor de quota (nil = ilimitada).
func Quota(v *int) zap.Field {
	if v == nil {
		return zap.String("quota", "unlimited")
	}
	return zap.Int("quota", *v)
}

// Op crea un campo para la operación actual.
func Op(v string) zap.Field {
	return zap.String("op", v)
}

// Layer crea un campo para la capa (controller, service, store).
func Layer(v string) zap.Field {
	return zap.String("layer", v)
}

// Err crea un campo para un error.
func Err(err error) zap.Field {
	return zap.Error(err)
}

// Count crea un campo para un conteo.
func Count(v int) zap.Field {
	return zap.Int("count", v)
}

// String crea un campo string genérico.
func String(key, v string) zap.Field {
	return zap.String(key, v)
}

// Int crea un campo int genérico.
func Int(key string, v int) zap.Field {
	return zap.Int(key, v)
}
