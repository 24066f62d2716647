// Package middlewares contiene los decoradores HTTP compartidos: request
// id, logging, recover, autenticación y rate limiting.
package middlewares

import (
	"context"
	"net/http"

	"github.com/kish38/paas-api/internal/domain/repository"
)

// Middleware es un decorador de http.Handler.
type Middleware func(http.Handler) http.Handler

type actorKey struct{}
type requestIDKey struct{}

// WithActor inyecta el actor autenticado en el contexto.
func WithActor(ctx context.Context, acc *repository.Account) context.Context {
	return context.WithValue(ctx, actorKey{}, acc)
}

// GetActor devuelve el actor del contexto, o nil si no hay.
func GetActor(ctx context.Context) *repository.Account {
	if acc, ok := ctx.Value(actorKey{}).(*repository.Account); ok {
		return acc
	}
	return nil
}

func setRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// GetRequestID devuelve el request id del contexto, o "".
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}
