package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/kish38/paas-api/internal/domain/repository"
	httperrors "github.com/kish38/paas-api/internal/http/errors"
	"github.com/kish38/paas-api/internal/token"
)

// ActorSource resuelve el account id de un token a la cuenta viva. En
// producción es el cache de cuentas; en tests puede ser el repo directo.
type ActorSource interface {
	Get(ctx context.Context, id uuid.UUID) (*repository.Account, error)
}

// RequireAuth valida Authorization: Bearer <JWT>, carga la cuenta del
// actor y la inyecta en el contexto. Sin token o con token inválido
// responde 401 — autenticación, no autorización.
func RequireAuth(iss *token.Issuer, actors ActorSource) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := strings.TrimSpace(r.Header.Get("Authorization"))
			if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="missing bearer token"`)
				httperrors.WriteError(w, httperrors.ErrAuthenticationRequired)
				return
			}
			raw := strings.TrimSpace(ah[len("Bearer "):])

			claims, err := iss.Parse(raw)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				httperrors.WriteError(w, httperrors.ErrAuthenticationRequired.WithDetail("invalid token"))
				return
			}

			// El token puede sobrevivir a la cuenta: validar contra el store.
			acc, err := actors.Get(r.Context(), claims.AccountID)
			if err != nil {
				if repository.IsNotFound(err) {
					httperrors.WriteError(w, httperrors.ErrAuthenticationRequired.WithDetail("account no longer exists"))
					return
				}
				httperrors.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), acc)))
		})
	}
}
