// Package audit registra eventos administrativos en una pista separada
// del log operativo. Hoy el destino es el logger estructurado; el punto
// de entrada único permite cambiar el sink sin tocar a los llamadores.
package audit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kish38/paas-api/internal/observability/logger"
)

// Event es el nombre canónico de un evento auditable.
type Event string

const (
	AccountCreated Event = "account.created"
	AccountDeleted Event = "account.deleted"
	QuotaChanged   Event = "account.quota_changed"
)

// Record escribe un evento de auditoría. actorID puede ser uuid.Nil
// cuando el evento no viene de un actor de la API (seed, migraciones).
func Record(ctx context.Context, event Event, actorID, subjectID uuid.UUID, fields ...zap.Field) {
	base := []zap.Field{
		zap.String("audit_event", string(event)),
		zap.String("subject_id", subjectID.String()),
	}
	if actorID != uuid.Nil {
		base = append(base, zap.String("actor_id", actorID.String()))
	}
	logger.From(ctx).Named("audit").Info(string(event), append(base, fields...)...)
}
