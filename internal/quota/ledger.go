// Package quota implementa la contabilidad de quota de las cuentas.
//
// La contabilidad es incremental: cada alta/baja de recurso ajusta quota_left
// en O(1). El único punto donde se recuenta desde cero es SetQuota, porque el
// admin puede mover el tope a un valor cuya relación con el uso actual es
// desconocida.
package quota

import (
	"fmt"

	"github.com/kish38/paas-api/internal/domain/repository"
)

// SetQuota fija la quota de la cuenta en newQuota, dado liveCount recursos
// vivos. Si newQuota < liveCount retorna ErrQuotaExceeded y no muta nada.
// newQuota negativo es un error de validación.
//
// La mutación es sobre acc en memoria; el llamador persiste después. Por eso
// conviene pasar un Clone() si acc es estado compartido.
func SetQuota(acc *repository.Account, newQuota, liveCount int) error {
	if newQuota < 0 {
		return fmt.Errorf("%w: quota must be >= 0", repository.ErrValidation)
	}
	if newQuota < liveCount {
		// Más recursos vivos que el tope pedido: la operación no procede.
		return repository.ErrQuotaExceeded
	}
	left := newQuota - liveCount
	acc.Quota = &newQuota
	acc.QuotaLeft = &left
	return nil
}

// ClearQuota quita el tope de la cuenta: pasa a ilimitada. Siempre es
// legal, independiente del uso actual.
func ClearQuota(acc *repository.Account) {
	acc.Quota = nil
	acc.QuotaLeft = nil
}

// OnResourceCreated descuenta un cupo tras una creación comprometida.
// Debe invocarse exactamente una vez por creación exitosa, nunca si la
// creación falló. Con quota ilimitada es un no-op.
//
// Un descuento sin cupo disponible es un defecto de lógica del llamador
// (el check de capacidad va antes de crear), no un estado recuperable.
func OnResourceCreated(acc *repository.Account) {
	if acc.Quota == nil {
		return
	}
	if acc.QuotaLeft == nil || *acc.QuotaLeft <= 0 {
		panic(fmt.Sprintf("quota ledger underflow: account %s quota_left=%v", acc.ID, acc.QuotaLeft))
	}
	left := *acc.QuotaLeft - 1
	acc.QuotaLeft = &left
}

// OnResourceDeleted devuelve un cupo tras un borrado comprometido.
// Debe invocarse exactamente una vez por borrado exitoso. Con quota
// ilimitada es un no-op.
func OnResourceDeleted(acc *repository.Account) {
	if acc.Quota == nil {
		return
	}
	if acc.QuotaLeft == nil || *acc.QuotaLeft >= *acc.Quota {
		panic(fmt.Sprintf("quota ledger overflow: account %s quota=%d quota_left=%v", acc.ID, *acc.Quota, acc.QuotaLeft))
	}
	left := *acc.QuotaLeft + 1
	acc.QuotaLeft = &left
}

// HasCapacity indica si la cuenta puede crear un recurso más: quota sin
// setear (ilimitada) o quota_left > 0. quota_left == 0 bloquea la creación.
func HasCapacity(acc *repository.Account) bool {
	if acc.Quota == nil {
		return true
	}
	return acc.QuotaLeft != nil && *acc.QuotaLeft > 0
}
