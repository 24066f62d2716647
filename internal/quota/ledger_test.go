package quota

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kish38/paas-api/internal/domain/repository"
)

func acct(quota, left *int) *repository.Account {
	return &repository.Account{
		ID:        uuid.New(),
		Username:  "user1",
		Role:      repository.RoleRegular,
		Quota:     quota,
		QuotaLeft: left,
	}
}

func ptr(n int) *int { return &n }

func TestSetQuota_FreshAccount(t *testing.T) {
	a := acct(nil, nil)
	require.NoError(t, SetQuota(a, 2, 0))
	require.NotNil(t, a.Quota)
	require.NotNil(t, a.QuotaLeft)
	assert.Equal(t, 2, *a.Quota)
	assert.Equal(t, 2, *a.QuotaLeft)
}

func TestSetQuota_WithLiveResources(t *testing.T) {
	a := acct(nil, nil)
	require.NoError(t, SetQuota(a, 2, 1))
	assert.Equal(t, 2, *a.Quota)
	assert.Equal(t, 1, *a.QuotaLeft)
}

func TestSetQuota_BelowUsage_FailsUnchanged(t *testing.T) {
	a := acct(ptr(5), ptr(2))
	err := SetQuota(a, 2, 3)
	require.ErrorIs(t, err, repository.ErrQuotaExceeded)
	// sin mutación en fallo
	assert.Equal(t, 5, *a.Quota)
	assert.Equal(t, 2, *a.QuotaLeft)
}

func TestSetQuota_Negative(t *testing.T) {
	a := acct(nil, nil)
	err := SetQuota(a, -1, 0)
	require.ErrorIs(t, err, repository.ErrValidation)
	assert.Nil(t, a.Quota)
}

func TestSetQuota_ZeroIsLegal(t *testing.T) {
	a := acct(nil, nil)
	require.NoError(t, SetQuota(a, 0, 0))
	assert.Equal(t, 0, *a.QuotaLeft)
	assert.False(t, HasCapacity(a))
}

func TestSetQuota_ZeroWithOneLive_Fails(t *testing.T) {
	// 1 recurso vivo: bajar el tope a 0 no procede (0 < 1).
	a := acct(ptr(2), ptr(1))
	err := SetQuota(a, 0, 1)
	require.ErrorIs(t, err, repository.ErrQuotaExceeded)
	assert.Equal(t, 2, *a.Quota)
}

func TestHasCapacity(t *testing.T) {
	assert.True(t, HasCapacity(acct(nil, nil)), "quota sin setear = ilimitada")
	assert.True(t, HasCapacity(acct(ptr(2), ptr(1))))
	assert.False(t, HasCapacity(acct(ptr(2), ptr(0))), "quota_left == 0 bloquea")
}

func TestLedger_UnlimitedIsNoop(t *testing.T) {
	a := acct(nil, nil)
	OnResourceCreated(a)
	OnResourceDeleted(a)
	assert.Nil(t, a.Quota)
	assert.Nil(t, a.QuotaLeft)
}

// Camina el escenario quota=2: dos creaciones (2→1→0), sin cupo para la
// tercera, un borrado devuelve el cupo (0→1).
func TestLedger_QuotaTwoWalkthrough(t *testing.T) {
	a := acct(nil, nil)
	require.NoError(t, SetQuota(a, 2, 0))

	require.True(t, HasCapacity(a))
	OnResourceCreated(a)
	assert.Equal(t, 1, *a.QuotaLeft)

	require.True(t, HasCapacity(a))
	OnResourceCreated(a)
	assert.Equal(t, 0, *a.QuotaLeft)

	assert.False(t, HasCapacity(a), "tercera creación bloqueada")

	OnResourceDeleted(a)
	assert.Equal(t, 1, *a.QuotaLeft)

	// Con 1 recurso vivo, fijar quota 0 falla.
	require.ErrorIs(t, SetQuota(a, 0, 1), repository.ErrQuotaExceeded)
}

// El invariante quota_left == quota - vivos se sostiene bajo cualquier
// secuencia de altas/bajas comprometidas.
func TestLedger_InvariantUnderSequences(t *testing.T) {
	a := acct(nil, nil)
	require.NoError(t, SetQuota(a, 10, 0))

	live := 0
	steps := []int{+1, +1, +1, -1, +1, +1, -1, -1, +1, +1, +1, +1, -1}
	for _, s := range steps {
		if s > 0 {
			require.True(t, HasCapacity(a))
			OnResourceCreated(a)
			live++
		} else {
			OnResourceDeleted(a)
			live--
		}
		require.Equal(t, 10-live, *a.QuotaLeft)
		require.GreaterOrEqual(t, *a.QuotaLeft, 0)
		require.LessOrEqual(t, *a.QuotaLeft, *a.Quota)
	}
}

func TestLedger_UnderflowPanics(t *testing.T) {
	a := acct(ptr(1), ptr(0))
	assert.Panics(t, func() { OnResourceCreated(a) })
}

func TestLedger_OverflowPanics(t *testing.T) {
	a := acct(ptr(1), ptr(1))
	assert.Panics(t, func() { OnResourceDeleted(a) })
}
