package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kish38/paas-api/internal/domain/repository"
)

func TestAuthenticate(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	seed(t, st, "alice", repository.RoleRegular, nil)

	acc, err := svc.Authenticate(ctx, "alice", "pwd12345")
	require.NoError(t, err)
	assert.Equal(t, "alice", acc.Username)

	// también por email, case-insensitive
	acc, err = svc.Authenticate(ctx, "Alice@Example.com", "pwd12345")
	require.NoError(t, err)
	assert.Equal(t, "alice", acc.Username)

	// password malo y cuenta inexistente fallan igual
	_, err = svc.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, repository.ErrAuthenticationRequired)
	_, err = svc.Authenticate(ctx, "nobody", "pwd12345")
	assert.ErrorIs(t, err, repository.ErrAuthenticationRequired)
	_, err = svc.Authenticate(ctx, "", "")
	assert.ErrorIs(t, err, repository.ErrAuthenticationRequired)
}

func TestCreateAccount_AdminOnly(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	admin := seed(t, st, "admin", repository.RoleAdmin, nil)
	alice := seed(t, st, "alice", repository.RoleRegular, nil)

	in := CreateAccountInput{Username: "carol", Email: "carol@example.com", Password: "pwd12345"}

	_, err := svc.CreateAccount(ctx, alice, in)
	assert.ErrorIs(t, err, repository.ErrAccessDenied)

	_, err = svc.CreateAccount(ctx, nil, in)
	assert.ErrorIs(t, err, repository.ErrAuthenticationRequired)

	acc, err := svc.CreateAccount(ctx, admin, in)
	require.NoError(t, err)
	assert.Equal(t, repository.RoleRegular, acc.Role)
	assert.Nil(t, acc.Quota, "sin quota = ilimitada")
}

func TestCreateAccount_Validation(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	admin := seed(t, st, "admin", repository.RoleAdmin, nil)

	cases := []CreateAccountInput{
		{Username: "", Email: "a@b.com", Password: "pwd12345"},
		{Username: "u", Email: "not-an-email", Password: "pwd12345"},
		{Username: "u", Email: "a@b.com", Password: "short"},
		{Username: "u", Email: "a@b.com", Password: "pwd12345", Role: "superuser"},
	}
	for i, in := range cases {
		_, err := svc.CreateAccount(ctx, admin, in)
		assert.ErrorIs(t, err, repository.ErrValidation, "case %d", i)
	}
}

func TestCreateAccount_WithQuota(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	admin := seed(t, st, "admin", repository.RoleAdmin, nil)

	acc, err := svc.CreateAccount(ctx, admin, CreateAccountInput{
		Username: "carol", Email: "carol@example.com", Password: "pwd12345", Quota: intp(3),
	})
	require.NoError(t, err)
	require.NotNil(t, acc.Quota)
	require.NotNil(t, acc.QuotaLeft)
	assert.Equal(t, 3, *acc.Quota)
	assert.Equal(t, 3, *acc.QuotaLeft, "cuenta nueva: cupo completo")
}

func TestCreateAccount_NegativeQuota_NothingPersists(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	admin := seed(t, st, "admin", repository.RoleAdmin, nil)

	_, err := svc.CreateAccount(ctx, admin, CreateAccountInput{
		Username: "carol", Email: "carol@example.com", Password: "pwd12345", Quota: intp(-1),
	})
	require.ErrorIs(t, err, repository.ErrValidation)

	// El rechazo no puede dejar una cuenta a medias en el store.
	_, err = st.Accounts().GetByLogin(ctx, "carol")
	require.ErrorIs(t, err, repository.ErrNotFound)

	// El mismo payload con quota corregida procede sin conflicto.
	acc, err := svc.CreateAccount(ctx, admin, CreateAccountInput{
		Username: "carol", Email: "carol@example.com", Password: "pwd12345", Quota: intp(1),
	})
	require.NoError(t, err)
	require.NotNil(t, acc.Quota)
	assert.Equal(t, 1, *acc.Quota)
}

func TestCreateAccount_Duplicate(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	admin := seed(t, st, "admin", repository.RoleAdmin, nil)
	seed(t, st, "alice", repository.RoleRegular, nil)

	_, err := svc.CreateAccount(ctx, admin, CreateAccountInput{
		Username: "alice", Email: "fresh@example.com", Password: "pwd12345",
	})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestAccountReads_AdminOnly(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	admin := seed(t, st, "admin", repository.RoleAdmin, nil)
	alice := seed(t, st, "alice", repository.RoleRegular, nil)

	_, err := svc.ListAccounts(ctx, alice)
	assert.ErrorIs(t, err, repository.ErrAccessDenied)
	_, err = svc.ListAccounts(ctx, nil)
	assert.ErrorIs(t, err, repository.ErrAuthenticationRequired)

	accounts, err := svc.ListAccounts(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)

	// ni siquiera la cuenta propia se lee sin rol admin
	_, err = svc.GetAccount(ctx, alice, alice.ID)
	assert.ErrorIs(t, err, repository.ErrAccessDenied)

	got, err := svc.GetAccount(ctx, admin, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = svc.GetAccount(ctx, admin, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSetAccountQuota(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	admin := seed(t, st, "admin", repository.RoleAdmin, nil)
	alice := seed(t, st, "alice", repository.RoleRegular, nil)

	acc, err := svc.SetAccountQuota(ctx, admin, alice.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, *acc.Quota)
	assert.Equal(t, 2, *acc.QuotaLeft)
}

func TestSetAccountQuota_CountsLiveResources(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	admin := seed(t, st, "admin", repository.RoleAdmin, nil)
	alice := seed(t, st, "alice", repository.RoleRegular, nil)

	_, err := svc.CreateResource(ctx, alice, CreateResourceInput{Value: "v"})
	require.NoError(t, err)

	acc, err := svc.SetAccountQuota(ctx, admin, alice.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, *acc.Quota)
	assert.Equal(t, 1, *acc.QuotaLeft, "un recurso vivo descuenta del cupo")
}

func TestSetAccountQuota_BelowUsage_StateUnchanged(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	admin := seed(t, st, "admin", repository.RoleAdmin, nil)
	alice := seed(t, st, "alice", repository.RoleRegular, intp(5))

	for i := 0; i < 3; i++ {
		_, err := svc.CreateResource(ctx, alice, CreateResourceInput{Value: "v"})
		require.NoError(t, err)
	}

	// 3 vivos, pedir quota 2 falla y nada cambia
	_, err := svc.SetAccountQuota(ctx, admin, alice.ID, 2)
	require.ErrorIs(t, err, repository.ErrQuotaExceeded)

	got, err := st.Accounts().GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, *got.Quota)
	assert.Equal(t, 2, *got.QuotaLeft)
}

func TestSetAccountQuota_Gates(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	admin := seed(t, st, "admin", repository.RoleAdmin, nil)
	alice := seed(t, st, "alice", repository.RoleRegular, nil)

	_, err := svc.SetAccountQuota(ctx, alice, alice.ID, 100)
	assert.ErrorIs(t, err, repository.ErrAccessDenied, "nadie se sube la quota a sí mismo")

	_, err = svc.SetAccountQuota(ctx, nil, alice.ID, 100)
	assert.ErrorIs(t, err, repository.ErrAuthenticationRequired)

	_, err = svc.SetAccountQuota(ctx, admin, uuid.New(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.SetAccountQuota(ctx, admin, alice.ID, -1)
	assert.ErrorIs(t, err, repository.ErrValidation)
}

func TestClearAccountQuota(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	admin := seed(t, st, "admin", repository.RoleAdmin, nil)
	alice := seed(t, st, "alice", repository.RoleRegular, intp(1))

	_, err := svc.CreateResource(ctx, alice, CreateResourceInput{Value: "v"})
	require.NoError(t, err)

	// Con el cupo agotado, quitar el tope siempre procede.
	acc, err := svc.ClearAccountQuota(ctx, admin, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, acc.Quota)
	assert.Nil(t, acc.QuotaLeft)

	_, err = svc.CreateResource(ctx, alice, CreateResourceInput{Value: "w"})
	require.NoError(t, err, "sin tope no hay bloqueo por cupo")

	_, err = svc.ClearAccountQuota(ctx, alice, alice.ID)
	assert.ErrorIs(t, err, repository.ErrAccessDenied)
}

func TestDeleteAccount(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	admin := seed(t, st, "admin", repository.RoleAdmin, nil)
	alice := seed(t, st, "alice", repository.RoleRegular, nil)

	_, err := svc.CreateResource(ctx, alice, CreateResourceInput{Value: "v"})
	require.NoError(t, err)

	err = svc.DeleteAccount(ctx, alice, alice.ID)
	assert.ErrorIs(t, err, repository.ErrAccessDenied)

	require.NoError(t, svc.DeleteAccount(ctx, admin, alice.ID))
	_, err = st.Accounts().GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// los recursos se fueron en cascada
	left, err := st.Resources().List(ctx, repository.ListResourcesFilter{})
	require.NoError(t, err)
	assert.Empty(t, left)
}
