package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kish38/paas-api/internal/domain/repository"
)

func newAccount(t *testing.T, s *Store, username string) *repository.Account {
	t.Helper()
	acc, err := s.Accounts().Create(context.Background(), repository.CreateAccountInput{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$argon2id$...",
		Role:         repository.RoleRegular,
	})
	require.NoError(t, err)
	return acc
}

func TestAccounts_CreateAndLookup(t *testing.T) {
	s := New()
	ctx := context.Background()
	acc := newAccount(t, s, "alice")

	got, err := s.Accounts().GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	got, err = s.Accounts().GetByLogin(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)

	got, err = s.Accounts().GetByLogin(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)

	_, err = s.Accounts().GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAccounts_DuplicateConflict(t *testing.T) {
	s := New()
	newAccount(t, s, "alice")

	_, err := s.Accounts().Create(context.Background(), repository.CreateAccountInput{
		Username: "Alice", Email: "other@example.com", Role: repository.RoleRegular,
	})
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = s.Accounts().Create(context.Background(), repository.CreateAccountInput{
		Username: "alice2", Email: "ALICE@example.com", Role: repository.RoleRegular,
	})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestAccounts_SaveIsolation(t *testing.T) {
	// El store guarda copias: mutar el puntero devuelto no toca lo persistido.
	s := New()
	ctx := context.Background()
	acc := newAccount(t, s, "alice")

	q := 5
	acc.Quota = &q
	got, err := s.Accounts().GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Quota)

	require.NoError(t, s.Accounts().Save(ctx, acc))
	got, err = s.Accounts().GetByID(ctx, acc.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Quota)
	assert.Equal(t, 5, *got.Quota)
}

func TestResources_PairedCreateDelete(t *testing.T) {
	s := New()
	ctx := context.Background()
	acc := newAccount(t, s, "alice")

	q, left := 3, 2
	acc.Quota, acc.QuotaLeft = &q, &left
	res := &repository.Resource{ID: uuid.New(), OwnerID: acc.ID, Value: "v", CreatedAt: time.Now()}
	require.NoError(t, s.CreateResource(ctx, res, acc))

	// ambos lados comprometidos
	got, err := s.Resources().GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "v", got.Value)
	accGot, err := s.Accounts().GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, *accGot.QuotaLeft)

	left = 3
	require.NoError(t, s.DeleteResource(ctx, res.ID, acc))
	_, err = s.Resources().GetByID(ctx, res.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	accGot, err = s.Accounts().GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, *accGot.QuotaLeft)
}

func TestDeleteResource_MissingIsNotFound(t *testing.T) {
	s := New()
	acc := newAccount(t, s, "alice")
	err := s.DeleteResource(context.Background(), uuid.New(), acc)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAccounts_DeleteCascadesResources(t *testing.T) {
	s := New()
	ctx := context.Background()
	alice := newAccount(t, s, "alice")
	bob := newAccount(t, s, "bob")

	for i := 0; i < 3; i++ {
		res := &repository.Resource{ID: uuid.New(), OwnerID: alice.ID, Value: "a", CreatedAt: time.Now()}
		require.NoError(t, s.CreateResource(ctx, res, alice))
	}
	resB := &repository.Resource{ID: uuid.New(), OwnerID: bob.ID, Value: "b", CreatedAt: time.Now()}
	require.NoError(t, s.CreateResource(ctx, resB, bob))

	require.NoError(t, s.Accounts().Delete(ctx, alice.ID))

	all, err := s.Resources().List(ctx, repository.ListResourcesFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, bob.ID, all[0].OwnerID)
}

func TestResources_ListFilterAndCount(t *testing.T) {
	s := New()
	ctx := context.Background()
	alice := newAccount(t, s, "alice")
	bob := newAccount(t, s, "bob")

	for i := 0; i < 2; i++ {
		require.NoError(t, s.CreateResource(ctx, &repository.Resource{ID: uuid.New(), OwnerID: alice.ID, Value: "a", CreatedAt: time.Now()}, alice))
	}
	require.NoError(t, s.CreateResource(ctx, &repository.Resource{ID: uuid.New(), OwnerID: bob.ID, Value: "b", CreatedAt: time.Now()}, bob))

	all, err := s.Resources().List(ctx, repository.ListResourcesFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := s.Resources().List(ctx, repository.ListResourcesFilter{OwnerID: &alice.ID})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	n, err := s.Resources().CountByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
