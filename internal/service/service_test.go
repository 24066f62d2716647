package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kish38/paas-api/internal/domain/repository"
	"github.com/kish38/paas-api/internal/security/password"
	"github.com/kish38/paas-api/internal/store/memory"
)

// setup arma un servicio sobre un store en memoria.
func setup(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	st := memory.New()
	return New(st), st
}

// seed crea una cuenta directo en el store, salteando el gate de admin.
func seed(t *testing.T, st *memory.Store, username string, role repository.Role, q *int) *repository.Account {
	t.Helper()
	hash, err := password.Hash(password.Default, "pwd12345")
	require.NoError(t, err)

	acc, err := st.Accounts().Create(context.Background(), repository.CreateAccountInput{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
	})
	require.NoError(t, err)

	if q != nil {
		acc = acc.Clone()
		acc.Quota = q
		left := *q
		acc.QuotaLeft = &left
		require.NoError(t, st.Accounts().Save(context.Background(), acc))
	}
	return acc
}

func intp(n int) *int { return &n }

// quotaLeft relee la cuenta y devuelve su quota_left.
func quotaLeft(t *testing.T, st *memory.Store, acc *repository.Account) int {
	t.Helper()
	got, err := st.Accounts().GetByID(context.Background(), acc.ID)
	require.NoError(t, err)
	require.NotNil(t, got.QuotaLeft)
	return *got.QuotaLeft
}
