package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kish38/paas-api/internal/domain/repository"
)

var (
	admin = &repository.Account{ID: uuid.New(), Username: "admin", Role: repository.RoleAdmin}
	alice = &repository.Account{ID: uuid.New(), Username: "alice", Role: repository.RoleRegular}
	bob   = &repository.Account{ID: uuid.New(), Username: "bob", Role: repository.RoleRegular}
)

func res(owner *repository.Account) *repository.Resource {
	return &repository.Resource{ID: uuid.New(), OwnerID: owner.ID, Value: "v"}
}

func TestDecideAccount_AdminOnly(t *testing.T) {
	for _, action := range []Action{ActionList, ActionCreate, ActionRead, ActionUpdate, ActionDelete} {
		assert.NoError(t, DecideAccount(admin, action, AccountTarget(alice)), "admin %s", action)
		assert.ErrorIs(t, DecideAccount(alice, action, AccountTarget(alice)), repository.ErrAccessDenied,
			"un no-admin no toca cuentas, ni la propia: %s", action)
	}
}

func TestDecide_Unauthenticated(t *testing.T) {
	// Sin actor la falla es de autenticación, nunca de autorización.
	err := DecideAccount(nil, ActionList, Target{})
	require.ErrorIs(t, err, repository.ErrAuthenticationRequired)
	require.NotErrorIs(t, err, repository.ErrAccessDenied)

	err = DecideResource(nil, ActionCreate, Target{})
	require.ErrorIs(t, err, repository.ErrAuthenticationRequired)
}

func TestDecideResource_ListCreateAnyAuthenticated(t *testing.T) {
	assert.NoError(t, DecideResource(alice, ActionList, Target{}))
	assert.NoError(t, DecideResource(alice, ActionCreate, Target{}))
	assert.NoError(t, DecideResource(admin, ActionCreate, Target{}))
}

func TestDecideResource_OwnerOrAdmin(t *testing.T) {
	r := res(alice)
	for _, action := range []Action{ActionRead, ActionUpdate, ActionDelete} {
		assert.NoError(t, DecideResource(alice, action, ResourceTarget(r)), "dueño %s", action)
		assert.NoError(t, DecideResource(admin, action, ResourceTarget(r)), "admin %s", action)
		assert.ErrorIs(t, DecideResource(bob, action, ResourceTarget(r)), repository.ErrAccessDenied,
			"tercero %s", action)
	}
}

func TestResolveOwner(t *testing.T) {
	other := bob.ID

	assert.Equal(t, other, ResolveOwner(admin, &other), "admin puede crear en nombre de otro")
	assert.Equal(t, admin.ID, ResolveOwner(admin, nil), "admin sin owner explícito crea propio")
	assert.Equal(t, alice.ID, ResolveOwner(alice, &other), "a un no-admin se le fuerza el owner")
	assert.Equal(t, alice.ID, ResolveOwner(alice, nil))
}

func TestScopeList(t *testing.T) {
	owner := bob.ID

	f := ScopeList(admin, nil)
	assert.Nil(t, f.OwnerID, "admin sin filtro ve todo")

	f = ScopeList(admin, &owner)
	require.NotNil(t, f.OwnerID)
	assert.Equal(t, owner, *f.OwnerID)

	f = ScopeList(alice, &owner)
	require.NotNil(t, f.OwnerID)
	assert.Equal(t, alice.ID, *f.OwnerID, "el filtro ajeno se ignora para no-admin")
}
