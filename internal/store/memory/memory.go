// Package memory implementa repository.Store en memoria. Lo usa el modo
// dev y la batería de tests; el par recurso+quota se compromete bajo el
// mismo lock, igual que la transacción del driver postgres.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kish38/paas-api/internal/domain/repository"
)

type Store struct {
	mu        sync.RWMutex
	accounts  map[uuid.UUID]*repository.Account
	resources map[uuid.UUID]*repository.Resource
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		accounts:  make(map[uuid.UUID]*repository.Account),
		resources: make(map[uuid.UUID]*repository.Resource),
	}
}

func (s *Store) Accounts() repository.AccountRepository   { return &accountRepo{s} }
func (s *Store) Resources() repository.ResourceRepository { return &resourceRepo{s} }

func (s *Store) Ping(ctx context.Context) error { return nil }
func (s *Store) Close() error                   { return nil }

// CreateResource persiste el recurso y el estado de quota del owner como
// una sola unidad.
func (s *Store) CreateResource(ctx context.Context, res *repository.Resource, owner *repository.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[owner.ID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := s.resources[res.ID]; ok {
		return repository.ErrConflict
	}
	r := *res
	s.resources[res.ID] = &r
	s.accounts[owner.ID] = owner.Clone()
	return nil
}

// DeleteResource elimina el recurso y persiste el estado de quota del owner
// como una sola unidad.
func (s *Store) DeleteResource(ctx context.Context, id uuid.UUID, owner *repository.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.resources[id]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := s.accounts[owner.ID]; !ok {
		return repository.ErrNotFound
	}
	delete(s.resources, id)
	s.accounts[owner.ID] = owner.Clone()
	return nil
}

// ─── accounts ───

type accountRepo struct{ s *Store }

func (r *accountRepo) GetByID(ctx context.Context, id uuid.UUID) (*repository.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	acc, ok := r.s.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return acc.Clone(), nil
}

func (r *accountRepo) GetByLogin(ctx context.Context, login string) (*repository.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	login = strings.ToLower(strings.TrimSpace(login))
	for _, acc := range r.s.accounts {
		if strings.ToLower(acc.Username) == login || strings.ToLower(acc.Email) == login {
			return acc.Clone(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *accountRepo) List(ctx context.Context) ([]repository.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]repository.Account, 0, len(r.s.accounts))
	for _, acc := range r.s.accounts {
		out = append(out, *acc.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *accountRepo) Create(ctx context.Context, input repository.CreateAccountInput) (*repository.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, acc := range r.s.accounts {
		if strings.EqualFold(acc.Username, input.Username) || strings.EqualFold(acc.Email, input.Email) {
			return nil, repository.ErrConflict
		}
	}

	acc := &repository.Account{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        strings.ToLower(input.Email),
		Role:         input.Role,
		PasswordHash: input.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.s.accounts[acc.ID] = acc
	return acc.Clone(), nil
}

func (r *accountRepo) Save(ctx context.Context, acc *repository.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[acc.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.accounts[acc.ID] = acc.Clone()
	return nil
}

func (r *accountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.accounts, id)
	// cascada: los recursos de la cuenta se van con ella
	for rid, res := range r.s.resources {
		if res.OwnerID == id {
			delete(r.s.resources, rid)
		}
	}
	return nil
}

// ─── resources ───

type resourceRepo struct{ s *Store }

func (r *resourceRepo) GetByID(ctx context.Context, id uuid.UUID) (*repository.Resource, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res, ok := r.s.resources[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *resourceRepo) List(ctx context.Context, filter repository.ListResourcesFilter) ([]repository.Resource, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]repository.Resource, 0, len(r.s.resources))
	for _, res := range r.s.resources {
		if filter.OwnerID != nil && res.OwnerID != *filter.OwnerID {
			continue
		}
		out = append(out, *res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *resourceRepo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, res := range r.s.resources {
		if res.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *resourceRepo) Update(ctx context.Context, res *repository.Resource) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.resources[res.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Value = res.Value
	return nil
}
