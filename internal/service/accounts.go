package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kish38/paas-api/internal/audit"
	"github.com/kish38/paas-api/internal/domain/repository"
	"github.com/kish38/paas-api/internal/observability/logger"
	"github.com/kish38/paas-api/internal/policy"
	"github.com/kish38/paas-api/internal/quota"
	"github.com/kish38/paas-api/internal/security/password"
	"github.com/kish38/paas-api/internal/validation"
)

// CreateAccountInput contiene los datos para provisionar una cuenta.
type CreateAccountInput struct {
	Username string
	Email    string
	Password string
	Role     repository.Role
	Quota    *int
}

const minPasswordLen = 7

// Authenticate resuelve credenciales a una cuenta. El login puede ser
// username o email. Cualquier fallo (cuenta inexistente, password malo) se
// reporta igual, como falla de autenticación.
func (s *Service) Authenticate(ctx context.Context, login, plain string) (*repository.Account, error) {
	login = strings.TrimSpace(login)
	if login == "" || plain == "" {
		return nil, repository.ErrAuthenticationRequired
	}
	acc, err := s.store.Accounts().GetByLogin(ctx, login)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, repository.ErrAuthenticationRequired
		}
		return nil, err
	}
	if !password.Verify(plain, acc.PasswordHash) {
		return nil, repository.ErrAuthenticationRequired
	}
	return acc, nil
}

// CreateAccount provisiona una cuenta nueva. Solo admin. Si viene quota, se
// fija por el ledger sobre una cuenta recién creada (cero recursos vivos).
func (s *Service) CreateAccount(ctx context.Context, actor *repository.Account, in CreateAccountInput) (*repository.Account, error) {
	if err := policy.DecideAccount(actor, policy.ActionCreate, policy.Target{}); err != nil {
		return nil, err
	}

	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Username == "" {
		return nil, fmt.Errorf("%w: username is required", repository.ErrValidation)
	}
	if !validation.ValidUsername(in.Username) {
		return nil, fmt.Errorf("%w: username must be 3-32 chars of [a-z0-9_.-], starting and ending alphanumeric", repository.ErrValidation)
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", repository.ErrValidation)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", repository.ErrValidation, minPasswordLen)
	}
	role := in.Role
	if role == "" {
		role = repository.RoleRegular
	}
	if role != repository.RoleAdmin && role != repository.RoleRegular {
		return nil, fmt.Errorf("%w: unknown role %q", repository.ErrValidation, role)
	}
	// La quota se valida antes del Create: si el ledger la rechazara después,
	// quedaría una cuenta huérfana sin límite persistida en el store.
	if in.Quota != nil && *in.Quota < 0 {
		return nil, fmt.Errorf("%w: quota must be >= 0", repository.ErrValidation)
	}

	hash, err := password.Hash(password.Default, in.Password)
	if err != nil {
		return nil, err
	}

	acc, err := s.store.Accounts().Create(ctx, repository.CreateAccountInput{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	if in.Quota != nil {
		acc = acc.Clone()
		if err := quota.SetQuota(acc, *in.Quota, 0); err != nil {
			return nil, err
		}
		if err := s.store.Accounts().Save(ctx, acc); err != nil {
			return nil, err
		}
	}

	logger.From(ctx).Info("account created",
		logger.Layer("service"),
		logger.AccountID(acc.ID),
		logger.Username(acc.Username),
		logger.Quota(acc.Quota),
	)
	audit.Record(ctx, audit.AccountCreated, actor.ID, acc.ID, logger.Username(acc.Username))
	return acc, nil
}

// ListAccounts lista todas las cuentas. Solo admin.
func (s *Service) ListAccounts(ctx context.Context, actor *repository.Account) ([]repository.Account, error) {
	if err := policy.DecideAccount(actor, policy.ActionList, policy.Target{}); err != nil {
		return nil, err
	}
	return s.store.Accounts().List(ctx)
}

// GetAccount devuelve una cuenta por ID. Solo admin.
func (s *Service) GetAccount(ctx context.Context, actor *repository.Account, id uuid.UUID) (*repository.Account, error) {
	if err := policy.DecideAccount(actor, policy.ActionRead, policy.Target{}); err != nil {
		return nil, err
	}
	acc, err := s.store.Accounts().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// DeleteAccount elimina una cuenta y sus recursos en cascada. Solo admin.
func (s *Service) DeleteAccount(ctx context.Context, actor *repository.Account, id uuid.UUID) error {
	if err := policy.DecideAccount(actor, policy.ActionDelete, policy.Target{}); err != nil {
		return err
	}
	if _, err := s.store.Accounts().GetByID(ctx, id); err != nil {
		return err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.store.Accounts().Delete(ctx, id); err != nil {
		return err
	}
	audit.Record(ctx, audit.AccountDeleted, actor.ID, id)
	return nil
}

// SetAccountQuota fija la quota de una cuenta. Solo admin. El recuento de
// recursos vivos y la escritura corren bajo el lock de la cuenta para que
// una creación concurrente no deje el ledger desfasado.
func (s *Service) SetAccountQuota(ctx context.Context, actor *repository.Account, id uuid.UUID, newQuota int) (*repository.Account, error) {
	if err := policy.DecideAccount(actor, policy.ActionUpdate, policy.Target{}); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	acc, err := s.store.Accounts().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	live, err := s.store.Resources().CountByOwner(ctx, id)
	if err != nil {
		return nil, err
	}

	acc = acc.Clone()
	if err := quota.SetQuota(acc, newQuota, live); err != nil {
		return nil, err
	}
	if err := s.store.Accounts().Save(ctx, acc); err != nil {
		return nil, err
	}

	logger.From(ctx).Info("quota updated",
		logger.Layer("service"),
		logger.AccountID(id),
		logger.Quota(acc.Quota),
		logger.Int("quota_left", *acc.QuotaLeft),
	)
	audit.Record(ctx, audit.QuotaChanged, actor.ID, id, logger.Quota(acc.Quota))
	return acc, nil
}

// ClearAccountQuota quita el tope de una cuenta: pasa a ilimitada. Solo
// admin. Siempre procede, sin importar cuántos recursos vivos haya.
func (s *Service) ClearAccountQuota(ctx context.Context, actor *repository.Account, id uuid.UUID) (*repository.Account, error) {
	if err := policy.DecideAccount(actor, policy.ActionUpdate, policy.Target{}); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	acc, err := s.store.Accounts().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	acc = acc.Clone()
	quota.ClearQuota(acc)
	if err := s.store.Accounts().Save(ctx, acc); err != nil {
		return nil, err
	}

	logger.From(ctx).Info("quota cleared",
		logger.Layer("service"),
		logger.AccountID(id),
	)
	audit.Record(ctx, audit.QuotaChanged, actor.ID, id, logger.Quota(nil))
	return acc, nil
}
