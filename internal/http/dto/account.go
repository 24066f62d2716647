// Package dto contiene los tipos de request y response de la API.
package dto

import "github.com/kish38/paas-api/internal/domain/repository"

// AccountResponse representa una cuenta en respuestas. Los campos de
// cupo son punteros: null significa cuenta sin límite.
type AccountResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Quota     *int   `json:"quota"`
	QuotaLeft *int   `json:"quota_left"`
}

// CreateAccountRequest para registrar una cuenta nueva.
type CreateAccountRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
	Quota    *int   `json:"quota,omitempty"`
}

// QuotaRequest para ajustar el cupo de una cuenta. Quota en null
// convierte la cuenta en ilimitada.
type QuotaRequest struct {
	Quota *int `json:"quota"`
}

// FromAccount mapea la cuenta de dominio a su representación pública.
func FromAccount(acc *repository.Account) AccountResponse {
	return AccountResponse{
		ID:        acc.ID.String(),
		Username:  acc.Username,
		Email:     acc.Email,
		Role:      string(acc.Role),
		Quota:     acc.Quota,
		QuotaLeft: acc.QuotaLeft,
	}
}

// FromAccounts mapea una lista. Devuelve slice vacío, nunca nil, para
// que el JSON sea [] y no null.
func FromAccounts(accs []repository.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accs))
	for i := range accs {
		out = append(out, FromAccount(&accs[i]))
	}
	return out
}
