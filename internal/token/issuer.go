// Package token emite y valida los tokens de acceso de la plataforma.
// Son JWT HS256 firmados con el secreto del servicio; las claims llevan lo
// justo para reconstruir el actor (sub, username, role).
package token

import (
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kish38/paas-api/internal/domain/repository"
)

var (
	// ErrInvalidToken indica un token malformado, con firma inválida o expirado.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims es el contenido validado de un token de acceso.
type Claims struct {
	AccountID uuid.UUID
	Username  string
	Role      repository.Role
}

// Issuer firma y valida tokens.
type Issuer struct {
	secret []byte
	iss    string
	ttl    time.Duration
}

// NewIssuer crea un issuer. ttl <= 0 usa 15m.
func NewIssuer(secret, iss string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Issuer{secret: []byte(secret), iss: iss, ttl: ttl}
}

// TTL devuelve la vigencia configurada de los tokens emitidos.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Sign emite un token de acceso para la cuenta.
func (i *Issuer) Sign(acc *repository.Account) (string, error) {
	now := time.Now().UTC()
	claims := jwtv5.MapClaims{
		"iss":      i.iss,
		"sub":      acc.ID.String(),
		"username": acc.Username,
		"role":     string(acc.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(i.ttl).Unix(),
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"
	return tk.SignedString(i.secret)
}

// Parse valida firma, expiración e issuer, y devuelve las claims.
func (i *Issuer) Parse(raw string) (*Claims, error) {
	tk, err := jwtv5.Parse(raw, func(t *jwtv5.Token) (any, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwtv5.WithIssuer(i.iss), jwtv5.WithExpirationRequired())
	if err != nil || !tk.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	mc, ok := tk.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("%w: bad sub", ErrInvalidToken)
	}
	username, _ := mc["username"].(string)
	role, _ := mc["role"].(string)

	return &Claims{
		AccountID: id,
		Username:  username,
		Role:      repository.Role(role),
	}, nil
}
