package service

import (
	"sync"

	"github.com/google/uuid"
)

// accountLocks serializa las mutaciones por cuenta: el check de capacidad y
// el descuento de quota_left deben ejecutar bajo exclusión mutua para esa
// cuenta, o dos creaciones concurrentes podrían ver ambas quota_left == 1 y
// ganar las dos. Las lecturas no pasan por acá.
type accountLocks struct {
	mu sync.Mutex
	m  map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newAccountLocks() *accountLocks {
	return &accountLocks{m: make(map[uuid.UUID]*lockEntry)}
}

// Lock toma el lock de la cuenta id y devuelve la función para soltarlo.
// Las entradas se retiran del mapa cuando nadie las espera.
func (l *accountLocks) Lock(id uuid.UUID) func() {
	l.mu.Lock()
	e, ok := l.m[id]
	if !ok {
		e = &lockEntry{}
		l.m[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.m, id)
		}
		l.mu.Unlock()
	}
}
