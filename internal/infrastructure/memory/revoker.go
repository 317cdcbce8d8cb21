package memory

import (
	"sync"
	"time"

	"github.com/fieldserve/fieldserve-api/internal/application/auth"
)

var _ auth.TokenRevoker = (*Revoker)(nil)

// Revoker denylist de jti en memoria (desarrollo y tests). Las entradas
// expiradas se limpian de forma perezosa al consultarlas.
type Revoker struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // jti → expiración de la entrada
}

// NewRevoker construye la denylist vacía.
func NewRevoker() *Revoker {
	return &Revoker{revoked: make(map[string]time.Time)}
}

// Revoke marca el jti hasta que venza ttl.
func (r *Revoker) Revoke(jti string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[jti] = time.Now().Add(ttl)
	return nil
}

// IsRevoked informa si el jti sigue revocado.
func (r *Revoker) IsRevoked(jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.revoked[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(until) {
		delete(r.revoked, jti)
		return false, nil
	}
	return true, nil
}
