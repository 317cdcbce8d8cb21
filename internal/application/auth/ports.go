package auth

import "time"

// TokenRevoker es la denylist de sesiones cerradas. El jti del token se
// revoca hasta su expiración natural; después la entrada puede expirar sola.
// Implementaciones: Redis en producción, mapa en memoria en dev/tests.
type TokenRevoker interface {
	Revoke(jti string, ttl time.Duration) error
	IsRevoked(jti string) (bool, error)
}
