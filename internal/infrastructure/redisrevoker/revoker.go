// Package redisrevoker implementa la denylist de sesiones cerradas sobre
// Redis: el jti del token se guarda con TTL igual al tiempo de vida
// restante del token, así la entrada desaparece sola al expirar.
package redisrevoker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fieldserve/fieldserve-api/internal/application/auth"
)

var _ auth.TokenRevoker = (*Revoker)(nil)

// Revoker denylist de jti sobre Redis.
type Revoker struct {
	rdb *redis.Client
}

// New conecta a Redis con la URL dada y verifica con un ping.
func New(redisURL string) (*Revoker, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Revoker{rdb: rdb}, nil
}

// Revoke marca el jti hasta que venza ttl.
func (r *Revoker) Revoke(jti string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return r.rdb.Set(ctx, key(jti), "1", ttl).Err()
}

// IsRevoked informa si el jti está en la denylist.
func (r *Revoker) IsRevoked(jti string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := r.rdb.Get(ctx, key(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Close cierra la conexión.
func (r *Revoker) Close() error {
	return r.rdb.Close()
}

func key(jti string) string {
	return "fieldserve:session:revoked:" + jti
}
