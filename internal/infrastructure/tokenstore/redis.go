package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/invorya-dashboard/internal/application/ports"
)

var _ ports.TokenStore = (*RedisStore)(nil)

// RedisStore guarda cada token como una clave con TTL nativo de Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore conecta con redisURL (redis://...) y verifica con PING.
func NewRedisStore(ctx context.Context, redisURL, prefix string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("tokenstore: REDIS_URL inválida: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("tokenstore: ping redis: %w", err)
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

// Close libera la conexión.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(kind ports.TokenKind) string {
	return s.prefix + string(kind)
}

func (s *RedisStore) Set(ctx context.Context, kind ports.TokenKind, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.key(kind), value, ttl).Err(); err != nil {
		return fmt.Errorf("tokenstore: redis set %s: %w", kind, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, kind ports.TokenKind) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(kind)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("tokenstore: redis get %s: %w", kind, err)
	}
	return v, true, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(ports.TokenAccess), s.key(ports.TokenRefresh)).Err(); err != nil {
		return fmt.Errorf("tokenstore: redis del: %w", err)
	}
	return nil
}
