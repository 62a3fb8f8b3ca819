// Package tokenstore implementa el almacenamiento de los tokens bearer del cliente.
package tokenstore

import (
	"context"
	"fmt"
	"io"

	"github.com/jhoicas/invorya-dashboard/internal/application/ports"
)

// Drivers soportados por Open.
const (
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Config selección del backend de tokens.
type Config struct {
	Driver      string
	FilePath    string
	RedisURL    string
	RedisPrefix string
}

// Open construye el TokenStore configurado. El io.Closer devuelto siempre es no nulo.
func Open(ctx context.Context, cfg Config) (ports.TokenStore, io.Closer, error) {
	switch cfg.Driver {
	case "", DriverFile:
		path := cfg.FilePath
		if path == "" {
			path = DefaultFilePath()
		}
		return NewFileStore(path), nopCloser{}, nil
	case DriverRedis:
		s, err := NewRedisStore(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case DriverMemory:
		return NewMemoryStore(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("tokenstore: driver desconocido %q", cfg.Driver)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetAccessToken guarda el token de acceso con su retención fija (7 días).
func SetAccessToken(ctx context.Context, s ports.TokenStore, value string) error {
	return s.Set(ctx, ports.TokenAccess, value, ports.TokenAccess.TTL())
}

// SetRefreshToken guarda el refresh token con su retención fija (30 días).
func SetRefreshToken(ctx context.Context, s ports.TokenStore, value string) error {
	return s.Set(ctx, ports.TokenRefresh, value, ports.TokenRefresh.TTL())
}
