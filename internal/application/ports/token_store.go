package ports

import (
	"context"
	"time"
)

// TokenKind nombre del registro persistido para cada token.
type TokenKind string

const (
	TokenAccess  TokenKind = "auth_token"
	TokenRefresh TokenKind = "refresh_token"
)

// Ventanas de retención del lado del cliente.
const (
	AccessTokenTTL  = 7 * 24 * time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour
)

// TTL devuelve la retención fija del tipo de token.
func (k TokenKind) TTL() time.Duration {
	if k == TokenRefresh {
		return RefreshTokenTTL
	}
	return AccessTokenTTL
}

// TokenStore puerto de persistencia de los tokens bearer.
// No valida ni inspecciona el contenido; una escritura es visible de inmediato
// para el siguiente Get del mismo proceso.
type TokenStore interface {
	Set(ctx context.Context, kind TokenKind, value string, ttl time.Duration) error
	// Get devuelve ok=false si el token no existe o ya expiró.
	Get(ctx context.Context, kind TokenKind) (value string, ok bool, err error)
	// Clear elimina ambos tokens de forma incondicional.
	Clear(ctx context.Context) error
}
