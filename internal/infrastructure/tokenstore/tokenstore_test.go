package tokenstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invorya-dashboard/internal/application/ports"
)

func stores(t *testing.T) map[string]ports.TokenStore {
	t.Helper()
	out := map[string]ports.TokenStore{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(t.TempDir(), "tokens.json")),
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		out["redis"] = newTestRedisStore(t, url)
	}
	return out
}

// newTestRedisStore store con prefijo único para no pisar otras claves.
func newTestRedisStore(t *testing.T, url string) *RedisStore {
	t.Helper()
	s, err := NewRedisStore(context.Background(), url, "invorya-test:"+uuid.NewString()+":")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Clear(context.Background())
		_ = s.Close()
	})
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, ports.TokenAccess, "tok.abc", ports.AccessTokenTTL))
			require.NoError(t, s.Set(ctx, ports.TokenRefresh, "ref.xyz", ports.RefreshTokenTTL))

			v, ok, err := s.Get(ctx, ports.TokenAccess)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "tok.abc", v, "debe devolver exactamente el string guardado")

			v, ok, err = s.Get(ctx, ports.TokenRefresh)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "ref.xyz", v)
		})
	}
}

func TestStore_ClearRemovesBoth(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, ports.TokenAccess, "a", time.Hour))
			require.NoError(t, s.Set(ctx, ports.TokenRefresh, "r", time.Hour))
			require.NoError(t, s.Clear(ctx))
			// Clear sobre un store vacío tampoco falla.
			require.NoError(t, s.Clear(ctx))

			_, ok, err := s.Get(ctx, ports.TokenAccess)
			require.NoError(t, err)
			assert.False(t, ok)
			_, ok, err = s.Get(ctx, ports.TokenRefresh)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			v, ok, err := s.Get(context.Background(), ports.TokenAccess)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, v)
		})
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, ports.TokenAccess, "a", ports.AccessTokenTTL))
	require.NoError(t, s.Set(ctx, ports.TokenRefresh, "r", ports.RefreshTokenTTL))

	now = now.Add(8 * 24 * time.Hour)
	_, ok, _ := s.Get(ctx, ports.TokenAccess)
	assert.False(t, ok, "access token expira a los 7 días")
	_, ok, _ = s.Get(ctx, ports.TokenRefresh)
	assert.True(t, ok, "refresh token sigue vivo hasta los 30 días")

	now = now.Add(23 * 24 * time.Hour)
	_, ok, _ = s.Get(ctx, ports.TokenRefresh)
	assert.False(t, ok)
}

func TestFileStore_DurableAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "tokens.json")

	first := NewFileStore(path)
	require.NoError(t, first.Set(ctx, ports.TokenAccess, "persisted", ports.AccessTokenTTL))

	// Simula un reinicio del proceso: instancia nueva, misma ruta.
	second := NewFileStore(path)
	v, ok, err := second.Get(ctx, ports.TokenAccess)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, second.Clear(ctx))
	_, ok, err = first.Get(ctx, ports.TokenAccess)
	require.NoError(t, err)
	assert.False(t, ok, "el clear de otra instancia es visible")
}

func TestFileStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewFileStore(filepath.Join(t.TempDir(), "tokens.json"))
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, ports.TokenAccess, "a", time.Hour))
	now = now.Add(2 * time.Hour)
	_, ok, err := s.Get(ctx, ports.TokenAccess)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("{no-json"), 0o600))

	_, _, err := NewFileStore(path).Get(context.Background(), ports.TokenAccess)
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Redis (requiere REDIS_URL)
// ──────────────────────────────────────────────────────────────────────────────

func TestRedisStore_TTLNativoYClearBorraAmbasClaves(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL no definida")
	}
	ctx := context.Background()
	s := newTestRedisStore(t, url)

	require.NoError(t, SetAccessToken(ctx, s, "a"))
	require.NoError(t, SetRefreshToken(ctx, s, "r"))

	ttl, err := s.client.TTL(ctx, s.key(ports.TokenAccess)).Result()
	require.NoError(t, err)
	assert.InDelta(t, ports.AccessTokenTTL.Seconds(), ttl.Seconds(), 5)
	ttl, err = s.client.TTL(ctx, s.key(ports.TokenRefresh)).Result()
	require.NoError(t, err)
	assert.InDelta(t, ports.RefreshTokenTTL.Seconds(), ttl.Seconds(), 5)

	// Una clave vencida desaparece sola.
	require.NoError(t, s.Set(ctx, ports.TokenAccess, "corto", 50*time.Millisecond))
	assert.Eventually(t, func() bool {
		_, ok, err := s.Get(ctx, ports.TokenAccess)
		return err == nil && !ok
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, s.Set(ctx, ports.TokenAccess, "a", time.Hour))
	require.NoError(t, s.Clear(ctx))
	n, err := s.client.Exists(ctx, s.key(ports.TokenAccess), s.key(ports.TokenRefresh)).Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, closer, err := Open(ctx, Config{Driver: DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
	assert.NoError(t, closer.Close())

	s, _, err = Open(ctx, Config{FilePath: filepath.Join(t.TempDir(), "t.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	_, _, err = Open(ctx, Config{Driver: "cookies"})
	assert.Error(t, err)

	_, _, err = Open(ctx, Config{Driver: DriverRedis, RedisURL: "::not-a-url"})
	assert.Error(t, err)
}

func TestSetTokens_RetencionFija(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := base
	s := NewMemoryStore()
	s.now = func() time.Time { return clock }

	require.NoError(t, SetAccessToken(ctx, s, "a"))
	require.NoError(t, SetRefreshToken(ctx, s, "r"))

	clock = base.Add(7*24*time.Hour - time.Second)
	_, ok, _ := s.Get(ctx, ports.TokenAccess)
	assert.True(t, ok)

	clock = base.Add(7 * 24 * time.Hour)
	_, ok, _ = s.Get(ctx, ports.TokenAccess)
	assert.False(t, ok, "el access token vence a los 7 días")
	_, ok, _ = s.Get(ctx, ports.TokenRefresh)
	assert.True(t, ok)

	clock = base.Add(30 * 24 * time.Hour)
	_, ok, _ = s.Get(ctx, ports.TokenRefresh)
	assert.False(t, ok, "el refresh token vence a los 30 días")
}
