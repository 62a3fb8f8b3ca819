package gateway_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invorya-dashboard/internal/application/ports"
	"github.com/jhoicas/invorya-dashboard/internal/domain"
	"github.com/jhoicas/invorya-dashboard/internal/infrastructure/gateway"
	"github.com/jhoicas/invorya-dashboard/internal/infrastructure/tokenstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type recorder struct {
	mu    sync.Mutex
	items []ports.Notification
}

func (r *recorder) Notify(n ports.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *recorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.items))
	for _, n := range r.items {
		out = append(out, n.Message)
	}
	return out
}

func newGateway(t *testing.T, h http.HandlerFunc) (*gateway.Gateway, *tokenstore.MemoryStore, *recorder) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	store := tokenstore.NewMemoryStore()
	rec := &recorder{}
	gw := gateway.New(store, gateway.Options{BaseURL: srv.URL + "/api", Notifier: rec})
	return gw, store, rec
}

func statusHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Interceptor de petición
// ──────────────────────────────────────────────────────────────────────────────

func TestDo_AdjuntaBearerSiHayToken(t *testing.T) {
	var gotAuth, gotReqID, gotPath string
	gw, store, _ := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get(gateway.HeaderRequestID)
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"success":true,"data":{"ok":true}}`))
	})
	require.NoError(t, store.Set(context.Background(), ports.TokenAccess, "abc.def", time.Hour))

	var out struct {
		Success bool `json:"success"`
		Data    struct {
			OK bool `json:"ok"`
		} `json:"data"`
	}
	require.NoError(t, gw.Do(context.Background(), http.MethodGet, "/auth/me", nil, nil, &out))

	assert.Equal(t, "Bearer abc.def", gotAuth)
	assert.NotEmpty(t, gotReqID)
	assert.Equal(t, "/api/auth/me", gotPath)
	assert.True(t, out.Data.OK)
}

func TestDo_SinTokenSaleSinAutenticar(t *testing.T) {
	var gotAuth string
	gw, _, _ := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, gw.Do(context.Background(), http.MethodPost, "/auth/logout", nil, nil, nil))
	assert.Empty(t, gotAuth)
}

func TestDo_CodificaQueryYBody(t *testing.T) {
	var gotQuery url.Values
	var gotBody string
	gw, _, _ := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		_, _ = w.Write([]byte(`{}`))
	})

	q := url.Values{"q": {"tornillo 3/8 & tuerca"}}
	require.NoError(t, gw.Do(context.Background(), http.MethodPost, "/products/search", q, map[string]string{"a": "b"}, nil))

	assert.Equal(t, "tornillo 3/8 & tuerca", gotQuery.Get("q"))
	assert.JSONEq(t, `{"a":"b"}`, gotBody)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación de errores
// ──────────────────────────────────────────────────────────────────────────────

func TestDo_ClasificaPorStatus(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		kind     gateway.Kind
		sentinel error
		notice   string
	}{
		{"403", http.StatusForbidden, `{"success":false,"error":"forbidden","message":"no"}`, gateway.KindPermissionDenied, domain.ErrPermissionDenied, "Acceso denegado. No tienes permiso para realizar esta acción."},
		{"429", http.StatusTooManyRequests, ``, gateway.KindRateLimited, domain.ErrRateLimited, "Demasiadas peticiones. Intenta de nuevo más tarde."},
		{"500", http.StatusInternalServerError, `{"message":"boom"}`, gateway.KindServerFault, domain.ErrServerFault, "Error del servidor. Intenta de nuevo más tarde."},
		{"503", http.StatusServiceUnavailable, ``, gateway.KindServerFault, domain.ErrServerFault, "Error del servidor. Intenta de nuevo más tarde."},
		{"422 con mensaje", http.StatusUnprocessableEntity, `{"success":false,"error":"validation","message":"SKU duplicado"}`, gateway.KindValidationFailed, domain.ErrValidationFailed, "SKU duplicado"},
		{"400 formato code", http.StatusBadRequest, `{"code":"VALIDATION","message":"email requerido"}`, gateway.KindValidationFailed, domain.ErrValidationFailed, "email requerido"},
		{"404 sin forma", http.StatusNotFound, `not found`, gateway.KindUnrecognized, domain.ErrUnrecognized, "Ocurrió un error inesperado."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw, _, rec := newGateway(t, statusHandler(tc.status, tc.body))

			err := gw.Do(context.Background(), http.MethodGet, "/products", nil, nil, nil)
			require.Error(t, err)

			gerr, ok := gateway.AsError(err)
			require.True(t, ok)
			assert.Equal(t, tc.kind, gerr.Kind)
			assert.Equal(t, tc.status, gerr.Status)
			assert.True(t, gerr.Notified)
			assert.True(t, errors.Is(err, tc.sentinel))
			assert.Equal(t, []string{tc.notice}, rec.messages(), "una sola notificación por fallo")
		})
	}
}

func TestDo_401BorraTokensYEmiteEvento(t *testing.T) {
	gw, store, rec := newGateway(t, statusHandler(http.StatusUnauthorized, `{"success":false,"message":"token expirado"}`))
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, ports.TokenAccess, "a", time.Hour))
	require.NoError(t, store.Set(ctx, ports.TokenRefresh, "r", time.Hour))

	var fired atomic.Int32
	unsubscribe := gw.OnAuthInvalidated(func() { fired.Add(1) })

	err := gw.Do(ctx, http.MethodGet, "/inventory", nil, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAuthenticationExpired))
	assert.False(t, gateway.WasNotified(err), "el 401 no genera toast, lo maneja el suscriptor")
	assert.Empty(t, rec.messages())
	assert.Equal(t, int32(1), fired.Load())

	_, ok, _ := store.Get(ctx, ports.TokenAccess)
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, ports.TokenRefresh)
	assert.False(t, ok)

	unsubscribe()
	_ = gw.Do(ctx, http.MethodGet, "/inventory", nil, nil, nil)
	assert.Equal(t, int32(1), fired.Load(), "tras desuscribirse no se recibe el evento")
}

func TestDo_ErrorDeRed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	rec := &recorder{}
	gw := gateway.New(tokenstore.NewMemoryStore(), gateway.Options{BaseURL: base, Notifier: rec})

	err := gw.Do(context.Background(), http.MethodGet, "/units", nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, gateway.KindNetworkUnavailable, gateway.KindOf(err))
	assert.True(t, errors.Is(err, domain.ErrNetworkUnavailable))
	assert.Equal(t, []string{"Error de red. Verifica tu conexión."}, rec.messages())
}

func TestDo_TimeoutEsErrorDeRed(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	gw := gateway.New(tokenstore.NewMemoryStore(), gateway.Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})

	err := gw.Do(context.Background(), http.MethodGet, "/reports/dashboard-stats", nil, nil, nil)
	assert.Equal(t, gateway.KindNetworkUnavailable, gateway.KindOf(err))
}

func TestNew_NoModificaElClienteRecibido(t *testing.T) {
	gw, _, _ := newGateway(t, statusHandler(http.StatusNoContent, ``))
	shared := &http.Client{Timeout: time.Minute}

	gw = gateway.New(tokenstore.NewMemoryStore(), gateway.Options{
		BaseURL:    gw.BaseURL(),
		HTTPClient: shared,
		Timeout:    50 * time.Millisecond,
	})

	require.NoError(t, gw.Do(context.Background(), http.MethodGet, "/units", nil, nil, nil))
	assert.Equal(t, time.Minute, shared.Timeout)
}

func TestDo_CancelacionNoNotifica(t *testing.T) {
	gw, _, rec := newGateway(t, statusHandler(http.StatusOK, `{}`))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := gw.Do(ctx, http.MethodGet, "/units", nil, nil, nil)
	assert.Equal(t, gateway.KindNetworkUnavailable, gateway.KindOf(err))
	assert.Empty(t, rec.messages())
}

func TestDo_RespuestaIlegible(t *testing.T) {
	gw, _, rec := newGateway(t, statusHandler(http.StatusOK, `<html>`))

	var out map[string]any
	err := gw.Do(context.Background(), http.MethodGet, "/units", nil, nil, &out)
	assert.Equal(t, gateway.KindUnrecognized, gateway.KindOf(err))
	assert.Equal(t, []string{"Ocurrió un error inesperado."}, rec.messages())
}

func TestDo_RateLimitDeSalida(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	gw := gateway.New(tokenstore.NewMemoryStore(), gateway.Options{BaseURL: srv.URL, RateLimitRPS: 1})

	require.NoError(t, gw.Do(context.Background(), http.MethodGet, "/units", nil, nil, nil))

	// El segundo token no está disponible antes del plazo del contexto.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := gw.Do(ctx, http.MethodGet, "/units", nil, nil, nil)
	assert.Equal(t, gateway.KindNetworkUnavailable, gateway.KindOf(err))
	assert.Equal(t, int32(1), calls.Load())
}
