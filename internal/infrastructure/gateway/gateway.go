// Package gateway es el único punto de salida HTTP hacia el backend: inyecta el
// token bearer, clasifica las respuestas de error, notifica al usuario y
// devuelve el error original al llamador.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jhoicas/invorya-dashboard/internal/application/ports"
	"github.com/jhoicas/invorya-dashboard/pkg/logger"
)

const (
	// DefaultTimeout plazo fijo por petición; al vencer falla como error de red.
	DefaultTimeout = 30 * time.Second

	// HeaderRequestID correlaciona la petición con los logs del backend.
	HeaderRequestID = "X-Request-ID"

	maxBodyBytes = 8 << 20
)

// Textos de notificación por clase de error.
const (
	msgPermissionDenied = "Acceso denegado. No tienes permiso para realizar esta acción."
	msgRateLimited      = "Demasiadas peticiones. Intenta de nuevo más tarde."
	msgServerFault      = "Error del servidor. Intenta de nuevo más tarde."
	msgNetwork          = "Error de red. Verifica tu conexión."
	msgUnexpected       = "Ocurrió un error inesperado."
)

// Options configuración del gateway.
type Options struct {
	BaseURL      string        // ej. http://localhost:8080/api
	Timeout      time.Duration // 0 = DefaultTimeout
	RateLimitRPS float64       // 0 = sin límite
	HTTPClient   *http.Client  // opcional; se le fija Timeout
	Notifier     ports.Notifier
	Logger       *logger.Logger
}

// Gateway cliente HTTP configurado una sola vez por runtime.
type Gateway struct {
	baseURL  string
	client   *http.Client
	tokens   ports.TokenStore
	notifier ports.Notifier
	limiter  *rate.Limiter
	log      *logger.Logger

	mu     sync.Mutex
	subs   map[uint64]func()
	nextID uint64
}

// New construye el gateway sobre el TokenStore indicado.
func New(tokens ports.TokenStore, opts Options) *Gateway {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	// Copia: el cliente recibido puede ser compartido (o http.DefaultClient).
	client := &http.Client{}
	if opts.HTTPClient != nil {
		c := *opts.HTTPClient
		client = &c
	}
	client.Timeout = timeout

	notifier := opts.Notifier
	if notifier == nil {
		notifier = ports.NotifierFunc(func(ports.Notification) {})
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	var limiter *rate.Limiter
	if opts.RateLimitRPS > 0 {
		burst := int(opts.RateLimitRPS)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), burst)
	}

	return &Gateway{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		client:   client,
		tokens:   tokens,
		notifier: notifier,
		limiter:  limiter,
		log:      log.Component("gateway"),
		subs:     make(map[uint64]func()),
	}
}

// BaseURL URL base del backend.
func (g *Gateway) BaseURL() string { return g.baseURL }

// OnAuthInvalidated registra fn para el evento "autenticación invalidada" (HTTP 401).
// fn se invoca después de borrar los tokens. Devuelve la función para desuscribirse.
func (g *Gateway) OnAuthInvalidated(fn func()) (unsubscribe func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextID
	g.nextID++
	g.subs[id] = fn
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.subs, id)
	}
}

// Do ejecuta method path con query y body (JSON) y decodifica la respuesta 2xx en out.
// Cualquier fallo se devuelve como *Error después de aplicar la política global
// (notificación y, en 401, borrado de tokens + evento de invalidación).
func (g *Gateway) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	reqID := uuid.NewString()
	fail := func(kind Kind, cause error) error {
		return g.handle(ctx, &Error{Kind: kind, Method: method, Path: path, RequestID: reqID, Err: cause})
	}

	target := g.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fail(KindUnrecognized, fmt.Errorf("serializar body: %w", err))
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fail(KindUnrecognized, fmt.Errorf("crear request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, reqID)

	token, ok, err := g.tokens.Get(ctx, ports.TokenAccess)
	if err != nil {
		// Sin token legible la petición sale sin autenticar.
		g.log.Warn().Err(err).Msg("leer token de acceso")
	} else if ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return fail(KindNetworkUnavailable, err)
		}
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		return fail(KindNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fail(KindNetworkUnavailable, fmt.Errorf("leer respuesta: %w", err))
	}

	g.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", reqID).
		Msg("respuesta del backend")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(bytes.TrimSpace(raw)) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fail(KindUnrecognized, fmt.Errorf("decodificar respuesta: %w", err))
		}
		return nil
	}

	gerr := classify(resp.StatusCode, raw)
	gerr.Method, gerr.Path, gerr.RequestID = method, path, reqID
	return g.handle(ctx, gerr)
}

// errorBody forma de error del backend: {success:false, error, message} o {code, message}.
type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// classify traduce el status HTTP y el cuerpo a un *Error.
func classify(status int, raw []byte) *Error {
	e := &Error{Status: status}
	var body errorBody
	structured := json.Unmarshal(raw, &body) == nil
	if structured {
		e.Code = body.Error
		if e.Code == "" {
			e.Code = body.Code
		}
		e.Message = body.Message
	}

	switch {
	case status == http.StatusUnauthorized:
		e.Kind = KindAuthenticationExpired
	case status == http.StatusForbidden:
		e.Kind = KindPermissionDenied
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
	case status >= 500:
		e.Kind = KindServerFault
	case structured && body.Message != "":
		e.Kind = KindValidationFailed
	default:
		e.Kind = KindUnrecognized
	}
	return e
}

// handle aplica la política global para e y lo devuelve.
func (g *Gateway) handle(ctx context.Context, e *Error) error {
	ev := g.log.Warn().
		Str("kind", e.Kind.String()).
		Str("method", e.Method).
		Str("path", e.Path).
		Str("request_id", e.RequestID)
	if e.Status > 0 {
		ev = ev.Int("status", e.Status)
	}
	if e.Err != nil {
		ev = ev.Err(e.Err)
	}
	ev.Msg("petición fallida")

	switch e.Kind {
	case KindAuthenticationExpired:
		g.invalidate(ctx)
		return e
	case KindNetworkUnavailable:
		// Una cancelación del propio llamador no es un problema de conectividad.
		if errors.Is(e.Err, context.Canceled) {
			return e
		}
		g.notify(e, msgNetwork)
	case KindPermissionDenied:
		g.notify(e, msgPermissionDenied)
	case KindRateLimited:
		g.notify(e, msgRateLimited)
	case KindServerFault:
		g.notify(e, msgServerFault)
	case KindValidationFailed:
		g.notify(e, e.Message)
	default:
		g.notify(e, msgUnexpected)
	}
	return e
}

func (g *Gateway) notify(e *Error, msg string) {
	if e.Message == "" {
		e.Message = msg
	}
	g.notifier.Notify(ports.Notification{Level: ports.LevelError, Message: msg, At: time.Now()})
	e.Notified = true
}

// invalidate borra ambos tokens y avisa a los suscriptores. Es idempotente:
// varios 401 simultáneos solo repiten un Clear sin efecto adicional.
func (g *Gateway) invalidate(ctx context.Context) {
	if err := g.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
		g.log.Error().Err(err).Msg("borrar tokens tras 401")
	}

	g.mu.Lock()
	subs := make([]func(), 0, len(g.subs))
	for _, fn := range g.subs {
		subs = append(subs, fn)
	}
	g.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
