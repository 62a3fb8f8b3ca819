// Package session es el dueño del estado de sesión del cliente: usuario actual,
// tokens en memoria y la máquina de estados Unknown → Authenticating →
// Authenticated ⇄ Anonymous.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
	"github.com/jhoicas/invorya-dashboard/internal/application/ports"
	"github.com/jhoicas/invorya-dashboard/internal/domain"
	"github.com/jhoicas/invorya-dashboard/internal/domain/entity"
	"github.com/jhoicas/invorya-dashboard/internal/infrastructure/gateway"
	"github.com/jhoicas/invorya-dashboard/internal/infrastructure/tokenstore"
	"github.com/jhoicas/invorya-dashboard/pkg/logger"
)

var (
	// ErrSuperseded el resultado llegó después de que otra operación de sesión
	// más reciente empezara; se descarta sin aplicar nada.
	ErrSuperseded = errors.New("sesión: operación reemplazada por una más reciente")
	// ErrDisposed el Manager ya fue liberado.
	ErrDisposed = errors.New("sesión: manager liberado")
)

// Mensajes mostrados al usuario.
const (
	msgLoginOK        = "Inicio de sesión exitoso"
	msgLoginFailed    = "Inicio de sesión fallido"
	msgRegisterOK     = "Registro exitoso"
	msgRegisterFailed = "Registro fallido"
	msgLogoutOK       = "Sesión cerrada correctamente"
	msgExpired        = "Sesión expirada. Inicia sesión de nuevo."
)

// AuthAPI endpoints de auth que usa la sesión. Lo implementa *api.AuthAPI.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*dto.AuthResponse, error)
	Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*dto.MeResponse, error)
}

// Invalidator fuente del evento "autenticación invalidada". Lo implementa *gateway.Gateway.
type Invalidator interface {
	OnAuthInvalidated(fn func()) (unsubscribe func())
}

// Options colaboradores opcionales del Manager.
type Options struct {
	Invalidator Invalidator
	Notifier    ports.Notifier
	Navigator   ports.Navigator
	Logger      *logger.Logger
}

type subscriber struct {
	id uint64
	fn func(Snapshot)
}

// Manager sesión explícita (no singleton). Ciclo de vida: New → Init → ... → Dispose.
type Manager struct {
	api      AuthAPI
	tokens   ports.TokenStore
	inv      Invalidator
	notifier ports.Notifier
	nav      ports.Navigator
	log      *logger.Logger

	mu      sync.Mutex
	state   State
	user    *entity.User
	access  string
	refresh string
	// prior estado a restaurar si falla el login/register en curso.
	prior Snapshot
	// gen generación de la operación de sesión vigente.
	gen uint64

	subs      []subscriber
	nextSubID uint64
	unsubInv  func()
	disposed  bool

	// Entrega a suscriptores por turnos, en el mismo orden de los cambios.
	pubMu   sync.Mutex
	pubCond *sync.Cond
	pubNext uint64
	pubTurn uint64
}

// New construye el Manager en estado Unknown. No hace I/O hasta Init.
func New(authAPI AuthAPI, tokens ports.TokenStore, opts Options) *Manager {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = ports.NotifierFunc(func(ports.Notification) {})
	}
	nav := opts.Navigator
	if nav == nil {
		nav = ports.NavigatorFunc(func(string) {})
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := &Manager{
		api:      authAPI,
		tokens:   tokens,
		inv:      opts.Invalidator,
		notifier: notifier,
		nav:      nav,
		log:      log.Component("session"),
		state:    StateUnknown,
	}
	m.pubCond = sync.NewCond(&m.pubMu)
	return m
}

// Init se suscribe al evento de invalidación y arranca el bootstrap:
// con token guardado consulta /auth/me; sin token pasa directo a Anonymous.
// Un fallo del bootstrap no es error: la sesión queda Anonymous y los tokens se borran.
func (m *Manager) Init(ctx context.Context) error {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return ErrDisposed
	}
	if m.unsubInv == nil && m.inv != nil {
		m.unsubInv = m.inv.OnAuthInvalidated(m.handleInvalidated)
	}
	m.gen++
	gen := m.gen
	m.state = StateUnknown
	m.commitLocked()

	token, ok, err := m.tokens.Get(ctx, ports.TokenAccess)
	if err != nil {
		m.log.Warn().Err(err).Msg("bootstrap: leer token guardado")
		return m.bootstrapFailed(ctx, gen)
	}
	if !ok || token == "" {
		return m.finish(gen, func() {
			m.setAnonymousLocked()
		})
	}

	resp, err := m.api.Me(ctx)
	if err != nil || resp == nil || !resp.Success || resp.Data.ID == "" {
		m.log.Info().Err(err).Msg("bootstrap: token guardado inválido o expirado")
		return m.bootstrapFailed(ctx, gen)
	}

	refresh, _, err := m.tokens.Get(ctx, ports.TokenRefresh)
	if err != nil {
		m.log.Warn().Err(err).Msg("bootstrap: leer refresh token")
	}
	user := resp.Data
	return m.finish(gen, func() {
		m.setAuthenticatedLocked(&user, token, refresh)
		m.log.Info().Str("user_id", user.ID).Msg("sesión restaurada")
	})
}

func (m *Manager) bootstrapFailed(ctx context.Context, gen uint64) error {
	return m.finish(gen, func() {
		if err := m.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
			m.log.Error().Err(err).Msg("bootstrap: borrar tokens")
		}
		m.setAnonymousLocked()
	})
}

// finish aplica fn bajo el lock solo si gen sigue vigente.
func (m *Manager) finish(gen uint64, fn func()) error {
	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return ErrSuperseded
	}
	fn()
	m.commitLocked()
	return nil
}

// Dispose se desuscribe del gateway y de todos los observadores. Idempotente.
func (m *Manager) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unsubInv != nil {
		m.unsubInv()
		m.unsubInv = nil
	}
	m.subs = nil
	m.disposed = true
	m.gen++
}

// Login autentica con email/password. En éxito persiste ambos tokens, fija el
// usuario y navega al dashboard. En fallo no escribe tokens, restaura el estado
// previo, muestra el mensaje y devuelve el error.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	return m.authenticate(ctx, "login", msgLoginOK, msgLoginFailed, func() (*dto.AuthResponse, error) {
		return m.api.Login(ctx, email, password)
	})
}

// Register crea cuenta + tenant y deja la sesión iniciada; mismo contrato que Login.
func (m *Manager) Register(ctx context.Context, in dto.RegisterRequest) error {
	return m.authenticate(ctx, "register", msgRegisterOK, msgRegisterFailed, func() (*dto.AuthResponse, error) {
		return m.api.Register(ctx, in)
	})
}

func (m *Manager) authenticate(ctx context.Context, op, okMsg, failMsg string, call func() (*dto.AuthResponse, error)) error {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return ErrDisposed
	}
	m.gen++
	gen := m.gen
	if m.state != StateAuthenticating {
		m.prior = m.snapshotLocked()
	}
	m.state = StateAuthenticating
	m.commitLocked()

	resp, err := call()
	if err == nil && (resp == nil || !resp.Success) {
		msg := failMsg
		if resp != nil && resp.Message != "" {
			msg = resp.Message
		}
		err = fmt.Errorf("%s: %w: %s", op, domain.ErrAuthRejected, msg)
	}
	if err != nil {
		return m.authFailed(gen, op, failMsg, resp, err)
	}
	// Sin token o sin usuario no hay sesión posible.
	if resp.Data.Token == "" || resp.Data.User.ID == "" {
		err = fmt.Errorf("%s: %w: respuesta sin token o sin usuario", op, domain.ErrAuthRejected)
		return m.authFailed(gen, op, failMsg, nil, err)
	}

	data := resp.Data
	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		m.log.Info().Str("op", op).Msg("resultado descartado: operación reemplazada")
		return ErrSuperseded
	}
	// Tokens persistidos antes de tocar el estado en memoria.
	if perr := m.persistLocked(ctx, data.Token, data.RefreshToken); perr != nil {
		m.setAnonymousLocked()
		m.commitLocked()
		m.notify(ports.LevelError, failMsg)
		return fmt.Errorf("%s: persistir tokens: %w", op, perr)
	}
	user := data.User
	m.setAuthenticatedLocked(&user, data.Token, data.RefreshToken)
	m.commitLocked()

	m.log.Info().Str("op", op).Str("user_id", user.ID).Str("role", user.Role.String()).Msg("sesión iniciada")
	m.notify(ports.LevelSuccess, okMsg)
	m.nav.Navigate(ports.RouteDashboard)
	return nil
}

func (m *Manager) authFailed(gen uint64, op, failMsg string, resp *dto.AuthResponse, err error) error {
	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return ErrSuperseded
	}
	prior := m.prior
	m.state = prior.State
	m.user = prior.User
	m.access = prior.AccessToken
	m.refresh = prior.RefreshToken
	if m.state == StateUnknown || m.state == StateAuthenticating {
		m.state = StateAnonymous
	}
	m.commitLocked()

	m.log.Warn().Err(err).Str("op", op).Msg("autenticación fallida")
	if !gateway.WasNotified(err) {
		m.notify(ports.LevelError, failureMessage(err, resp, failMsg))
	}
	return err
}

// failureMessage mensaje del servidor si vino, si no el texto por defecto.
func failureMessage(err error, resp *dto.AuthResponse, fallback string) string {
	if gerr, ok := gateway.AsError(err); ok && gerr.Message != "" {
		return gerr.Message
	}
	if resp != nil && resp.Message != "" {
		return resp.Message
	}
	return fallback
}

// Logout llama al endpoint de logout (best-effort) y luego borra siempre el
// estado local, pase lo que pase con el servidor. Nunca falla.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.mu.Unlock()

	if err := m.api.Logout(ctx); err != nil {
		m.log.Warn().Err(err).Msg("logout en servidor falló; se limpia la sesión local igual")
	}

	m.mu.Lock()
	if m.gen != gen {
		// Otra operación más reciente decide el estado final.
		m.mu.Unlock()
		return
	}
	if err := m.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
		m.log.Error().Err(err).Msg("logout: borrar tokens")
	}
	m.setAnonymousLocked()
	m.commitLocked()

	m.notify(ports.LevelSuccess, msgLogoutOK)
	m.nav.Navigate(ports.RouteLogin)
}

// handleInvalidated reacción al 401 del gateway. Idempotente: solo la primera
// invalidación sobre una sesión Authenticated la degrada y navega al login.
func (m *Manager) handleInvalidated() {
	m.mu.Lock()
	switch m.state {
	case StateAuthenticated:
		m.setAnonymousLocked()
		m.commitLocked()
		m.log.Info().Msg("sesión invalidada por el servidor (401)")
		m.notify(ports.LevelError, msgExpired)
		m.nav.Navigate(ports.RouteLogin)
	case StateAuthenticating:
		// Los tokens previos ya no existen; un fallo del intento en curso no debe restaurarlos.
		m.prior = Snapshot{State: StateAnonymous}
		m.mu.Unlock()
	default:
		m.mu.Unlock()
	}
}

// Subscribe registra fn para cada cambio de estado. fn corre sin el lock del
// Manager pero no debe invocar Login/Register/Logout/Init de forma síncrona.
func (m *Manager) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subscribeLocked(fn)
}

// Observe como Subscribe, pero entrega primero el estado actual. El estado
// inicial y el registro ocurren en el mismo turno: ningún cambio posterior
// llega a fn antes que él. No llamar desde dentro de un suscriptor.
func (m *Manager) Observe(fn func(Snapshot)) (unsubscribe func()) {
	m.mu.Lock()
	unsubscribe = m.subscribeLocked(fn)
	snap := m.snapshotLocked()
	turn := m.takeTurnLocked()
	m.mu.Unlock()

	m.deliver(turn, []subscriber{{fn: fn}}, snap)
	return unsubscribe
}

func (m *Manager) subscribeLocked(fn func(Snapshot)) (unsubscribe func()) {
	id := m.nextSubID
	m.nextSubID++
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, s := range m.subs {
			if s.id == id {
				m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

// Snapshot copia inmutable del estado actual.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// State estado actual.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User usuario actual (copia) o nil.
func (m *Manager) User() *entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyUser(m.user)
}

// IsAuthenticated usuario y token presentes.
func (m *Manager) IsAuthenticated() bool {
	return m.Snapshot().IsAuthenticated()
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{
		State:        m.state,
		User:         copyUser(m.user),
		AccessToken:  m.access,
		RefreshToken: m.refresh,
	}
}

// commitLocked publica el estado actual; se llama con m.mu tomado y lo libera.
// Cada cambio toma un turno bajo m.mu, así los suscriptores reciben los
// snapshots en el orden en que ocurrieron aunque vengan de goroutines distintas.
func (m *Manager) commitLocked() {
	snap := m.snapshotLocked()
	subs := make([]subscriber, len(m.subs))
	copy(subs, m.subs)
	turn := m.takeTurnLocked()
	m.mu.Unlock()

	m.deliver(turn, subs, snap)
}

func (m *Manager) takeTurnLocked() uint64 {
	turn := m.pubNext
	m.pubNext++
	return turn
}

// deliver espera su turno y entrega snap a subs.
func (m *Manager) deliver(turn uint64, subs []subscriber, snap Snapshot) {
	m.pubMu.Lock()
	for m.pubTurn != turn {
		m.pubCond.Wait()
	}
	m.pubMu.Unlock()

	defer func() {
		m.pubMu.Lock()
		m.pubTurn++
		m.pubCond.Broadcast()
		m.pubMu.Unlock()
	}()
	for _, s := range subs {
		s.fn(snap)
	}
}

func (m *Manager) persistLocked(ctx context.Context, access, refresh string) error {
	if err := tokenstore.SetAccessToken(ctx, m.tokens, access); err != nil {
		return err
	}
	if err := tokenstore.SetRefreshToken(ctx, m.tokens, refresh); err != nil {
		// Sin escrituras parciales: se deshace también el access token.
		_ = m.tokens.Clear(context.WithoutCancel(ctx))
		return err
	}
	return nil
}

func (m *Manager) setAuthenticatedLocked(u *entity.User, access, refresh string) {
	m.user = u
	m.access = access
	m.refresh = refresh
	m.state = StateAuthenticated
}

func (m *Manager) setAnonymousLocked() {
	m.user = nil
	m.access = ""
	m.refresh = ""
	m.state = StateAnonymous
}

func (m *Manager) notify(level ports.Level, msg string) {
	m.notifier.Notify(ports.Notification{Level: level, Message: msg, At: time.Now()})
}

func copyUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
