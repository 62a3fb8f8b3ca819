package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-dashboard/internal/application/access"
	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
	"github.com/jhoicas/invorya-dashboard/internal/application/ports"
	"github.com/jhoicas/invorya-dashboard/internal/application/session"
)

// DecisionKind resultado de evaluar una vista protegida.
type DecisionKind int

const (
	// DecisionPending la sesión aún no se resolvió: mostrar "cargando".
	DecisionPending DecisionKind = iota
	// DecisionRedirect sin sesión: ir a Target.
	DecisionRedirect
	// DecisionRender sesión válida: mostrar View.
	DecisionRender
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionRedirect:
		return "redirect"
	case DecisionRender:
		return "render"
	default:
		return "pending"
	}
}

// Decision qué hacer con una vista protegida.
type Decision struct {
	Kind   DecisionKind
	Target string // solo en Redirect
	View   string // solo en Render
}

// Decide función pura: estado de sesión + vista → decisión.
func Decide(state session.State, view string) Decision {
	switch state {
	case session.StateAuthenticated:
		return Decision{Kind: DecisionRender, View: view}
	case session.StateAnonymous:
		return Decision{Kind: DecisionRedirect, Target: ports.RouteLogin}
	default:
		return Decision{Kind: DecisionPending}
	}
}

// sessionReader contrato mínimo del guard; lo implementa *session.Manager.
type sessionReader interface {
	Snapshot() session.Snapshot
}

// sessionWatcher sesión observable; lo implementa *session.Manager.
type sessionWatcher interface {
	Observe(fn func(session.Snapshot)) (unsubscribe func())
}

// Protect middleware que aplica Decide a la ruta pedida.
//
// Comportamiento:
//   - 202 Accepted {"status":"loading"} → sesión en bootstrap o autenticando.
//   - 303 See Other a /auth/login       → sin sesión.
//   - c.Next()                          → sesión válida.
func Protect(sessions sessionReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := Decide(sessions.Snapshot().State, c.Path())
		switch d.Kind {
		case DecisionRender:
			return c.Next()
		case DecisionRedirect:
			return c.Redirect(d.Target, fiber.StatusSeeOther)
		default:
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "loading"})
		}
	}
}

// RequireCapability 403 si el usuario actual no tiene la capacidad.
// Debe usarse DESPUÉS de Protect.
func RequireCapability(perms *access.Permissions, capability access.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !perms.Can(capability) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol actual no permite " + capability.String(),
			})
		}
		return c.Next()
	}
}

// Watch evalúa view con el estado actual y de nuevo en cada cambio de sesión,
// entregando las decisiones a fn en orden. Un 401 en segundo plano mientras la
// vista está montada produce Redirect. Devuelve la función para dejar de observar.
func Watch(sessions sessionWatcher, view string, fn func(Decision)) (unsubscribe func()) {
	return sessions.Observe(func(s session.Snapshot) {
		fn(Decide(s.State, view))
	})
}
