package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-dashboard/internal/application/access"
	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
	"github.com/jhoicas/invorya-dashboard/internal/application/ports"
	"github.com/jhoicas/invorya-dashboard/internal/application/session"
	"github.com/jhoicas/invorya-dashboard/internal/infrastructure/gateway"
)

// routeSource última navegación pedida por la sesión; lo implementa *notify.Navigator.
type routeSource interface {
	Last() string
}

// AuthHandler login, registro, logout y consulta de la sesión local.
type AuthHandler struct {
	sessions *session.Manager
	perms    *access.Permissions
	routes   routeSource
}

// NewAuthHandler construye el handler. routes puede ser nil.
func NewAuthHandler(sessions *session.Manager, perms *access.Permissions, routes routeSource) *AuthHandler {
	return &AuthHandler{sessions: sessions, perms: perms, routes: routes}
}

// Login godoc
// @Summary      Iniciar sesión contra el backend
// @Tags         auth
// @Accept       json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      303
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return badRequest(c, "VALIDATION", "email y password son requeridos")
	}
	if err := h.sessions.Login(c.UserContext(), in.Email, in.Password); err != nil {
		return authError(c, err)
	}
	return c.Redirect(ports.RouteDashboard, fiber.StatusSeeOther)
}

// Register godoc
// @Summary      Registrar empresa y usuario administrador
// @Tags         auth
// @Accept       json
// @Param        body  body  dto.RegisterRequest  true  "Datos de registro"
// @Success      303
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" || in.CompanyName == "" {
		return badRequest(c, "VALIDATION", "email, password y company_name son requeridos")
	}
	if err := h.sessions.Register(c.UserContext(), in); err != nil {
		return authError(c, err)
	}
	return c.Redirect(ports.RouteDashboard, fiber.StatusSeeOther)
}

// Logout godoc
// @Summary      Cerrar sesión (siempre limpia el estado local)
// @Tags         auth
// @Success      303
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Logout(c.UserContext())
	return c.Redirect(ports.RouteLogin, fiber.StatusSeeOther)
}

// Session godoc
// @Summary      Estado de la sesión local
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionView
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.JSON(h.view(h.sessions.Snapshot()))
}

// Entry godoc
// @Summary      Vista pública de login/registro
// @Description  Con sesión iniciada redirige al dashboard; si no, devuelve el estado de la sesión.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionView
// @Success      303
// @Router       /auth/login [get]
// @Router       /auth/register [get]
func (h *AuthHandler) Entry(c *fiber.Ctx) error {
	snap := h.sessions.Snapshot()
	if snap.IsAuthenticated() {
		return c.Redirect(ports.RouteDashboard, fiber.StatusSeeOther)
	}
	return c.JSON(h.view(snap))
}

func (h *AuthHandler) view(snap session.Snapshot) dto.SessionView {
	out := dto.SessionView{
		State:         snap.State.String(),
		Authenticated: snap.IsAuthenticated(),
		User:          snap.User,
		Capabilities:  h.perms.Snapshot(),
	}
	if h.routes != nil {
		out.Route = h.routes.Last()
	}
	return out
}

// authError en login/registro un 401 del backend son credenciales rechazadas,
// no una sesión vencida.
func authError(c *fiber.Ctx, err error) error {
	if gerr, ok := gateway.AsError(err); ok && gerr.Kind == gateway.KindAuthenticationExpired {
		msg := gerr.Message
		if msg == "" {
			msg = "credenciales inválidas"
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "AUTH_REJECTED", Message: msg})
	}
	return writeError(c, err)
}
