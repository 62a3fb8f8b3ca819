// Package access deriva capacidades del rol del usuario en sesión.
// No guarda estado: cada consulta lee el usuario actual.
package access

import "github.com/jhoicas/invorya-dashboard/internal/domain/entity"

// Capability permiso derivado del rol.
type Capability int

const (
	ManageProducts Capability = iota
	ManageInventory
	ViewReports
	ManageUsers
)

func (c Capability) String() string {
	switch c {
	case ManageProducts:
		return "manage_products"
	case ManageInventory:
		return "manage_inventory"
	case ViewReports:
		return "view_reports"
	case ManageUsers:
		return "manage_users"
	default:
		return "unknown"
	}
}

// Capabilities todas las capacidades, en orden estable.
var Capabilities = []Capability{ManageProducts, ManageInventory, ViewReports, ManageUsers}

// Allowed indica si role concede c. Un rol desconocido no concede nada.
func Allowed(role entity.Role, c Capability) bool {
	switch role {
	case entity.RoleAdmin:
		return c == ManageProducts || c == ManageInventory || c == ViewReports || c == ManageUsers
	case entity.RoleManager:
		return c == ManageProducts || c == ManageInventory || c == ViewReports
	case entity.RoleUser:
		return c == ManageInventory
	case entity.RoleUnknown:
		return false
	default:
		return false
	}
}

// UserSource fuente del usuario actual; la implementa *session.Manager.
type UserSource interface {
	User() *entity.User
}

// Permissions predicados de capacidad sobre el usuario actual de src.
type Permissions struct {
	src UserSource
}

// New construye Permissions.
func New(src UserSource) *Permissions {
	return &Permissions{src: src}
}

func (p *Permissions) role() (entity.Role, bool) {
	u := p.src.User()
	if u == nil {
		return entity.RoleUnknown, false
	}
	return u.Role, true
}

// Can evalúa c contra el usuario actual. Sin usuario => false.
func (p *Permissions) Can(c Capability) bool {
	role, ok := p.role()
	return ok && Allowed(role, c)
}

func (p *Permissions) CanManageProducts() bool  { return p.Can(ManageProducts) }
func (p *Permissions) CanManageInventory() bool { return p.Can(ManageInventory) }
func (p *Permissions) CanViewReports() bool     { return p.Can(ViewReports) }
func (p *Permissions) CanManageUsers() bool     { return p.Can(ManageUsers) }

// HasRole compara el rol actual con role.
func (p *Permissions) HasRole(role entity.Role) bool {
	current, ok := p.role()
	return ok && current != entity.RoleUnknown && current == role
}

// HasAnyRole indica si el rol actual está en roles.
func (p *Permissions) HasAnyRole(roles ...entity.Role) bool {
	for _, r := range roles {
		if p.HasRole(r) {
			return true
		}
	}
	return false
}

func (p *Permissions) IsAdmin() bool   { return p.HasRole(entity.RoleAdmin) }
func (p *Permissions) IsManager() bool { return p.HasRole(entity.RoleManager) }
func (p *Permissions) IsUser() bool    { return p.HasRole(entity.RoleUser) }

// Snapshot mapa capacidad → permitido, para serializar en vistas.
func (p *Permissions) Snapshot() map[string]bool {
	out := make(map[string]bool, len(Capabilities))
	for _, c := range Capabilities {
		out[c.String()] = p.Can(c)
	}
	return out
}
