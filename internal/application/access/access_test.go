package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/invorya-dashboard/internal/application/access"
	"github.com/jhoicas/invorya-dashboard/internal/domain/entity"
)

type fixedUser struct{ u *entity.User }

func (f *fixedUser) User() *entity.User { return f.u }

func TestPermissions_PorRol(t *testing.T) {
	cases := []struct {
		role      entity.Role
		products  bool
		inventory bool
		reports   bool
		users     bool
	}{
		{entity.RoleAdmin, true, true, true, true},
		{entity.RoleManager, true, true, true, false},
		{entity.RoleUser, false, true, false, false},
		{entity.RoleUnknown, false, false, false, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			p := access.New(&fixedUser{u: &entity.User{ID: "u1", Role: tc.role}})
			assert.Equal(t, tc.products, p.CanManageProducts())
			assert.Equal(t, tc.inventory, p.CanManageInventory())
			assert.Equal(t, tc.reports, p.CanViewReports())
			assert.Equal(t, tc.users, p.CanManageUsers())
		})
	}
}

func TestPermissions_SinUsuarioTodoFalso(t *testing.T) {
	p := access.New(&fixedUser{})
	for _, c := range access.Capabilities {
		assert.False(t, p.Can(c), c.String())
	}
	assert.False(t, p.IsAdmin())
	assert.False(t, p.HasAnyRole(entity.RoleAdmin, entity.RoleManager, entity.RoleUser))
}

func TestPermissions_ReflejaUsuarioActualSinCache(t *testing.T) {
	src := &fixedUser{u: &entity.User{Role: entity.RoleUser}}
	p := access.New(src)
	assert.False(t, p.CanViewReports())

	src.u = &entity.User{Role: entity.RoleAdmin}
	assert.True(t, p.CanViewReports(), "el cambio de usuario se refleja en la siguiente consulta")

	src.u = nil
	assert.False(t, p.CanManageInventory())
}

func TestPermissions_Roles(t *testing.T) {
	p := access.New(&fixedUser{u: &entity.User{Role: entity.RoleManager}})
	assert.True(t, p.IsManager())
	assert.False(t, p.IsAdmin())
	assert.False(t, p.IsUser())
	assert.True(t, p.HasAnyRole(entity.RoleAdmin, entity.RoleManager))
	assert.Equal(t, map[string]bool{
		"manage_products":  true,
		"manage_inventory": true,
		"view_reports":     true,
		"manage_users":     false,
	}, p.Snapshot())
}

func TestParseRole_Desconocido(t *testing.T) {
	assert.Equal(t, entity.RoleUnknown, entity.ParseRole("superadmin"))
	assert.Equal(t, entity.RoleAdmin, entity.ParseRole("admin"))
	assert.False(t, entity.Role("Admin").Valid())
}
