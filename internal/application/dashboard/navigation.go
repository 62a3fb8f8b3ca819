package dashboard

import (
	"github.com/jhoicas/invorya-dashboard/internal/application/access"
	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
)

type navEntry struct {
	item dto.NavigationItem
	// requires nil = visible para cualquier usuario autenticado.
	requires *access.Capability
}

func capability(c access.Capability) *access.Capability { return &c }

var menu = []navEntry{
	{item: dto.NavigationItem{Name: "Dashboard", Href: "/dashboard"}},
	{item: dto.NavigationItem{Name: "Products", Href: "/products"}, requires: capability(access.ManageProducts)},
	{item: dto.NavigationItem{Name: "Inventory", Href: "/inventory"}, requires: capability(access.ManageInventory)},
	{item: dto.NavigationItem{Name: "Batches", Href: "/batches"}, requires: capability(access.ManageInventory)},
	{item: dto.NavigationItem{Name: "Reports", Href: "/reports"}, requires: capability(access.ViewReports)},
	{item: dto.NavigationItem{Name: "Low Stock", Href: "/reports/low-stock", Badge: "Alert"}, requires: capability(access.ViewReports)},
	{item: dto.NavigationItem{Name: "Logs", Href: "/logs"}, requires: capability(access.ViewReports)},
	{item: dto.NavigationItem{Name: "Users", Href: "/users"}, requires: capability(access.ManageUsers)},
	{item: dto.NavigationItem{Name: "Settings", Href: "/settings"}},
}

// Navigation menú lateral filtrado por las capacidades del usuario actual.
func Navigation(perms *access.Permissions) []dto.NavigationItem {
	out := make([]dto.NavigationItem, 0, len(menu))
	for _, e := range menu {
		if e.requires != nil && !perms.Can(*e.requires) {
			continue
		}
		out = append(out, e.item)
	}
	return out
}
