package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-dashboard/internal/application/access"
	"github.com/jhoicas/invorya-dashboard/internal/application/dashboard"
	"github.com/jhoicas/invorya-dashboard/internal/application/session"
	"github.com/jhoicas/invorya-dashboard/internal/infrastructure/api"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions  *session.Manager
	Perms     *access.Permissions
	API       *api.Client
	Dashboard *dashboard.UseCase
	Inbox     notificationDrainer
	Routes    routeSource // opcional
}

// Router registra las rutas del dashboard.
func Router(app *fiber.App, deps RouterDeps) {
	// Auth (público)
	authHandler := NewAuthHandler(deps.Sessions, deps.Perms, deps.Routes)
	authGroup := app.Group("/auth")
	authGroup.Get("/session", authHandler.Session)
	authGroup.Get("/login", authHandler.Entry)
	authGroup.Get("/register", authHandler.Entry)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/logout", authHandler.Logout)

	app.Get("/notifications", NewNotificationHandler(deps.Inbox).Drain)

	// Protect va solo en los grupos protegidos; el destino del redirect (/auth/login) queda fuera.
	protect := Protect(deps.Sessions)

	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	app.Get("/dashboard", protect, dashboardHandler.Overview)

	// Products + units (ManageProducts)
	productHandler := NewProductHandler(deps.API)
	products := app.Group("/products", protect, RequireCapability(deps.Perms, access.ManageProducts))
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/search", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	units := app.Group("/units", protect, RequireCapability(deps.Perms, access.ManageProducts))
	units.Get("/", productHandler.ListUnits)
	units.Post("/", productHandler.CreateUnit)
	units.Put("/:id", productHandler.UpdateUnit)
	units.Delete("/:id", productHandler.DeleteUnit)

	// Inventory + batches (ManageInventory)
	inventoryHandler := NewInventoryHandler(deps.API)
	inv := app.Group("/inventory", protect, RequireCapability(deps.Perms, access.ManageInventory))
	inv.Get("/", inventoryHandler.List)
	inv.Get("/product/:id", inventoryHandler.GetByProduct)
	inv.Get("/logs", inventoryHandler.Logs)
	inv.Post("/add", inventoryHandler.Add)
	inv.Post("/reduce", inventoryHandler.Reduce)

	batches := app.Group("/batches", protect, RequireCapability(deps.Perms, access.ManageInventory))
	batches.Post("/", inventoryHandler.CreateBatch)
	batches.Get("/:id", inventoryHandler.GetBatch)
	batches.Put("/:id", inventoryHandler.UpdateBatch)

	// Reports (ViewReports)
	reportHandler := NewReportHandler(deps.API)
	reports := app.Group("/reports", protect, RequireCapability(deps.Perms, access.ViewReports))
	reports.Get("/low-stock.pdf", dashboardHandler.LowStockPDF)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/expiring-batches", reportHandler.ExpiringBatches)
	reports.Get("/inventory-value", reportHandler.InventoryValue)
}
