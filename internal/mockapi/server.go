// Package mockapi es un backend de inventario en memoria con la misma forma de
// respuesta que el real ({success, data, message} / {success:false, error, message}).
// Se usa en los tests de integración y en cmd/mockapi para desarrollo local.
package mockapi

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/invorya-dashboard/internal/domain/entity"
	pkgjwt "github.com/jhoicas/invorya-dashboard/pkg/jwt"
	"github.com/jhoicas/invorya-dashboard/pkg/logger"
)

const (
	localClaims = "claims"

	defaultLowStockThreshold = 10
	defaultExpiringDays      = 30
	defaultPageLimit         = 20
)

// Options configuración del backend simulado.
type Options struct {
	Secret     string        // firma de los JWT; vacío = "mockapi-secret"
	Issuer     string        // vacío = "invorya-mockapi"
	AccessTTL  time.Duration // 0 = 7 días
	RefreshTTL time.Duration // 0 = 30 días
	BcryptCost int           // 0 = bcrypt.DefaultCost; en tests usar bcrypt.MinCost
	Logger     *logger.Logger
}

type account struct {
	user entity.User
	hash []byte
}

type fault struct {
	status  int
	message string
}

// Server estado del backend simulado. Seguro para uso concurrente.
type Server struct {
	opts Options
	log  *logger.Logger
	now  func() time.Time

	mu       sync.Mutex
	accounts map[string]*account // por email
	products map[string]*entity.Product
	units    map[string]*entity.ProductUnit
	batches  map[string]*entity.Batch
	stock    map[string]*entity.Inventory // por batch ID
	logs     []entity.InventoryLog
	// issued tokens de acceso vigentes; logout y RevokeAll los retiran.
	issued map[string]bool
	faults map[string]fault
}

// New construye un backend vacío. Ver Seed para datos de demo.
func New(opts Options) *Server {
	if opts.Secret == "" {
		opts.Secret = "mockapi-secret"
	}
	if opts.Issuer == "" {
		opts.Issuer = "invorya-mockapi"
	}
	if opts.AccessTTL <= 0 {
		opts.AccessTTL = 7 * 24 * time.Hour
	}
	if opts.RefreshTTL <= 0 {
		opts.RefreshTTL = 30 * 24 * time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		opts:     opts,
		log:      log.Component("mockapi"),
		now:      time.Now,
		accounts: make(map[string]*account),
		products: make(map[string]*entity.Product),
		units:    make(map[string]*entity.ProductUnit),
		batches:  make(map[string]*entity.Batch),
		stock:    make(map[string]*entity.Inventory),
		issued:   make(map[string]bool),
		faults:   make(map[string]fault),
	}
}

// App construye la aplicación Fiber con todas las rutas bajo /api.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	s.Register(app)
	return app
}

// Register monta las rutas bajo /api en app.
func (s *Server) Register(app *fiber.App) {
	api := app.Group("/api", s.injectFaults)

	auth := api.Group("/auth")
	auth.Post("/register", s.register)
	auth.Post("/login", s.login)
	auth.Post("/refresh", s.refresh)
	auth.Post("/logout", s.authenticate, s.logout)
	auth.Get("/me", s.authenticate, s.me)

	protected := api.Group("/", s.authenticate)

	products := protected.Group("/products")
	products.Get("/", s.listProducts)
	products.Get("/search", s.searchProducts)
	products.Get("/:id", s.getProduct)
	products.Post("/", requireRole(entity.RoleAdmin, entity.RoleManager), s.createProduct)
	products.Patch("/:id", requireRole(entity.RoleAdmin, entity.RoleManager), s.updateProduct)
	products.Delete("/:id", requireRole(entity.RoleAdmin, entity.RoleManager), s.deleteProduct)

	units := protected.Group("/units")
	units.Get("/", s.listUnits)
	units.Post("/", requireRole(entity.RoleAdmin, entity.RoleManager), s.createUnit)
	units.Put("/:id", requireRole(entity.RoleAdmin, entity.RoleManager), s.updateUnit)
	units.Delete("/:id", requireRole(entity.RoleAdmin, entity.RoleManager), s.deleteUnit)

	inv := protected.Group("/inventory")
	inv.Get("/", s.listInventory)
	inv.Get("/product/:id", s.inventoryByProduct)
	inv.Get("/logs", s.inventoryLogs)
	inv.Post("/add", s.addStock)
	inv.Post("/reduce", s.reduceStock)

	batches := protected.Group("/batches")
	batches.Post("/", s.createBatch)
	batches.Get("/:id", s.getBatch)
	batches.Put("/:id", s.updateBatch)

	reports := protected.Group("/reports", requireRole(entity.RoleAdmin, entity.RoleManager))
	reports.Get("/low-stock", s.lowStock)
	reports.Get("/expiring-batches", s.expiringBatches)
	reports.Get("/inventory-value", s.inventoryValue)
	reports.Get("/dashboard-stats", s.dashboardStats)
}

// FailNext hace que la próxima petición a path (ej. "/api/reports/low-stock")
// responda status con message, sin tocar el estado.
func (s *Server) FailNext(path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[path] = fault{status: status, message: message}
}

// RevokeAll invalida todos los tokens de acceso emitidos (simula expiración).
func (s *Server) RevokeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued = make(map[string]bool)
}

func (s *Server) injectFaults(c *fiber.Ctx) error {
	s.mu.Lock()
	f, ok := s.faults[c.Path()]
	if ok {
		delete(s.faults, c.Path())
	}
	s.mu.Unlock()
	if !ok {
		return c.Next()
	}
	if f.status >= 500 {
		return c.Status(f.status).SendString(f.message)
	}
	return fail(c, f.status, "injected", f.message)
}

// authenticate valida el Bearer token y carga los claims en c.Locals.
func (s *Server) authenticate(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return fail(c, fiber.StatusUnauthorized, "unauthorized", "missing or malformed token")
	}
	token := strings.TrimSpace(parts[1])
	claims, err := pkgjwt.Parse(s.opts.Secret, token, pkgjwt.KindAccess)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "unauthorized", "invalid or expired token")
	}
	s.mu.Lock()
	live := s.issued[token]
	s.mu.Unlock()
	if !live {
		return fail(c, fiber.StatusUnauthorized, "unauthorized", "token revoked")
	}
	c.Locals(localClaims, claims)
	return c.Next()
}

func requireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := claimsOf(c)
		for _, r := range roles {
			if claims != nil && entity.ParseRole(claims.Role) == r {
				return c.Next()
			}
		}
		return fail(c, fiber.StatusForbidden, "forbidden", "insufficient permissions")
	}
}

func claimsOf(c *fiber.Ctx) *pkgjwt.Claims {
	claims, _ := c.Locals(localClaims).(*pkgjwt.Claims)
	return claims
}

func tenantOf(c *fiber.Ctx) string {
	if claims := claimsOf(c); claims != nil {
		return claims.TenantID
	}
	return ""
}

// ── respuestas ────────────────────────────────────────────────────────────────

func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{"success": true, "data": data})
}

func okMessage(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": true, "message": message})
}

func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": code, "message": message})
}

type page struct {
	number, limit int
}

func pageOf(c *fiber.Ctx) page {
	p := page{number: c.QueryInt("page", 1), limit: c.QueryInt("limit", defaultPageLimit)}
	if p.number < 1 {
		p.number = 1
	}
	if p.limit < 1 || p.limit > 100 {
		p.limit = defaultPageLimit
	}
	return p
}

func paginated[T any](c *fiber.Ctx, items []T, p page) error {
	total := len(items)
	start := (p.number - 1) * p.limit
	if start > total {
		start = total
	}
	end := start + p.limit
	if end > total {
		end = total
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    items[start:end],
		"pagination": fiber.Map{
			"page":        p.number,
			"limit":       p.limit,
			"total":       total,
			"total_pages": (total + p.limit - 1) / p.limit,
		},
	})
}
