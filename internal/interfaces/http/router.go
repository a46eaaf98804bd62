package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/m1ndvortex/jewely-sub003/internal/application/admin"
	"github.com/m1ndvortex/jewely-sub003/internal/application/auth"
	"github.com/m1ndvortex/jewely-sub003/internal/application/crm"
	"github.com/m1ndvortex/jewely-sub003/internal/application/inventory"
	"github.com/m1ndvortex/jewely-sub003/internal/application/pos"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	SaleUC      *pos.CreateSaleUseCase
	ReceiptUC   *pos.ReceiptUseCase
	InventoryUC *inventory.UseCase
	CustomerUC  *crm.CustomerUseCase
	AdminUC     *admin.UseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Tenant provisioning (public; shops sign up here)
	adminHandler := NewAdminHandler(deps.AdminUC)
	api.Post("/tenants", adminHandler.CreateTenant)

	// Protected routes (Bearer token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/tenants/me", adminHandler.GetTenant)

	// POS (any authenticated role can ring up sales)
	posGroup := protected.Group("/pos/sales")
	posHandler := NewPosHandler(deps.SaleUC, deps.ReceiptUC)
	posGroup.Post("/create", posHandler.Create)
	posGroup.Post("/hold", posHandler.Hold)
	posGroup.Get("/held", posHandler.ListHeld)
	posGroup.Get("/:id", posHandler.GetByID)
	posGroup.Post("/:id/complete", posHandler.Complete)
	posGroup.Post("/:id/void", RequireRole(entity.RoleAdmin, entity.RoleManager), posHandler.Void)
	posGroup.Get("/:id/receipt", posHandler.Receipt)

	// Inventory (catalog edits and intake are manager work)
	items := protected.Group("/inventory/items")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	items.Post("/", RequireRole(entity.RoleAdmin, entity.RoleManager), inventoryHandler.Create)
	items.Get("/", inventoryHandler.List)
	items.Get("/low-stock", inventoryHandler.LowStock)
	items.Get("/:id", inventoryHandler.GetByID)
	items.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), inventoryHandler.Update)
	items.Post("/:id/receive", RequireRole(entity.RoleAdmin, entity.RoleManager), inventoryHandler.Receive)
	items.Get("/:id/movements", inventoryHandler.Movements)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Branches and terminals (admin only)
	branches := protected.Group("/branches", RequireRole(entity.RoleAdmin))
	branches.Post("/", adminHandler.CreateBranch)
	branches.Get("/", adminHandler.ListBranches)

	terminals := protected.Group("/terminals", RequireRole(entity.RoleAdmin))
	terminals.Post("/", adminHandler.CreateTerminal)
	terminals.Get("/", adminHandler.ListTerminals)
	terminals.Put("/:id/active", adminHandler.SetTerminalActive)
}
