package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/m1ndvortex/jewely-sub003/internal/application/dto"
	"github.com/m1ndvortex/jewely-sub003/internal/application/inventory"
	"github.com/m1ndvortex/jewely-sub003/internal/domain"
)

// InventoryHandler handles the jewelry catalog and stock intake (protected).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create registers a new item with zero stock.
// POST /api/inventory/items
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "validation_error", Message: "invalid body"})
	}
	item, err := h.uc.CreateItem(c.Context(), tenantID, in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "sku_exists", Message: "sku already registered"})
		}
		return inventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// GetByID fetches one item.
// GET /api/inventory/items/:id
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	item, err := h.uc.GetItem(c.Context(), tenantID, c.Params("id"))
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(item)
}

// List pages through the catalog.
// GET /api/inventory/items
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "validation_error", Message: "invalid query"})
	}
	items, err := h.uc.ListItems(c.Context(), tenantID, page)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(items)
}

// Update edits catalog fields. Quantity and cost never change here.
// PUT /api/inventory/items/:id
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "validation_error", Message: "invalid body"})
	}
	item, err := h.uc.UpdateItem(c.Context(), tenantID, c.Params("id"), in)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(item)
}

// Receive books incoming stock and recalculates the weighted-average cost.
// POST /api/inventory/items/:id/receive
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	userID := GetUserID(c)
	if tenantID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "validation_error", Message: "invalid body"})
	}
	item, err := h.uc.ReceiveStock(c.Context(), tenantID, userID, c.Params("id"), in)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(item)
}

// LowStock lists items at or below their minimum quantity.
// GET /api/inventory/items/low-stock
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	items, err := h.uc.ListLowStock(c.Context(), tenantID)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(items)
}

// Movements lists the audit trail of one item.
// GET /api/inventory/items/:id/movements
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "validation_error", Message: "invalid query"})
	}
	movements, err := h.uc.ListMovements(c.Context(), tenantID, c.Params("id"), page)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(movements)
}

func inventoryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "validation_error", Message: "invalid item data"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "tenant_mismatch", Message: "resource belongs to another tenant"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "not_found", Message: "item not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "internal", Message: err.Error()})
	}
}
