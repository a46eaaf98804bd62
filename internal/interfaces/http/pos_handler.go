package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/m1ndvortex/jewely-sub003/internal/application/dto"
	"github.com/m1ndvortex/jewely-sub003/internal/application/pos"
	"github.com/m1ndvortex/jewely-sub003/internal/domain"
)

// PosHandler handles checkout, hold/resume and receipts (protected).
type PosHandler struct {
	saleUC    *pos.CreateSaleUseCase
	receiptUC *pos.ReceiptUseCase
}

// NewPosHandler builds the handler.
func NewPosHandler(saleUC *pos.CreateSaleUseCase, receiptUC *pos.ReceiptUseCase) *PosHandler {
	return &PosHandler{saleUC: saleUC, receiptUC: receiptUC}
}

// Create commits a sale: locks stock rows, decrements and records payment.
// POST /api/pos/sales/create
func (h *PosHandler) Create(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	userID := GetUserID(c)
	if tenantID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "validation_error", Message: "invalid body"})
	}
	sale, err := h.saleUC.CreateSale(c.Context(), tenantID, userID, c.Get("Idempotency-Key"), in)
	if err != nil {
		return saleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// Hold parks the cart as a held sale without touching stock.
// POST /api/pos/sales/hold
func (h *PosHandler) Hold(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	userID := GetUserID(c)
	if tenantID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "validation_error", Message: "invalid body"})
	}
	sale, err := h.saleUC.HoldSale(c.Context(), tenantID, userID, in)
	if err != nil {
		return saleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// ListHeld returns the sales parked at a terminal.
// GET /api/pos/sales/held?terminal_id=...
func (h *PosHandler) ListHeld(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	terminalID := c.Query("terminal_id")
	if terminalID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "validation_error", Message: "terminal_id required"})
	}
	sales, err := h.saleUC.ListHeldSales(c.Context(), tenantID, terminalID)
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(sales)
}

// Complete turns a held sale into a completed one, decrementing stock at
// the prices snapshotted when the sale was held.
// POST /api/pos/sales/:id/complete
func (h *PosHandler) Complete(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	userID := GetUserID(c)
	if tenantID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	id := c.Params("id")
	var in dto.CompleteSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "validation_error", Message: "invalid body"})
	}
	sale, err := h.saleUC.CompleteSale(c.Context(), tenantID, userID, id, in)
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(sale)
}

// Void cancels a sale. Voiding a completed sale restores its stock.
// POST /api/pos/sales/:id/void
func (h *PosHandler) Void(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	userID := GetUserID(c)
	if tenantID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	if err := h.saleUC.VoidSale(c.Context(), tenantID, userID, c.Params("id")); err != nil {
		return saleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID fetches one sale with lines and payments.
// GET /api/pos/sales/:id
func (h *PosHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	sale, err := h.saleUC.GetSale(c.Context(), tenantID, c.Params("id"))
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(sale)
}

// Receipt renders the PDF receipt of a completed sale.
// GET /api/pos/sales/:id/receipt
func (h *PosHandler) Receipt(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	pdfBytes, err := h.receiptUC.GenerateReceipt(c.Context(), tenantID, c.Params("id"))
	if err != nil {
		return saleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdfBytes)
}

// saleError maps domain errors to the POS error codes.
func saleError(c *fiber.Ctx, err error) error {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.StockErrorResponse{
			Code:    "insufficient_stock",
			Message: "not enough stock for " + stockErr.SKU,
			Item: dto.StockShortage{
				ItemID:    stockErr.ItemID,
				SKU:       stockErr.SKU,
				Requested: stockErr.Requested,
				Available: stockErr.Available,
			},
		})
	}
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "insufficient_stock", Message: "insufficient stock"})
	case errors.Is(err, domain.ErrInvalidTerminal):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "invalid_terminal", Message: "unknown or inactive terminal"})
	case errors.Is(err, domain.ErrPaymentMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "payment_mismatch", Message: "payments do not add up to the sale total"})
	case errors.Is(err, domain.ErrDuplicateRequest):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "duplicate_request", Message: "request already processed"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "validation_error", Message: "invalid sale data"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "tenant_mismatch", Message: "resource belongs to another tenant"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "invalid_status", Message: "sale is not in a valid status for this operation"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "not_found", Message: "sale not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "internal", Message: err.Error()})
	}
}
