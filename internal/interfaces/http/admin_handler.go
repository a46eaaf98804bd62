package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/m1ndvortex/jewely-sub003/internal/application/admin"
	"github.com/m1ndvortex/jewely-sub003/internal/application/dto"
	"github.com/m1ndvortex/jewely-sub003/internal/domain"
)

// AdminHandler handles tenants, branches and terminals.
type AdminHandler struct {
	uc *admin.UseCase
}

// NewAdminHandler builds the handler.
func NewAdminHandler(uc *admin.UseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// CreateTenant provisions a new shop.
// POST /api/tenants
func (h *AdminHandler) CreateTenant(c *fiber.Ctx) error {
	var in dto.CreateTenantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "validation_error", Message: "invalid body"})
	}
	tenant, err := h.uc.CreateTenant(c.Context(), in)
	if err != nil {
		return adminError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tenant)
}

// GetTenant fetches the caller's shop.
// GET /api/tenants/me
func (h *AdminHandler) GetTenant(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	tenant, err := h.uc.GetTenant(c.Context(), tenantID)
	if err != nil {
		return adminError(c, err)
	}
	return c.JSON(tenant)
}

// CreateBranch opens a new store location.
// POST /api/branches
func (h *AdminHandler) CreateBranch(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CreateBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "validation_error", Message: "invalid body"})
	}
	branch, err := h.uc.CreateBranch(c.Context(), tenantID, in)
	if err != nil {
		return adminError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(branch)
}

// ListBranches lists the shop's locations.
// GET /api/branches
func (h *AdminHandler) ListBranches(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	branches, err := h.uc.ListBranches(c.Context(), tenantID)
	if err != nil {
		return adminError(c, err)
	}
	return c.JSON(branches)
}

// CreateTerminal registers a POS register inside a branch.
// POST /api/terminals
func (h *AdminHandler) CreateTerminal(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CreateTerminalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "validation_error", Message: "invalid body"})
	}
	terminal, err := h.uc.CreateTerminal(c.Context(), tenantID, in)
	if err != nil {
		return adminError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(terminal)
}

// ListTerminals lists the shop's registers.
// GET /api/terminals
func (h *AdminHandler) ListTerminals(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	terminals, err := h.uc.ListTerminals(c.Context(), tenantID)
	if err != nil {
		return adminError(c, err)
	}
	return c.JSON(terminals)
}

// SetTerminalActive enables or disables a register.
// PUT /api/terminals/:id/active
func (h *AdminHandler) SetTerminalActive(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "validation_error", Message: "invalid body"})
	}
	terminal, err := h.uc.SetTerminalActive(c.Context(), tenantID, c.Params("id"), in.Active)
	if err != nil {
		return adminError(c, err)
	}
	return c.JSON(terminal)
}

func adminError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "validation_error", Message: "invalid data"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "duplicate", Message: "already exists"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "tenant_mismatch", Message: "resource belongs to another tenant"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "not_found", Message: "resource not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "internal", Message: err.Error()})
	}
}
