package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m1ndvortex/jewely-sub003/internal/application/dto"
	"github.com/m1ndvortex/jewely-sub003/internal/domain"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/entity"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/repository"
)

// UseCase tenant/branch/terminal administration.
type UseCase struct {
	tenantRepo   repository.TenantRepository
	branchRepo   repository.BranchRepository
	terminalRepo repository.TerminalRepository
}

// NewUseCase builds the admin use case.
func NewUseCase(
	tenantRepo repository.TenantRepository,
	branchRepo repository.BranchRepository,
	terminalRepo repository.TerminalRepository,
) *UseCase {
	return &UseCase{tenantRepo: tenantRepo, branchRepo: branchRepo, terminalRepo: terminalRepo}
}

// CreateTenant provisions a new shop.
func (uc *UseCase) CreateTenant(ctx context.Context, in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	tenant := &entity.Tenant{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// GetTenant returns a tenant by ID.
func (uc *UseCase) GetTenant(ctx context.Context, id string) (*dto.TenantResponse, error) {
	tenant, err := uc.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	return toTenantResponse(tenant), nil
}

// CreateBranch adds a store location to the tenant.
func (uc *UseCase) CreateBranch(ctx context.Context, tenantID string, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// ListBranches lists the tenant's store locations.
func (uc *UseCase) ListBranches(ctx context.Context, tenantID string) ([]*dto.BranchResponse, error) {
	branches, err := uc.branchRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BranchResponse, 0, len(branches))
	for _, b := range branches {
		out = append(out, toBranchResponse(b))
	}
	return out, nil
}

// CreateTerminal registers a POS terminal in a branch.
func (uc *UseCase) CreateTerminal(ctx context.Context, tenantID string, in dto.CreateTerminalRequest) (*dto.TerminalResponse, error) {
	if in.Name == "" || in.BranchID == "" {
		return nil, domain.ErrInvalidInput
	}
	branch, err := uc.branchRepo.GetByID(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil || branch.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	terminal := &entity.Terminal{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		BranchID:  in.BranchID,
		Name:      in.Name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.terminalRepo.Create(ctx, terminal); err != nil {
		return nil, err
	}
	return toTerminalResponse(terminal), nil
}

// ListTerminals lists the tenant's terminals.
func (uc *UseCase) ListTerminals(ctx context.Context, tenantID string) ([]*dto.TerminalResponse, error) {
	terminals, err := uc.terminalRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TerminalResponse, 0, len(terminals))
	for _, t := range terminals {
		out = append(out, toTerminalResponse(t))
	}
	return out, nil
}

// SetTerminalActive enables or disables a terminal. Disabled terminals are
// rejected at sale time with invalid_terminal.
func (uc *UseCase) SetTerminalActive(ctx context.Context, tenantID, id string, active bool) (*dto.TerminalResponse, error) {
	terminal, err := uc.terminalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if terminal == nil {
		return nil, domain.ErrNotFound
	}
	if terminal.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	terminal.IsActive = active
	terminal.UpdatedAt = time.Now()
	if err := uc.terminalRepo.Update(ctx, terminal); err != nil {
		return nil, err
	}
	return toTerminalResponse(terminal), nil
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID: t.ID, Name: t.Name, TaxID: t.TaxID, Address: t.Address,
		Phone: t.Phone, Email: t.Email, Status: t.Status,
	}
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	return &dto.BranchResponse{ID: b.ID, TenantID: b.TenantID, Name: b.Name, Address: b.Address, Phone: b.Phone}
}

func toTerminalResponse(t *entity.Terminal) *dto.TerminalResponse {
	return &dto.TerminalResponse{ID: t.ID, TenantID: t.TenantID, BranchID: t.BranchID, Name: t.Name, IsActive: t.IsActive}
}
