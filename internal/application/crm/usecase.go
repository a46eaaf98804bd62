package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m1ndvortex/jewely-sub003/internal/application/dto"
	"github.com/m1ndvortex/jewely-sub003/internal/domain"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/entity"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/repository"
)

// CustomerUseCase CRUD for shop customers.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerUseCase builds the use case.
func NewCustomerUseCase(customerRepo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo}
}

// Create registers a customer for the tenant.
func (uc *CustomerUseCase) Create(ctx context.Context, tenantID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID returns a customer, tenant-checked.
func (uc *CustomerUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return toCustomerResponse(customer), nil
}

// List pages through the tenant's customers.
func (uc *CustomerUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	customers, err := uc.customerRepo.List(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Update edits customer contact fields.
func (uc *CustomerUseCase) Update(ctx context.Context, tenantID, id string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	if in.Name != "" {
		customer.Name = in.Name
	}
	if in.TaxID != "" {
		customer.TaxID = in.TaxID
	}
	if in.Email != "" {
		customer.Email = in.Email
	}
	if in.Phone != "" {
		customer.Phone = in.Phone
	}
	if in.Notes != "" {
		customer.Notes = in.Notes
	}
	customer.UpdatedAt = time.Now()
	if err := uc.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:       c.ID,
		TenantID: c.TenantID,
		Name:     c.Name,
		TaxID:    c.TaxID,
		Email:    c.Email,
		Phone:    c.Phone,
		Notes:    c.Notes,
	}
}
