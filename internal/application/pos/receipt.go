package pos

import (
	"context"

	"github.com/m1ndvortex/jewely-sub003/internal/domain"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/entity"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/repository"
)

// ReceiptData is everything the renderer needs for one receipt.
type ReceiptData struct {
	Sale         *entity.Sale
	Items        []*entity.SaleItem
	Payments     []*entity.SalePayment
	ShopName     string
	BranchName   string
	CustomerName string
	Footer       string
}

// ReceiptGenerator renders a receipt to PDF bytes.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, data *ReceiptData) ([]byte, error)
}

// ReceiptUseCase produces the printable receipt for a completed sale.
type ReceiptUseCase struct {
	saleRepo     repository.SaleRepository
	tenantRepo   repository.TenantRepository
	branchRepo   repository.BranchRepository
	customerRepo repository.CustomerRepository
	generator    ReceiptGenerator
	footer       string
}

// NewReceiptUseCase builds the use case.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	tenantRepo repository.TenantRepository,
	branchRepo repository.BranchRepository,
	customerRepo repository.CustomerRepository,
	generator ReceiptGenerator,
	footer string,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:     saleRepo,
		tenantRepo:   tenantRepo,
		branchRepo:   branchRepo,
		customerRepo: customerRepo,
		generator:    generator,
		footer:       footer,
	}
}

// GenerateReceipt renders the PDF receipt for a completed sale.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, tenantID, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	if sale.Status != entity.SaleStatusCompleted {
		return nil, domain.ErrConflict
	}
	items, err := uc.saleRepo.GetItemsBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	payments, err := uc.saleRepo.GetPaymentsBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	data := &ReceiptData{
		Sale:     sale,
		Items:    items,
		Payments: payments,
		Footer:   uc.footer,
	}
	if tenant, err := uc.tenantRepo.GetByID(ctx, tenantID); err == nil && tenant != nil {
		data.ShopName = tenant.Name
	}
	if branch, err := uc.branchRepo.GetByID(ctx, sale.BranchID); err == nil && branch != nil {
		data.BranchName = branch.Name
	}
	if sale.CustomerID != "" {
		if customer, err := uc.customerRepo.GetByID(ctx, sale.CustomerID); err == nil && customer != nil {
			data.CustomerName = customer.Name
		}
	}
	return uc.generator.GenerateReceiptPDF(ctx, data)
}
