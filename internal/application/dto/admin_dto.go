package dto

// CreateTenantRequest body for POST /api/tenants.
type CreateTenantRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// TenantResponse tenant in responses.
type TenantResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Status  string `json:"status"`
}

// CreateBranchRequest body for POST /api/branches.
type CreateBranchRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// BranchResponse branch in responses.
type BranchResponse struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// CreateTerminalRequest body for POST /api/terminals.
type CreateTerminalRequest struct {
	BranchID string `json:"branch_id"`
	Name     string `json:"name"`
}

// TerminalResponse terminal in responses.
type TerminalResponse struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	BranchID string `json:"branch_id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}
