package ledger

import (
	"time"

	"github.com/cobranza/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Client DTOs
// =============================================================================

// CreateClientRequest represents a request to register a new client
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	TaxID   string `json:"tax_id" binding:"max=50"`
	Address string `json:"address" binding:"max=500"`
	Email   string `json:"email" binding:"omitempty,email,max=200"`
	Phone   string `json:"phone" binding:"max=50"`
	Country string `json:"country" binding:"max=100"`
	City    string `json:"city" binding:"max=100"`
}

// UpdateClientRequest represents a request to update a client's contact data
type UpdateClientRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	TaxID   *string `json:"tax_id" binding:"omitempty,max=50"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	Email   *string `json:"email" binding:"omitempty,email,max=200"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Country *string `json:"country" binding:"omitempty,max=100"`
	City    *string `json:"city" binding:"omitempty,max=100"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	TaxID        string          `json:"tax_id"`
	Address      string          `json:"address"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Country      string          `json:"country"`
	City         string          `json:"city"`
	SourceFileID *uuid.UUID      `json:"source_file_id,omitempty"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// ToClientResponse converts a domain client to its response representation
func ToClientResponse(c *ledger.Client) ClientResponse {
	return ClientResponse{
		ID:           c.ID,
		Name:         c.Name,
		TaxID:        c.TaxID,
		Address:      c.Address,
		Email:        c.Email,
		Phone:        c.Phone,
		Country:      c.Country,
		City:         c.City,
		SourceFileID: c.SourceFileID,
		Balance:      c.Balance,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		Version:      c.Version,
	}
}

// ClientListFilter represents filter options for client listings
type ClientListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// =============================================================================
// Invoice DTOs
// =============================================================================

// CreateInvoiceRequest represents a request to create a new invoice
type CreateInvoiceRequest struct {
	Number    string          `json:"number" binding:"required,min=1,max=50"`
	ClientID  uuid.UUID       `json:"client_id" binding:"required"`
	IssueDate time.Time       `json:"issue_date" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Currency  string          `json:"currency" binding:"omitempty,len=3"`
	Kind      string          `json:"kind" binding:"required,oneof=CHARGE PAYMENT"`
	CreatedBy string          `json:"-"` // Set from request context, not from body
}

// UpdateInvoiceRequest represents a request to update an invoice. Amount and
// kind are fixed at creation and cannot be changed here.
type UpdateInvoiceRequest struct {
	Number    *string    `json:"number" binding:"omitempty,min=1,max=50"`
	ClientID  *uuid.UUID `json:"client_id"`
	IssueDate *time.Time `json:"issue_date"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID        uuid.UUID       `json:"id"`
	Number    string          `json:"number"`
	ClientID  uuid.UUID       `json:"client_id"`
	IssueDate time.Time       `json:"issue_date"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Kind      string          `json:"kind"`
	Status    string          `json:"status"`
	Remaining decimal.Decimal `json:"remaining"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Version   int             `json:"version"`
}

// ToInvoiceResponse converts a domain invoice to its response representation
func ToInvoiceResponse(inv *ledger.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:        inv.ID,
		Number:    inv.Number,
		ClientID:  inv.ClientID,
		IssueDate: inv.IssueDate,
		Amount:    inv.Amount,
		Currency:  inv.Currency.String(),
		Kind:      inv.Kind.String(),
		Status:    inv.Status.String(),
		Remaining: inv.Remaining,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
		Version:   inv.Version,
	}
}

// InvoiceListFilter represents filter options for invoice listings
type InvoiceListFilter struct {
	ClientID *uuid.UUID `form:"client_id"`
	Kind     string     `form:"kind" binding:"omitempty,oneof=CHARGE PAYMENT"`
	Status   string     `form:"status" binding:"omitempty,oneof=OPEN CLOSED"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// =============================================================================
// Reconciliation DTOs
// =============================================================================

// ReconciliationResponse represents a reconciliation record in API responses
type ReconciliationResponse struct {
	ID            uuid.UUID       `json:"id"`
	PaymentID     uuid.UUID       `json:"payment_id"`
	ChargeID      uuid.UUID       `json:"charge_id"`
	AppliedAmount decimal.Decimal `json:"applied_amount"`
	AppliedBy     string          `json:"applied_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToReconciliationResponse converts a domain reconciliation record
func ToReconciliationResponse(rec *ledger.Reconciliation) ReconciliationResponse {
	return ReconciliationResponse{
		ID:            rec.ID,
		PaymentID:     rec.PaymentID,
		ChargeID:      rec.ChargeID,
		AppliedAmount: rec.AppliedAmount,
		AppliedBy:     rec.AppliedBy,
		CreatedAt:     rec.CreatedAt,
	}
}

// ReconciliationListFilter represents filter options for reconciliation listings
type ReconciliationListFilter struct {
	InvoiceID *uuid.UUID `form:"invoice_id"`
	ClientID  *uuid.UUID `form:"client_id"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ReconcileResult summarizes one matching pass over a client's open invoices
type ReconcileResult struct {
	ClientID        uuid.UUID                `json:"client_id"`
	Reconciliations []ReconciliationResponse `json:"reconciliations"`
	InvoicesTouched int                      `json:"invoices_touched"`
	TotalApplied    decimal.Decimal          `json:"total_applied"`
}

// =============================================================================
// Receipt DTOs
// =============================================================================

// CreateReceiptRequest represents a request to record a receipt against an invoice
type CreateReceiptRequest struct {
	InvoiceID uuid.UUID       `json:"invoice_id" binding:"required"`
	Date      time.Time       `json:"date" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required,max=50"`
}

// ReceiptResponse represents a receipt in API responses
type ReceiptResponse struct {
	ID          uuid.UUID       `json:"id"`
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	VoucherKey  string          `json:"voucher_key,omitempty"`
	VoucherURL  string          `json:"voucher_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToReceiptResponse converts a domain receipt to its response representation
func ToReceiptResponse(r *ledger.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ID:         r.ID,
		InvoiceID:  r.InvoiceID,
		Date:       r.Date,
		Amount:     r.Amount,
		Method:     r.Method,
		VoucherKey: r.VoucherKey,
		CreatedAt:  r.CreatedAt,
	}
}

// =============================================================================
// Source file DTOs
// =============================================================================

// CreateSourceFileRequest represents a request to register an import file
type CreateSourceFileRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	ContentType string `json:"content_type" binding:"max=100"`
	UploadedBy  string `json:"-"` // Set from request context, not from body
}

// SourceFileResponse represents an import file in API responses
type SourceFileResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	LoadedAt    time.Time `json:"loaded_at"`
	UploadedBy  string    `json:"uploaded_by"`
	ObjectKey   string    `json:"object_key"`
	UploadURL   string    `json:"upload_url,omitempty"`
	DownloadURL string    `json:"download_url,omitempty"`
}

// ToSourceFileResponse converts a domain source file to its response representation
func ToSourceFileResponse(f *ledger.SourceFile) SourceFileResponse {
	return SourceFileResponse{
		ID:         f.ID,
		Name:       f.Name,
		LoadedAt:   f.LoadedAt,
		UploadedBy: f.UploadedBy,
		ObjectKey:  f.ObjectKey,
	}
}

// =============================================================================
// Report DTOs
// =============================================================================

// AgingReportFilter carries the configurable bucket boundaries, expressed in
// minutes since invoice creation. Boundaries are presentation configuration
// and never stored.
type AgingReportFilter struct {
	Band1 int `form:"b1" binding:"omitempty,min=1"`
	Band2 int `form:"b2" binding:"omitempty,min=1"`
	Band3 int `form:"b3" binding:"omitempty,min=1"`
}

// AgingBucketCounts holds per-band open invoice counts for one client
type AgingBucketCounts struct {
	ClientID   uuid.UUID `json:"client_id"`
	ClientName string    `json:"client_name"`
	OnTime     int       `json:"on_time"`
	Pending    int       `json:"pending"`
	AtRisk     int       `json:"at_risk"`
}

// AgingReport is the aging buckets read model: currently OPEN invoices
// bucketed by elapsed time since creation, counted per client
type AgingReport struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Band1       int                 `json:"band1_minutes"`
	Band2       int                 `json:"band2_minutes"`
	Band3       int                 `json:"band3_minutes"`
	Clients     []AgingBucketCounts `json:"clients"`
}
