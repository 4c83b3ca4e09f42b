package ledger

import (
	"context"
	"time"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceFilter defines filtering options for invoice queries
type InvoiceFilter struct {
	ClientID *uuid.UUID
	Kind     *InvoiceKind
	Status   *InvoiceStatus
	Page     int
	PageSize int
}

// ReconciliationFilter defines filtering options for reconciliation queries
type ReconciliationFilter struct {
	InvoiceID *uuid.UUID
	ClientID  *uuid.UUID
	Page      int
	PageSize  int
}

// BalanceTotal is one client's balance re-derived from its invoice deltas
type BalanceTotal struct {
	ClientID uuid.UUID
	Balance  decimal.Decimal
}

// OpenInvoiceRef is a projection of an OPEN invoice joined with its client,
// used by the aging report
type OpenInvoiceRef struct {
	InvoiceID  uuid.UUID
	ClientID   uuid.UUID
	ClientName string
	CreatedAt  time.Time
}

// ClientRepository defines the persistence interface for clients
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	// FindByIDForUpdate locks the client row for the rest of the enclosing
	// transaction. It must only be called inside a TransactionManager scope.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Client, error)
	FindByTaxID(ctx context.Context, taxID string) (*Client, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, client *Client) error
	// Delete removes the client and, by cascade, all of its invoices
	Delete(ctx context.Context, id uuid.UUID) error
	// AddToBalance applies a signed delta as a store-level atomic increment,
	// never a read-modify-write
	AddToBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
	// ZeroBalances resets every client balance to zero (repair pass, step 1)
	ZeroBalances(ctx context.Context) error
	// SetBalance writes an absolute balance (repair pass, step 2)
	SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}

// InvoiceRepository defines the persistence interface for invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, number string) (*Invoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)
	Count(ctx context.Context, filter InvoiceFilter) (int64, error)
	Save(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	// FindOpenForUpdate loads a client's OPEN invoices of one kind ordered by
	// (created_at, id) ascending, locking each row for the rest of the
	// enclosing transaction. It must only be called inside a
	// TransactionManager scope.
	FindOpenForUpdate(ctx context.Context, clientID uuid.UUID, kind InvoiceKind) ([]*Invoice, error)
	// BalanceTotals re-derives every client's balance from invoice deltas
	// (+amount for payments, -amount for charges)
	BalanceTotals(ctx context.Context) ([]BalanceTotal, error)
	// FindOpenWithClient lists all OPEN invoices joined with their client,
	// for the aging report
	FindOpenWithClient(ctx context.Context) ([]OpenInvoiceRef, error)
}

// MatchStateWriter is the raw write path used only by the reconciliation
// engine. Writes go straight to the store columns without passing through the
// invoice lifecycle, so a matching pass can never re-trigger itself.
type MatchStateWriter interface {
	ApplyMatchState(ctx context.Context, invoiceID uuid.UUID, remaining decimal.Decimal, status InvoiceStatus) error
}

// ReconciliationRepository defines the persistence interface for the
// append-only reconciliation ledger. There is no update or delete.
type ReconciliationRepository interface {
	Save(ctx context.Context, rec *Reconciliation) error
	FindAll(ctx context.Context, filter ReconciliationFilter) ([]Reconciliation, error)
	Count(ctx context.Context, filter ReconciliationFilter) (int64, error)
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]Reconciliation, error)
}

// ReceiptRepository defines the persistence interface for receipts
type ReceiptRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Receipt, error)
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]Receipt, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Receipt, error)
	Save(ctx context.Context, receipt *Receipt) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SourceFileRepository defines the persistence interface for import files
type SourceFileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SourceFile, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SourceFile, error)
	Save(ctx context.Context, file *SourceFile) error
	Delete(ctx context.Context, id uuid.UUID) error
}
