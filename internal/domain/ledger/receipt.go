package ledger

import (
	"time"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receipt is a proof-of-payment voucher attached to an invoice: when the
// money arrived, how it was paid, and where the scanned voucher lives in
// object storage. Receipts are informational only; they never feed the
// reconciliation engine or the client balance.
type Receipt struct {
	shared.BaseEntity
	InvoiceID  uuid.UUID       `json:"invoice_id"`
	Date       time.Time       `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	VoucherKey string          `json:"voucher_key"`
}

// NewReceipt creates a receipt for the given invoice
func NewReceipt(invoiceID uuid.UUID, date time.Time, amount decimal.Decimal, method, voucherKey string) (*Receipt, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Receipt amount must be positive")
	}
	if method == "" {
		return nil, shared.NewDomainError("INVALID_METHOD", "Payment method cannot be empty")
	}

	return &Receipt{
		BaseEntity: shared.NewBaseEntity(),
		InvoiceID:  invoiceID,
		Date:       date,
		Amount:     amount,
		Method:     method,
		VoucherKey: voucherKey,
	}, nil
}

// SetVoucherKey records the object-storage key of the uploaded voucher file
func (r *Receipt) SetVoucherKey(key string) {
	r.VoucherKey = key
	r.Touch()
}
