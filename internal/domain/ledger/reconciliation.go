package ledger

import (
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reconciliation is the immutable audit record of applying part or all of one
// payment invoice against one charge invoice. Records are append-only: they
// are never updated or deleted, and partial fills accumulate as separate
// records referencing the same invoice.
type Reconciliation struct {
	shared.BaseEntity
	PaymentID     uuid.UUID       `json:"payment_id"`
	ChargeID      uuid.UUID       `json:"charge_id"`
	AppliedAmount decimal.Decimal `json:"applied_amount"`
	AppliedBy     string          `json:"applied_by"`
}

// SystemUser is recorded as the acting user for engine-triggered matches
const SystemUser = "system"

// NewReconciliation creates a reconciliation record linking one payment to
// one charge for the given applied amount
func NewReconciliation(paymentID, chargeID uuid.UUID, appliedAmount decimal.Decimal, appliedBy string) (*Reconciliation, error) {
	if paymentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT", "Payment invoice ID cannot be empty")
	}
	if chargeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CHARGE", "Charge invoice ID cannot be empty")
	}
	if paymentID == chargeID {
		return nil, shared.NewDomainError("INVALID_PAIR", "Payment and charge must be different invoices")
	}
	if appliedAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Applied amount must be positive")
	}
	if appliedBy == "" {
		appliedBy = SystemUser
	}

	return &Reconciliation{
		BaseEntity:    shared.NewBaseEntity(),
		PaymentID:     paymentID,
		ChargeID:      chargeID,
		AppliedAmount: appliedAmount,
		AppliedBy:     appliedBy,
	}, nil
}
