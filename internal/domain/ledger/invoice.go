package ledger

import (
	"fmt"
	"time"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceKind distinguishes charges (money owed by the client) from payments
// (money received from the client)
type InvoiceKind string

const (
	InvoiceKindCharge  InvoiceKind = "CHARGE"
	InvoiceKindPayment InvoiceKind = "PAYMENT"
)

// IsValid checks if the kind is a valid InvoiceKind
func (k InvoiceKind) IsValid() bool {
	return k == InvoiceKindCharge || k == InvoiceKindPayment
}

// String returns the string representation of InvoiceKind
func (k InvoiceKind) String() string {
	return string(k)
}

// InvoiceStatus represents the settlement status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusOpen   InvoiceStatus = "OPEN"   // Remaining > 0, still matchable
	InvoiceStatusClosed InvoiceStatus = "CLOSED" // Remaining == 0, terminal
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	return s == InvoiceStatusOpen || s == InvoiceStatusClosed
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// Invoice represents an invoice aggregate root. The amount is fixed at
// creation; Remaining tracks the unsettled portion and only ever decreases.
// Status is CLOSED exactly when Remaining reaches zero and never reopens.
// CreatedAt is the ordering key for reconciliation; the id breaks timestamp
// ties deterministically.
type Invoice struct {
	shared.BaseAggregateRoot
	Number    string               `json:"number"`
	ClientID  uuid.UUID            `json:"client_id"`
	IssueDate time.Time            `json:"issue_date"`
	Amount    decimal.Decimal      `json:"amount"`
	Currency  valueobject.Currency `json:"currency"`
	Kind      InvoiceKind          `json:"kind"`
	Status    InvoiceStatus        `json:"status"`
	Remaining decimal.Decimal      `json:"remaining"`
}

// NewInvoice creates a new OPEN invoice with Remaining initialized to Amount
func NewInvoice(
	number string,
	clientID uuid.UUID,
	issueDate time.Time,
	amount decimal.Decimal,
	currency valueobject.Currency,
	kind InvoiceKind,
) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if len(number) > 50 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice amount must be positive")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", fmt.Sprintf("Unsupported currency %q", currency))
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", fmt.Sprintf("Invoice kind must be %s or %s", InvoiceKindCharge, InvoiceKindPayment))
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		ClientID:          clientID,
		IssueDate:         issueDate,
		Amount:            amount,
		Currency:          currency,
		Kind:              kind,
		Status:            InvoiceStatusOpen,
		Remaining:         amount,
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// Delta returns the signed contribution of this invoice to the owning
// client's balance: +Amount for payments, -Amount for charges.
func (inv *Invoice) Delta() decimal.Decimal {
	if inv.Kind == InvoiceKindPayment {
		return inv.Amount
	}
	return inv.Amount.Neg()
}

// IsOpen returns true if the invoice still has unsettled value
func (inv *Invoice) IsOpen() bool {
	return inv.Status == InvoiceStatusOpen
}

// IsClosed returns true if the invoice is fully settled
func (inv *Invoice) IsClosed() bool {
	return inv.Status == InvoiceStatusClosed
}

// Apply settles part of the invoice's remaining value. Closes the invoice
// when Remaining reaches zero.
func (inv *Invoice) Apply(amount decimal.Decimal) error {
	if inv.Status != InvoiceStatusOpen {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot apply amount to %s invoice %s", inv.Status, inv.Number))
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Applied amount must be positive")
	}
	if amount.GreaterThan(inv.Remaining) {
		return shared.NewDomainError("EXCEEDS_REMAINING",
			fmt.Sprintf("Applied amount %s exceeds remaining %s on invoice %s", amount, inv.Remaining, inv.Number))
	}

	inv.Remaining = inv.Remaining.Sub(amount)
	if inv.Remaining.IsZero() {
		inv.close()
	}
	inv.IncrementVersion()

	return nil
}

// ForceClose closes an invoice whose stored remaining is already non-positive.
// This is the defensive path for stale reads observed during matching; no
// amount is applied.
func (inv *Invoice) ForceClose() {
	if inv.Status == InvoiceStatusClosed {
		return
	}
	if inv.Remaining.IsNegative() {
		inv.Remaining = decimal.Zero
	}
	inv.close()
	inv.IncrementVersion()
}

func (inv *Invoice) close() {
	inv.Status = InvoiceStatusClosed
	inv.AddDomainEvent(NewInvoiceClosedEvent(inv))
}

// Rebind moves the invoice to a different client. Amount and kind stay fixed;
// the caller is responsible for the balance bookkeeping on both clients.
func (inv *Invoice) Rebind(clientID uuid.UUID) error {
	if clientID == uuid.Nil {
		return shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	inv.ClientID = clientID
	inv.IncrementVersion()
	return nil
}

// SetIssueDate updates the issue date. The creation timestamp, not the issue
// date, orders reconciliation, so this never affects matching.
func (inv *Invoice) SetIssueDate(issueDate time.Time) {
	inv.IssueDate = issueDate
	inv.IncrementVersion()
}

// CheckConsistency verifies the stored remaining/state pair against the
// ledger invariants: 0 <= remaining <= amount, and CLOSED iff remaining == 0.
func (inv *Invoice) CheckConsistency() error {
	if inv.Remaining.IsNegative() {
		return shared.NewDomainError("CONSISTENCY_VIOLATION",
			fmt.Sprintf("Invoice %s has negative remaining %s", inv.Number, inv.Remaining))
	}
	if inv.Remaining.GreaterThan(inv.Amount) {
		return shared.NewDomainError("CONSISTENCY_VIOLATION",
			fmt.Sprintf("Invoice %s has remaining %s above amount %s", inv.Number, inv.Remaining, inv.Amount))
	}
	if inv.Status == InvoiceStatusClosed && !inv.Remaining.IsZero() {
		return shared.NewDomainError("CONSISTENCY_VIOLATION",
			fmt.Sprintf("Invoice %s is CLOSED with remaining %s", inv.Number, inv.Remaining))
	}
	return nil
}
