package ledger

import (
	"fmt"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MatchEntry pairs one payment with one charge for an applied amount
type MatchEntry struct {
	Payment *Invoice
	Charge  *Invoice
	Applied decimal.Decimal
}

// MatchResult is the outcome of a single matching pass. Reconciliations is
// ordered by creation; Touched holds every invoice whose remaining or status
// changed, in first-touched order, ready to be persisted by the caller.
type MatchResult struct {
	Reconciliations []Reconciliation
	Touched         []*Invoice
	TotalApplied    decimal.Decimal
}

// MatchService is the reconciliation engine: a pure domain service that walks
// a client's open payments and open charges oldest-first and decides which
// payment settles which charge, for how much.
//
// The service holds no state and performs no I/O. Callers load both sequences
// under a store-level lock, already ordered by (created_at, id) ascending,
// and persist the result atomically. Running the same inputs twice yields no
// entries the second time, because every matchable invoice ends the first
// pass either closed or with its remaining reduced to the unmatched surplus.
type MatchService struct{}

// NewMatchService creates a new matching engine instance
func NewMatchService() *MatchService {
	return &MatchService{}
}

// Match walks payments and charges with independent cursors, applying
// min(payment.Remaining, charge.Remaining) at each step and advancing
// whichever side reaches zero (both, when the amounts match exactly).
//
// Invoices whose stored remaining is already non-positive are defensively
// closed without applying any amount; this covers stale reads and never
// produces a reconciliation record. A remaining above the invoice amount
// means upstream corruption and aborts the pass.
func (s *MatchService) Match(payments, charges []*Invoice, appliedBy string) (*MatchResult, error) {
	result := &MatchResult{
		Reconciliations: make([]Reconciliation, 0),
		Touched:         make([]*Invoice, 0),
		TotalApplied:    decimal.Zero,
	}

	if len(payments) == 0 || len(charges) == 0 {
		return result, nil
	}

	clientID := payments[0].ClientID
	for _, inv := range payments {
		if err := checkMatchInput(inv, InvoiceKindPayment, clientID); err != nil {
			return nil, err
		}
	}
	for _, inv := range charges {
		if err := checkMatchInput(inv, InvoiceKindCharge, clientID); err != nil {
			return nil, err
		}
	}

	touched := make(map[*Invoice]bool)
	touch := func(inv *Invoice) {
		if !touched[inv] {
			touched[inv] = true
			result.Touched = append(result.Touched, inv)
		}
	}

	i, j := 0, 0
	for i < len(payments) && j < len(charges) {
		payment := payments[i]
		charge := charges[j]

		if payment.Remaining.LessThanOrEqual(decimal.Zero) {
			payment.ForceClose()
			touch(payment)
			i++
			continue
		}
		if charge.Remaining.LessThanOrEqual(decimal.Zero) {
			charge.ForceClose()
			touch(charge)
			j++
			continue
		}

		applied := decimal.Min(payment.Remaining, charge.Remaining)

		rec, err := NewReconciliation(payment.ID, charge.ID, applied, appliedBy)
		if err != nil {
			return nil, err
		}
		if err := payment.Apply(applied); err != nil {
			return nil, err
		}
		if err := charge.Apply(applied); err != nil {
			return nil, err
		}

		result.Reconciliations = append(result.Reconciliations, *rec)
		result.TotalApplied = result.TotalApplied.Add(applied)
		touch(payment)
		touch(charge)

		if payment.IsClosed() {
			i++
		}
		if charge.IsClosed() {
			j++
		}
	}

	return result, nil
}

// checkMatchInput rejects inputs the engine must never see: wrong kind,
// cross-client mixes, or a remaining above the invoice amount (upstream
// corruption).
func checkMatchInput(inv *Invoice, want InvoiceKind, clientID uuid.UUID) error {
	if inv.Kind != want {
		return shared.NewDomainError("INVALID_KIND",
			fmt.Sprintf("Invoice %s has kind %s, expected %s", inv.Number, inv.Kind, want))
	}
	if inv.ClientID != clientID {
		return shared.NewDomainError("CLIENT_MISMATCH",
			fmt.Sprintf("Invoice %s belongs to a different client", inv.Number))
	}
	if inv.Remaining.GreaterThan(inv.Amount) {
		return shared.NewDomainError("CONSISTENCY_VIOLATION",
			fmt.Sprintf("Invoice %s has remaining %s above amount %s", inv.Number, inv.Remaining, inv.Amount))
	}
	return nil
}
