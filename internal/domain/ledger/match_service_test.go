package ledger

import (
	"testing"
	"time"

	"github.com/cobranza/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestInvoice builds an OPEN invoice with a controlled creation timestamp
func newTestInvoice(t *testing.T, clientID uuid.UUID, number string, amount int64, kind InvoiceKind, createdAt time.Time) *Invoice {
	t.Helper()
	inv, err := NewInvoice(number, clientID, createdAt, decimal.NewFromInt(amount), valueobject.USD, kind)
	require.NoError(t, err)
	inv.CreatedAt = createdAt
	return inv
}

func TestMatchService_Match(t *testing.T) {
	svc := NewMatchService()
	clientID := uuid.New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("no payments produces no effect", func(t *testing.T) {
		charge := newTestInvoice(t, clientID, "C001", 100, InvoiceKindCharge, base)

		result, err := svc.Match(nil, []*Invoice{charge}, SystemUser)
		require.NoError(t, err)
		assert.Empty(t, result.Reconciliations)
		assert.Empty(t, result.Touched)
		assert.True(t, charge.IsOpen())
	})

	t.Run("no charges produces no effect", func(t *testing.T) {
		payment := newTestInvoice(t, clientID, "P001", 100, InvoiceKindPayment, base)

		result, err := svc.Match([]*Invoice{payment}, nil, SystemUser)
		require.NoError(t, err)
		assert.Empty(t, result.Reconciliations)
		assert.True(t, payment.IsOpen())
	})

	t.Run("partial payment leaves charge open", func(t *testing.T) {
		charge := newTestInvoice(t, clientID, "C001", 100, InvoiceKindCharge, base)
		payment := newTestInvoice(t, clientID, "P001", 50, InvoiceKindPayment, base.Add(time.Minute))

		result, err := svc.Match([]*Invoice{payment}, []*Invoice{charge}, SystemUser)
		require.NoError(t, err)

		require.Len(t, result.Reconciliations, 1)
		rec := result.Reconciliations[0]
		assert.Equal(t, payment.ID, rec.PaymentID)
		assert.Equal(t, charge.ID, rec.ChargeID)
		assert.True(t, rec.AppliedAmount.Equal(decimal.NewFromInt(50)))

		assert.True(t, charge.IsOpen())
		assert.True(t, charge.Remaining.Equal(decimal.NewFromInt(50)))
		assert.True(t, payment.IsClosed())
		assert.True(t, payment.Remaining.IsZero())
		assert.True(t, result.TotalApplied.Equal(decimal.NewFromInt(50)))
	})

	t.Run("overpayment closes charge and keeps payment surplus open", func(t *testing.T) {
		charge := newTestInvoice(t, clientID, "C001", 100, InvoiceKindCharge, base)
		charge.Remaining = decimal.NewFromInt(50) // already half settled
		payment := newTestInvoice(t, clientID, "P002", 60, InvoiceKindPayment, base.Add(time.Minute))

		result, err := svc.Match([]*Invoice{payment}, []*Invoice{charge}, SystemUser)
		require.NoError(t, err)

		require.Len(t, result.Reconciliations, 1)
		assert.True(t, result.Reconciliations[0].AppliedAmount.Equal(decimal.NewFromInt(50)))
		assert.True(t, charge.IsClosed())
		assert.True(t, payment.IsOpen())
		assert.True(t, payment.Remaining.Equal(decimal.NewFromInt(10)))
	})

	t.Run("single payment settles charges oldest first", func(t *testing.T) {
		c1 := newTestInvoice(t, clientID, "C001", 100, InvoiceKindCharge, base)
		c2 := newTestInvoice(t, clientID, "C002", 50, InvoiceKindCharge, base.Add(time.Minute))
		p1 := newTestInvoice(t, clientID, "P001", 120, InvoiceKindPayment, base.Add(2*time.Minute))

		result, err := svc.Match([]*Invoice{p1}, []*Invoice{c1, c2}, SystemUser)
		require.NoError(t, err)

		require.Len(t, result.Reconciliations, 2)
		assert.Equal(t, c1.ID, result.Reconciliations[0].ChargeID)
		assert.True(t, result.Reconciliations[0].AppliedAmount.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, c2.ID, result.Reconciliations[1].ChargeID)
		assert.True(t, result.Reconciliations[1].AppliedAmount.Equal(decimal.NewFromInt(20)))

		assert.True(t, c1.IsClosed())
		assert.True(t, c2.IsOpen())
		assert.True(t, c2.Remaining.Equal(decimal.NewFromInt(30)))
		assert.True(t, p1.IsClosed())
	})

	t.Run("multiple payments drain into one charge", func(t *testing.T) {
		charge := newTestInvoice(t, clientID, "C001", 100, InvoiceKindCharge, base)
		p1 := newTestInvoice(t, clientID, "P001", 30, InvoiceKindPayment, base.Add(time.Minute))
		p2 := newTestInvoice(t, clientID, "P002", 70, InvoiceKindPayment, base.Add(2*time.Minute))

		result, err := svc.Match([]*Invoice{p1, p2}, []*Invoice{charge}, SystemUser)
		require.NoError(t, err)

		require.Len(t, result.Reconciliations, 2)
		assert.Equal(t, p1.ID, result.Reconciliations[0].PaymentID)
		assert.Equal(t, p2.ID, result.Reconciliations[1].PaymentID)
		assert.True(t, charge.IsClosed())
		assert.True(t, p1.IsClosed())
		assert.True(t, p2.IsClosed())
	})

	t.Run("exact match closes both sides in one step", func(t *testing.T) {
		charge := newTestInvoice(t, clientID, "C001", 80, InvoiceKindCharge, base)
		payment := newTestInvoice(t, clientID, "P001", 80, InvoiceKindPayment, base.Add(time.Minute))

		result, err := svc.Match([]*Invoice{payment}, []*Invoice{charge}, SystemUser)
		require.NoError(t, err)

		require.Len(t, result.Reconciliations, 1)
		assert.True(t, charge.IsClosed())
		assert.True(t, payment.IsClosed())
	})

	t.Run("repeated run over settled invoices is a no-op", func(t *testing.T) {
		charge := newTestInvoice(t, clientID, "C001", 100, InvoiceKindCharge, base)
		payment := newTestInvoice(t, clientID, "P001", 100, InvoiceKindPayment, base.Add(time.Minute))

		first, err := svc.Match([]*Invoice{payment}, []*Invoice{charge}, SystemUser)
		require.NoError(t, err)
		require.Len(t, first.Reconciliations, 1)

		// a second run loads no OPEN invoices; the engine sees empty inputs
		second, err := svc.Match(nil, nil, SystemUser)
		require.NoError(t, err)
		assert.Empty(t, second.Reconciliations)
		assert.Empty(t, second.Touched)
	})

	t.Run("stale zero-remaining invoice is closed without a record", func(t *testing.T) {
		staleCharge := newTestInvoice(t, clientID, "C001", 100, InvoiceKindCharge, base)
		staleCharge.Remaining = decimal.Zero // inconsistent: OPEN with nothing left
		liveCharge := newTestInvoice(t, clientID, "C002", 40, InvoiceKindCharge, base.Add(time.Minute))
		payment := newTestInvoice(t, clientID, "P001", 40, InvoiceKindPayment, base.Add(2*time.Minute))

		result, err := svc.Match([]*Invoice{payment}, []*Invoice{staleCharge, liveCharge}, SystemUser)
		require.NoError(t, err)

		require.Len(t, result.Reconciliations, 1)
		assert.Equal(t, liveCharge.ID, result.Reconciliations[0].ChargeID)
		assert.True(t, staleCharge.IsClosed())
		assert.Contains(t, result.Touched, staleCharge)
		assert.True(t, result.TotalApplied.Equal(decimal.NewFromInt(40)))
	})

	t.Run("stale negative-remaining payment is clamped and closed", func(t *testing.T) {
		stalePayment := newTestInvoice(t, clientID, "P001", 25, InvoiceKindPayment, base)
		stalePayment.Remaining = decimal.NewFromInt(-5)
		charge := newTestInvoice(t, clientID, "C001", 25, InvoiceKindCharge, base.Add(time.Minute))

		result, err := svc.Match([]*Invoice{stalePayment}, []*Invoice{charge}, SystemUser)
		require.NoError(t, err)

		assert.Empty(t, result.Reconciliations)
		assert.True(t, stalePayment.IsClosed())
		assert.True(t, stalePayment.Remaining.IsZero())
		assert.True(t, charge.IsOpen())
	})

	t.Run("remaining above amount aborts the pass", func(t *testing.T) {
		charge := newTestInvoice(t, clientID, "C001", 100, InvoiceKindCharge, base)
		charge.Remaining = decimal.NewFromInt(150)
		payment := newTestInvoice(t, clientID, "P001", 100, InvoiceKindPayment, base.Add(time.Minute))

		_, err := svc.Match([]*Invoice{payment}, []*Invoice{charge}, SystemUser)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "above amount")
		// nothing was applied before the abort
		assert.True(t, payment.Remaining.Equal(decimal.NewFromInt(100)))
	})

	t.Run("cross-client invoice aborts the pass", func(t *testing.T) {
		payment := newTestInvoice(t, clientID, "P001", 100, InvoiceKindPayment, base)
		foreignCharge := newTestInvoice(t, uuid.New(), "C001", 100, InvoiceKindCharge, base)

		_, err := svc.Match([]*Invoice{payment}, []*Invoice{foreignCharge}, SystemUser)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "different client")
	})

	t.Run("wrong kind in a sequence aborts the pass", func(t *testing.T) {
		charge := newTestInvoice(t, clientID, "C001", 100, InvoiceKindCharge, base)

		_, err := svc.Match([]*Invoice{charge}, []*Invoice{charge}, SystemUser)
		require.Error(t, err)
	})

	t.Run("touched invoices are reported once each", func(t *testing.T) {
		c1 := newTestInvoice(t, clientID, "C001", 30, InvoiceKindCharge, base)
		c2 := newTestInvoice(t, clientID, "C002", 30, InvoiceKindCharge, base.Add(time.Minute))
		p1 := newTestInvoice(t, clientID, "P001", 60, InvoiceKindPayment, base.Add(2*time.Minute))

		result, err := svc.Match([]*Invoice{p1}, []*Invoice{c1, c2}, SystemUser)
		require.NoError(t, err)

		assert.Len(t, result.Touched, 3)
		assert.Contains(t, result.Touched, p1)
		assert.Contains(t, result.Touched, c1)
		assert.Contains(t, result.Touched, c2)
	})

	t.Run("records carry the acting user", func(t *testing.T) {
		charge := newTestInvoice(t, clientID, "C001", 10, InvoiceKindCharge, base)
		payment := newTestInvoice(t, clientID, "P001", 10, InvoiceKindPayment, base.Add(time.Minute))

		result, err := svc.Match([]*Invoice{payment}, []*Invoice{charge}, "auditor")
		require.NoError(t, err)
		require.Len(t, result.Reconciliations, 1)
		assert.Equal(t, "auditor", result.Reconciliations[0].AppliedBy)
	})
}
