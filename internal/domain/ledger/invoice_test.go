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

func TestNewInvoice(t *testing.T) {
	clientID := uuid.New()
	issueDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("creates open invoice with remaining equal to amount", func(t *testing.T) {
		inv, err := NewInvoice("F-0001", clientID, issueDate, decimal.NewFromInt(250), valueobject.USD, InvoiceKindCharge)
		require.NoError(t, err)

		assert.Equal(t, InvoiceStatusOpen, inv.Status)
		assert.True(t, inv.Remaining.Equal(decimal.NewFromInt(250)))
		assert.Equal(t, 1, inv.Version)

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoiceCreated, events[0].EventType())
	})

	t.Run("rejects empty number", func(t *testing.T) {
		_, err := NewInvoice("", clientID, issueDate, decimal.NewFromInt(100), valueobject.USD, InvoiceKindCharge)
		assert.Error(t, err)
	})

	t.Run("rejects missing client", func(t *testing.T) {
		_, err := NewInvoice("F-0001", uuid.Nil, issueDate, decimal.NewFromInt(100), valueobject.USD, InvoiceKindCharge)
		assert.Error(t, err)
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		_, err := NewInvoice("F-0001", clientID, issueDate, decimal.Zero, valueobject.USD, InvoiceKindPayment)
		assert.Error(t, err)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewInvoice("F-0001", clientID, issueDate, decimal.NewFromInt(-5), valueobject.USD, InvoiceKindPayment)
		assert.Error(t, err)
	})

	t.Run("rejects unknown currency", func(t *testing.T) {
		_, err := NewInvoice("F-0001", clientID, issueDate, decimal.NewFromInt(100), valueobject.Currency("XXX"), InvoiceKindCharge)
		assert.Error(t, err)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewInvoice("F-0001", clientID, issueDate, decimal.NewFromInt(100), valueobject.USD, InvoiceKind("REFUND"))
		assert.Error(t, err)
	})
}

func TestInvoice_Delta(t *testing.T) {
	clientID := uuid.New()
	now := time.Now()

	t.Run("payment contributes positive delta", func(t *testing.T) {
		inv, err := NewInvoice("P-1", clientID, now, decimal.NewFromInt(80), valueobject.USD, InvoiceKindPayment)
		require.NoError(t, err)
		assert.True(t, inv.Delta().Equal(decimal.NewFromInt(80)))
	})

	t.Run("charge contributes negative delta", func(t *testing.T) {
		inv, err := NewInvoice("C-1", clientID, now, decimal.NewFromInt(80), valueobject.USD, InvoiceKindCharge)
		require.NoError(t, err)
		assert.True(t, inv.Delta().Equal(decimal.NewFromInt(-80)))
	})
}

func TestInvoice_Apply(t *testing.T) {
	newOpen := func(t *testing.T, amount int64) *Invoice {
		inv, err := NewInvoice("F-0001", uuid.New(), time.Now(), decimal.NewFromInt(amount), valueobject.USD, InvoiceKindCharge)
		require.NoError(t, err)
		inv.ClearDomainEvents()
		return inv
	}

	t.Run("partial apply keeps invoice open", func(t *testing.T) {
		inv := newOpen(t, 100)
		require.NoError(t, inv.Apply(decimal.NewFromInt(40)))

		assert.True(t, inv.Remaining.Equal(decimal.NewFromInt(60)))
		assert.True(t, inv.IsOpen())
		assert.Empty(t, inv.GetDomainEvents())
	})

	t.Run("full apply closes invoice and emits closed event", func(t *testing.T) {
		inv := newOpen(t, 100)
		require.NoError(t, inv.Apply(decimal.NewFromInt(100)))

		assert.True(t, inv.Remaining.IsZero())
		assert.True(t, inv.IsClosed())

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoiceClosed, events[0].EventType())
	})

	t.Run("apply above remaining is rejected", func(t *testing.T) {
		inv := newOpen(t, 100)
		err := inv.Apply(decimal.NewFromInt(101))
		assert.Error(t, err)
		assert.True(t, inv.Remaining.Equal(decimal.NewFromInt(100)))
	})

	t.Run("apply on closed invoice is rejected", func(t *testing.T) {
		inv := newOpen(t, 100)
		require.NoError(t, inv.Apply(decimal.NewFromInt(100)))

		err := inv.Apply(decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("zero apply is rejected", func(t *testing.T) {
		inv := newOpen(t, 100)
		assert.Error(t, inv.Apply(decimal.Zero))
	})
}

func TestInvoice_ForceClose(t *testing.T) {
	t.Run("clamps negative remaining to zero", func(t *testing.T) {
		inv, err := NewInvoice("F-0001", uuid.New(), time.Now(), decimal.NewFromInt(10), valueobject.USD, InvoiceKindPayment)
		require.NoError(t, err)
		inv.Remaining = decimal.NewFromInt(-3)

		inv.ForceClose()

		assert.True(t, inv.IsClosed())
		assert.True(t, inv.Remaining.IsZero())
	})

	t.Run("is a no-op on an already closed invoice", func(t *testing.T) {
		inv, err := NewInvoice("F-0001", uuid.New(), time.Now(), decimal.NewFromInt(10), valueobject.USD, InvoiceKindPayment)
		require.NoError(t, err)
		require.NoError(t, inv.Apply(decimal.NewFromInt(10)))
		version := inv.Version

		inv.ForceClose()
		assert.Equal(t, version, inv.Version)
	})
}

func TestInvoice_CheckConsistency(t *testing.T) {
	newInv := func(t *testing.T) *Invoice {
		inv, err := NewInvoice("F-0001", uuid.New(), time.Now(), decimal.NewFromInt(100), valueobject.USD, InvoiceKindCharge)
		require.NoError(t, err)
		return inv
	}

	t.Run("fresh invoice is consistent", func(t *testing.T) {
		assert.NoError(t, newInv(t).CheckConsistency())
	})

	t.Run("detects negative remaining", func(t *testing.T) {
		inv := newInv(t)
		inv.Remaining = decimal.NewFromInt(-1)
		assert.Error(t, inv.CheckConsistency())
	})

	t.Run("detects remaining above amount", func(t *testing.T) {
		inv := newInv(t)
		inv.Remaining = decimal.NewFromInt(101)
		assert.Error(t, inv.CheckConsistency())
	})

	t.Run("detects closed invoice with leftover remaining", func(t *testing.T) {
		inv := newInv(t)
		inv.Status = InvoiceStatusClosed
		inv.Remaining = decimal.NewFromInt(5)
		assert.Error(t, inv.CheckConsistency())
	})
}

func TestInvoiceKindAndStatus(t *testing.T) {
	t.Run("kind validity", func(t *testing.T) {
		assert.True(t, InvoiceKindCharge.IsValid())
		assert.True(t, InvoiceKindPayment.IsValid())
		assert.False(t, InvoiceKind("OTHER").IsValid())
	})

	t.Run("status validity", func(t *testing.T) {
		assert.True(t, InvoiceStatusOpen.IsValid())
		assert.True(t, InvoiceStatusClosed.IsValid())
		assert.False(t, InvoiceStatus("VOID").IsValid())
	})
}
