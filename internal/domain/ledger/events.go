package ledger

import (
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type constants
const (
	EventTypeClientCreated          = "ledger.client.created"
	EventTypeInvoiceCreated         = "ledger.invoice.created"
	EventTypeInvoiceClosed          = "ledger.invoice.closed"
	EventTypeReconciliationRecorded = "ledger.reconciliation.recorded"
)

// Aggregate type constants
const (
	AggregateTypeClient  = "Client"
	AggregateTypeInvoice = "Invoice"
)

// ClientCreatedEvent is emitted when a client is registered
type ClientCreatedEvent struct {
	shared.BaseDomainEvent
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
}

// NewClientCreatedEvent creates a ClientCreatedEvent
func NewClientCreatedEvent(c *Client) *ClientCreatedEvent {
	return &ClientCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientCreated, AggregateTypeClient, c.ID),
		Name:            c.Name,
		TaxID:           c.TaxID,
	}
}

// InvoiceCreatedEvent is emitted when an invoice enters the ledger
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	Number   string          `json:"number"`
	ClientID uuid.UUID       `json:"client_id"`
	Kind     InvoiceKind     `json:"kind"`
	Amount   decimal.Decimal `json:"amount"`
}

// NewInvoiceCreatedEvent creates an InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, inv.ID),
		Number:          inv.Number,
		ClientID:        inv.ClientID,
		Kind:            inv.Kind,
		Amount:          inv.Amount,
	}
}

// InvoiceClosedEvent is emitted when an invoice's remaining value reaches zero
type InvoiceClosedEvent struct {
	shared.BaseDomainEvent
	Number   string      `json:"number"`
	ClientID uuid.UUID   `json:"client_id"`
	Kind     InvoiceKind `json:"kind"`
}

// NewInvoiceClosedEvent creates an InvoiceClosedEvent
func NewInvoiceClosedEvent(inv *Invoice) *InvoiceClosedEvent {
	return &InvoiceClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceClosed, AggregateTypeInvoice, inv.ID),
		Number:          inv.Number,
		ClientID:        inv.ClientID,
		Kind:            inv.Kind,
	}
}
