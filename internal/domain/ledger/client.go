package ledger

import (
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client represents a client aggregate root. It owns invoices and carries the
// running balance maintained by the balance service: the sum of +amount for
// every PAYMENT invoice and -amount for every CHARGE invoice, regardless of
// reconciliation state.
type Client struct {
	shared.BaseAggregateRoot
	Name         string          `json:"name"`
	TaxID        string          `json:"tax_id"`
	Address      string          `json:"address"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Country      string          `json:"country"`
	City         string          `json:"city"`
	SourceFileID *uuid.UUID      `json:"source_file_id"`
	Balance      decimal.Decimal `json:"balance"`
}

// NewClient creates a new client with a zero balance
func NewClient(name, taxID, address, email, phone, country, city string) (*Client, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}

	c := &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		TaxID:             taxID,
		Address:           address,
		Email:             email,
		Phone:             phone,
		Country:           country,
		City:              city,
		Balance:           decimal.Zero,
	}

	c.AddDomainEvent(NewClientCreatedEvent(c))

	return c, nil
}

// UpdateContact updates the client's display and contact attributes.
// The balance is never touched here; only the balance service mutates it.
func (c *Client) UpdateContact(name, taxID, address, email, phone, country, city string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}

	c.Name = name
	c.TaxID = taxID
	c.Address = address
	c.Email = email
	c.Phone = phone
	c.Country = country
	c.City = city
	c.IncrementVersion()

	return nil
}

// AttachSourceFile links the client to the import file it was loaded from
func (c *Client) AttachSourceFile(fileID uuid.UUID) {
	c.SourceFileID = &fileID
	c.IncrementVersion()
}
