package models

import (
	"time"

	"github.com/cobranza/backend/internal/domain/ledger"
	"github.com/cobranza/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientModel is the persistence model for clients
type ClientModel struct {
	AggregateModel
	Name         string          `gorm:"type:varchar(200);not null;index"`
	TaxID        string          `gorm:"type:varchar(50);index"`
	Address      string          `gorm:"type:text"`
	Email        string          `gorm:"type:varchar(200)"`
	Phone        string          `gorm:"type:varchar(50)"`
	Country      string          `gorm:"type:varchar(100)"`
	City         string          `gorm:"type:varchar(100)"`
	SourceFileID *uuid.UUID      `gorm:"type:uuid;index"`
	Balance      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	Invoices []InvoiceModel `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client
func (m *ClientModel) ToDomain() *ledger.Client {
	return &ledger.Client{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		TaxID:             m.TaxID,
		Address:           m.Address,
		Email:             m.Email,
		Phone:             m.Phone,
		Country:           m.Country,
		City:              m.City,
		SourceFileID:      m.SourceFileID,
		Balance:           m.Balance,
	}
}

// ClientModelFromDomain converts a domain Client to its persistence model
func ClientModelFromDomain(c *ledger.Client) *ClientModel {
	m := &ClientModel{
		Name:         c.Name,
		TaxID:        c.TaxID,
		Address:      c.Address,
		Email:        c.Email,
		Phone:        c.Phone,
		Country:      c.Country,
		City:         c.City,
		SourceFileID: c.SourceFileID,
		Balance:      c.Balance,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// InvoiceModel is the persistence model for invoices. created_at is the
// matching order key; the composite index backs the ordered locked scan of a
// client's open invoices.
type InvoiceModel struct {
	AggregateModel
	Number    string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	ClientID  uuid.UUID            `gorm:"type:uuid;not null;index:idx_invoices_client_open,priority:1"`
	IssueDate time.Time            `gorm:"not null"`
	Amount    decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency  valueobject.Currency `gorm:"type:varchar(3);not null;default:'USD'"`
	Kind      ledger.InvoiceKind   `gorm:"type:varchar(10);not null;index:idx_invoices_client_open,priority:2"`
	Status    ledger.InvoiceStatus `gorm:"type:varchar(10);not null;default:'OPEN';index:idx_invoices_client_open,priority:3"`
	Remaining decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *ledger.Invoice {
	return &ledger.Invoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		ClientID:          m.ClientID,
		IssueDate:         m.IssueDate,
		Amount:            m.Amount,
		Currency:          m.Currency,
		Kind:              m.Kind,
		Status:            m.Status,
		Remaining:         m.Remaining,
	}
}

// InvoiceModelFromDomain converts a domain Invoice to its persistence model
func InvoiceModelFromDomain(inv *ledger.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		Number:    inv.Number,
		ClientID:  inv.ClientID,
		IssueDate: inv.IssueDate,
		Amount:    inv.Amount,
		Currency:  inv.Currency,
		Kind:      inv.Kind,
		Status:    inv.Status,
		Remaining: inv.Remaining,
	}
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	return m
}

// ReconciliationModel is the persistence model for the append-only
// reconciliation ledger
type ReconciliationModel struct {
	BaseModel
	PaymentID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChargeID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	AppliedAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AppliedBy     string          `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (ReconciliationModel) TableName() string {
	return "reconciliations"
}

// ToDomain converts the persistence model to a domain Reconciliation
func (m *ReconciliationModel) ToDomain() *ledger.Reconciliation {
	return &ledger.Reconciliation{
		BaseEntity:    m.BaseModel.ToDomain(),
		PaymentID:     m.PaymentID,
		ChargeID:      m.ChargeID,
		AppliedAmount: m.AppliedAmount,
		AppliedBy:     m.AppliedBy,
	}
}

// ReconciliationModelFromDomain converts a domain Reconciliation to its
// persistence model
func ReconciliationModelFromDomain(rec *ledger.Reconciliation) *ReconciliationModel {
	m := &ReconciliationModel{
		PaymentID:     rec.PaymentID,
		ChargeID:      rec.ChargeID,
		AppliedAmount: rec.AppliedAmount,
		AppliedBy:     rec.AppliedBy,
	}
	m.FromDomainBaseEntity(rec.BaseEntity)
	return m
}

// ReceiptModel is the persistence model for receipts
type ReceiptModel struct {
	BaseModel
	InvoiceID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date       time.Time       `gorm:"not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Method     string          `gorm:"type:varchar(50);not null"`
	VoucherKey string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ReceiptModel) TableName() string {
	return "receipts"
}

// ToDomain converts the persistence model to a domain Receipt
func (m *ReceiptModel) ToDomain() *ledger.Receipt {
	return &ledger.Receipt{
		BaseEntity: m.BaseModel.ToDomain(),
		InvoiceID:  m.InvoiceID,
		Date:       m.Date,
		Amount:     m.Amount,
		Method:     m.Method,
		VoucherKey: m.VoucherKey,
	}
}

// ReceiptModelFromDomain converts a domain Receipt to its persistence model
func ReceiptModelFromDomain(r *ledger.Receipt) *ReceiptModel {
	m := &ReceiptModel{
		InvoiceID:  r.InvoiceID,
		Date:       r.Date,
		Amount:     r.Amount,
		Method:     r.Method,
		VoucherKey: r.VoucherKey,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// SourceFileModel is the persistence model for import files
type SourceFileModel struct {
	BaseModel
	Name       string    `gorm:"type:varchar(255);not null"`
	LoadedAt   time.Time `gorm:"not null"`
	UploadedBy string    `gorm:"type:varchar(100);not null"`
	ObjectKey  string    `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SourceFileModel) TableName() string {
	return "source_files"
}

// ToDomain converts the persistence model to a domain SourceFile
func (m *SourceFileModel) ToDomain() *ledger.SourceFile {
	return &ledger.SourceFile{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		LoadedAt:   m.LoadedAt,
		UploadedBy: m.UploadedBy,
		ObjectKey:  m.ObjectKey,
	}
}

// SourceFileModelFromDomain converts a domain SourceFile to its persistence model
func SourceFileModelFromDomain(f *ledger.SourceFile) *SourceFileModel {
	m := &SourceFileModel{
		Name:       f.Name,
		LoadedAt:   f.LoadedAt,
		UploadedBy: f.UploadedBy,
		ObjectKey:  f.ObjectKey,
	}
	m.FromDomainBaseEntity(f.BaseEntity)
	return m
}

// AllModels lists every persistence model for migration tooling
func AllModels() []interface{} {
	return []interface{}{
		&ClientModel{},
		&InvoiceModel{},
		&ReconciliationModel{},
		&ReceiptModel{},
		&SourceFileModel{},
	}
}
