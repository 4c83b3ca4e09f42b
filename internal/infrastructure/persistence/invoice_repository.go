package persistence

import (
	"context"
	"time"

	"github.com/cobranza/backend/internal/domain/ledger"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements ledger.InvoiceRepository and
// ledger.MatchStateWriter using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *Database) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db.DB}
}

var (
	_ ledger.InvoiceRepository = (*GormInvoiceRepository)(nil)
	_ ledger.MatchStateWriter  = (*GormInvoiceRepository)(nil)
)

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Invoice, error) {
	var model models.InvoiceModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an invoice by its document number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, number string) (*ledger.Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	var model models.InvoiceModel
	if err := dbFromContext(ctx, r.db).
		Where("number = ?", number).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll finds all invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter ledger.InvoiceFilter) ([]ledger.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(dbFromContext(ctx, r.db).Model(&models.InvoiceModel{}), filter)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, translateError(err)
	}

	invoices := make([]ledger.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter ledger.InvoiceFilter) (int64, error) {
	var count int64
	query := r.applyConditions(dbFromContext(ctx, r.db).Model(&models.InvoiceModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *ledger.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return translateError(dbFromContext(ctx, r.db).Save(model).Error)
}

// Delete deletes an invoice. Reconciliation records referencing it are kept;
// the ledger is append-only.
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&models.InvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindOpenForUpdate loads and locks a client's open invoices of one kind in
// matching order: oldest created_at first, id as the tie break.
func (r *GormInvoiceRepository) FindOpenForUpdate(ctx context.Context, clientID uuid.UUID, kind ledger.InvoiceKind) ([]*ledger.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := dbFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("client_id = ? AND kind = ? AND status = ?", clientID, kind, ledger.InvoiceStatusOpen).
		Order("created_at ASC, id ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, translateError(err)
	}

	invoices := make([]*ledger.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = model.ToDomain()
	}
	return invoices, nil
}

// ApplyMatchState writes the remaining amount and status produced by a
// matching pass straight to the invoice columns. This path deliberately skips
// the aggregate so a matching pass can never feed back into the lifecycle.
func (r *GormInvoiceRepository) ApplyMatchState(ctx context.Context, invoiceID uuid.UUID, remaining decimal.Decimal, status ledger.InvoiceStatus) error {
	result := dbFromContext(ctx, r.db).
		Model(&models.InvoiceModel{}).
		Where("id = ?", invoiceID).
		UpdateColumns(map[string]interface{}{
			"remaining":  remaining,
			"status":     status,
			"updated_at": time.Now(),
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// BalanceTotals re-derives every client's balance from its invoice deltas:
// payments add, charges subtract.
func (r *GormInvoiceRepository) BalanceTotals(ctx context.Context) ([]ledger.BalanceTotal, error) {
	var totals []ledger.BalanceTotal
	if err := dbFromContext(ctx, r.db).
		Model(&models.InvoiceModel{}).
		Select("client_id, SUM(CASE WHEN kind = ? THEN amount ELSE -amount END) AS balance", ledger.InvoiceKindPayment).
		Group("client_id").
		Scan(&totals).Error; err != nil {
		return nil, translateError(err)
	}
	return totals, nil
}

// FindOpenWithClient lists every open invoice joined with its client name,
// the input of the aging report
func (r *GormInvoiceRepository) FindOpenWithClient(ctx context.Context) ([]ledger.OpenInvoiceRef, error) {
	var refs []ledger.OpenInvoiceRef
	if err := dbFromContext(ctx, r.db).
		Model(&models.InvoiceModel{}).
		Select("invoices.id AS invoice_id, invoices.client_id, clients.name AS client_name, invoices.created_at").
		Joins("JOIN clients ON clients.id = invoices.client_id").
		Where("invoices.status = ?", ledger.InvoiceStatusOpen).
		Scan(&refs).Error; err != nil {
		return nil, translateError(err)
	}
	return refs, nil
}

// applyFilter applies filter conditions plus pagination and ordering
func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter ledger.InvoiceFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query.Order("created_at DESC")
}

// applyConditions applies filter conditions without pagination
func (r *GormInvoiceRepository) applyConditions(query *gorm.DB, filter ledger.InvoiceFilter) *gorm.DB {
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}
