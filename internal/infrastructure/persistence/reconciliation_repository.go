package persistence

import (
	"context"

	"github.com/cobranza/backend/internal/domain/ledger"
	"github.com/cobranza/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReconciliationRepository implements ledger.ReconciliationRepository
// using GORM. The table is append-only; there is no update or delete path.
type GormReconciliationRepository struct {
	db *gorm.DB
}

// NewGormReconciliationRepository creates a new GormReconciliationRepository
func NewGormReconciliationRepository(db *Database) *GormReconciliationRepository {
	return &GormReconciliationRepository{db: db.DB}
}

var _ ledger.ReconciliationRepository = (*GormReconciliationRepository)(nil)

// Save appends a reconciliation record
func (r *GormReconciliationRepository) Save(ctx context.Context, rec *ledger.Reconciliation) error {
	model := models.ReconciliationModelFromDomain(rec)
	return translateError(dbFromContext(ctx, r.db).Create(model).Error)
}

// FindAll finds reconciliation records matching the filter, newest first
func (r *GormReconciliationRepository) FindAll(ctx context.Context, filter ledger.ReconciliationFilter) ([]ledger.Reconciliation, error) {
	var recModels []models.ReconciliationModel
	query := r.applyConditions(dbFromContext(ctx, r.db).Model(&models.ReconciliationModel{}), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Order("created_at DESC").Find(&recModels).Error; err != nil {
		return nil, translateError(err)
	}

	recs := make([]ledger.Reconciliation, len(recModels))
	for i, model := range recModels {
		recs[i] = *model.ToDomain()
	}
	return recs, nil
}

// Count counts reconciliation records matching the filter
func (r *GormReconciliationRepository) Count(ctx context.Context, filter ledger.ReconciliationFilter) (int64, error) {
	var count int64
	query := r.applyConditions(dbFromContext(ctx, r.db).Model(&models.ReconciliationModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// FindByInvoice finds every record where the invoice took part on either
// side of the match
func (r *GormReconciliationRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]ledger.Reconciliation, error) {
	var recModels []models.ReconciliationModel
	if err := dbFromContext(ctx, r.db).
		Where("payment_id = ? OR charge_id = ?", invoiceID, invoiceID).
		Order("created_at ASC").
		Find(&recModels).Error; err != nil {
		return nil, translateError(err)
	}

	recs := make([]ledger.Reconciliation, len(recModels))
	for i, model := range recModels {
		recs[i] = *model.ToDomain()
	}
	return recs, nil
}

func (r *GormReconciliationRepository) applyConditions(query *gorm.DB, filter ledger.ReconciliationFilter) *gorm.DB {
	if filter.InvoiceID != nil {
		query = query.Where("payment_id = ? OR charge_id = ?", *filter.InvoiceID, *filter.InvoiceID)
	}
	if filter.ClientID != nil {
		// Records outlive their invoices, so matching one side is enough to
		// keep history visible after the other side is deleted.
		query = query.Where(
			"payment_id IN (SELECT id FROM invoices WHERE client_id = ?) OR charge_id IN (SELECT id FROM invoices WHERE client_id = ?)",
			*filter.ClientID, *filter.ClientID)
	}
	return query
}
