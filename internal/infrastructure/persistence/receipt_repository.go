package persistence

import (
	"context"

	"github.com/cobranza/backend/internal/domain/ledger"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReceiptRepository implements ledger.ReceiptRepository using GORM
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *Database) *GormReceiptRepository {
	return &GormReceiptRepository{db: db.DB}
}

var _ ledger.ReceiptRepository = (*GormReceiptRepository)(nil)

// FindByID finds a receipt by its ID
func (r *GormReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Receipt, error) {
	var model models.ReceiptModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByInvoice finds all receipts attached to an invoice
func (r *GormReceiptRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]ledger.Receipt, error) {
	var receiptModels []models.ReceiptModel
	if err := dbFromContext(ctx, r.db).
		Where("invoice_id = ?", invoiceID).
		Order("date ASC").
		Find(&receiptModels).Error; err != nil {
		return nil, translateError(err)
	}

	receipts := make([]ledger.Receipt, len(receiptModels))
	for i, model := range receiptModels {
		receipts[i] = *model.ToDomain()
	}
	return receipts, nil
}

// FindAll finds receipts matching the filter
func (r *GormReceiptRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Receipt, error) {
	var receiptModels []models.ReceiptModel
	query := dbFromContext(ctx, r.db).Model(&models.ReceiptModel{})

	if filter.Search != "" {
		query = query.Where("method ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Order("date DESC").Find(&receiptModels).Error; err != nil {
		return nil, translateError(err)
	}

	receipts := make([]ledger.Receipt, len(receiptModels))
	for i, model := range receiptModels {
		receipts[i] = *model.ToDomain()
	}
	return receipts, nil
}

// Save creates or updates a receipt
func (r *GormReceiptRepository) Save(ctx context.Context, receipt *ledger.Receipt) error {
	model := models.ReceiptModelFromDomain(receipt)
	return translateError(dbFromContext(ctx, r.db).Save(model).Error)
}

// Delete deletes a receipt
func (r *GormReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&models.ReceiptModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
