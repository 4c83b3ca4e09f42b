package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/cobranza/backend/internal/domain/ledger"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormClientRepository implements ledger.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *Database) *GormClientRepository {
	return &GormClientRepository{db: db.DB}
}

var _ ledger.ClientRepository = (*GormClientRepository)(nil)

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Client, error) {
	var model models.ClientModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a client by ID and locks the row for the rest of
// the enclosing transaction
func (r *GormClientRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Client, error) {
	var model models.ClientModel
	if err := dbFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByTaxID finds a client by tax identifier
func (r *GormClientRepository) FindByTaxID(ctx context.Context, taxID string) (*ledger.Client, error) {
	if taxID == "" {
		return nil, shared.NewDomainError("INVALID_TAX_ID", "Tax ID cannot be empty")
	}
	var model models.ClientModel
	if err := dbFromContext(ctx, r.db).
		Where("tax_id = ?", taxID).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll finds all clients matching the filter
func (r *GormClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Client, error) {
	var clientModels []models.ClientModel
	query := r.applyFilter(dbFromContext(ctx, r.db).Model(&models.ClientModel{}), filter)

	if err := query.Find(&clientModels).Error; err != nil {
		return nil, translateError(err)
	}

	clients := make([]ledger.Client, len(clientModels))
	for i, model := range clientModels {
		clients[i] = *model.ToDomain()
	}
	return clients, nil
}

// Count counts clients matching the filter
func (r *GormClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := dbFromContext(ctx, r.db).Model(&models.ClientModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *ledger.Client) error {
	model := models.ClientModelFromDomain(client)
	return translateError(dbFromContext(ctx, r.db).Omit("Invoices").Save(model).Error)
}

// Delete deletes a client; its invoices go with it by cascade
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&models.ClientModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddToBalance applies a signed delta to the stored balance as a single
// atomic increment
func (r *GormClientRepository) AddToBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	result := dbFromContext(ctx, r.db).
		Model(&models.ClientModel{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", delta),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ZeroBalances resets every stored balance, first step of the repair pass
func (r *GormClientRepository) ZeroBalances(ctx context.Context) error {
	return translateError(dbFromContext(ctx, r.db).
		Model(&models.ClientModel{}).
		Where("balance <> ?", decimal.Zero).
		UpdateColumns(map[string]interface{}{
			"balance":    decimal.Zero,
			"updated_at": time.Now(),
		}).Error)
}

// SetBalance writes an absolute balance, second step of the repair pass
func (r *GormClientRepository) SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	result := dbFromContext(ctx, r.db).
		Model(&models.ClientModel{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"balance":    balance,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormClientRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormClientRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR tax_id ILIKE ? OR email ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "country":
			query = query.Where("country = ?", value)
		case "city":
			query = query.Where("city = ?", value)
		case "source_file_id":
			query = query.Where("source_file_id = ?", value)
		}
	}

	return query
}
