package persistence

import (
	"context"

	"github.com/cobranza/backend/internal/domain/ledger"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSourceFileRepository implements ledger.SourceFileRepository using GORM
type GormSourceFileRepository struct {
	db *gorm.DB
}

// NewGormSourceFileRepository creates a new GormSourceFileRepository
func NewGormSourceFileRepository(db *Database) *GormSourceFileRepository {
	return &GormSourceFileRepository{db: db.DB}
}

var _ ledger.SourceFileRepository = (*GormSourceFileRepository)(nil)

// FindByID finds a source file by its ID
func (r *GormSourceFileRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.SourceFile, error) {
	var model models.SourceFileModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll finds source files matching the filter
func (r *GormSourceFileRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.SourceFile, error) {
	var fileModels []models.SourceFileModel
	query := dbFromContext(ctx, r.db).Model(&models.SourceFileModel{})

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR uploaded_by ILIKE ?", searchPattern, searchPattern)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Order("loaded_at DESC").Find(&fileModels).Error; err != nil {
		return nil, translateError(err)
	}

	files := make([]ledger.SourceFile, len(fileModels))
	for i, model := range fileModels {
		files[i] = *model.ToDomain()
	}
	return files, nil
}

// Save creates or updates a source file
func (r *GormSourceFileRepository) Save(ctx context.Context, file *ledger.SourceFile) error {
	model := models.SourceFileModelFromDomain(file)
	return translateError(dbFromContext(ctx, r.db).Save(model).Error)
}

// Delete deletes a source file. Clients keep their attachment pointer as a
// dangling reference until reassigned.
func (r *GormSourceFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&models.SourceFileModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
