package persistence

import (
	"context"

	"github.com/cobranza/backend/internal/domain/shared"
	"gorm.io/gorm"
)

type txKey struct{}

// GormTransactionManager implements shared.TransactionManager on a GORM
// connection. The transaction handle travels in the context; repositories
// created from the same Database automatically join it via dbFromContext.
type GormTransactionManager struct {
	db *gorm.DB
}

// NewGormTransactionManager creates a transaction manager for the connection
func NewGormTransactionManager(db *Database) *GormTransactionManager {
	return &GormTransactionManager{db: db.DB}
}

var _ shared.TransactionManager = (*GormTransactionManager)(nil)

// Transaction runs fn in a store transaction. A nested call joins the
// enclosing transaction instead of opening a second one, so a matching pass
// triggered inside an invoice create commits or rolls back with it.
func (m *GormTransactionManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func txFromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txKey{}).(*gorm.DB)
	return tx
}

// dbFromContext resolves the connection for a repository call: the enclosing
// transaction when one is in flight, the base connection otherwise.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return fallback.WithContext(ctx)
}
