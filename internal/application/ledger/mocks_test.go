package ledger

import (
	"context"
	"time"

	domain "github.com/cobranza/backend/internal/domain/ledger"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Transaction manager
// =============================================================================

// passthroughTxManager runs the unit of work directly; the rollback semantics
// belong to the store and are covered by the repository tests
type passthroughTxManager struct{}

func (passthroughTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// =============================================================================
// Mock repositories
// =============================================================================

// MockClientRepository is a mock implementation of ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) FindByTaxID(ctx context.Context, taxID string) (*domain.Client, error) {
	args := m.Called(ctx, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]domain.Client, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) AddToBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockClientRepository) ZeroBalances(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClientRepository) SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	args := m.Called(ctx, id, balance)
	return args.Error(0)
}

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter domain.InvoiceFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindOpenForUpdate(ctx context.Context, clientID uuid.UUID, kind domain.InvoiceKind) ([]*domain.Invoice, error) {
	args := m.Called(ctx, clientID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) BalanceTotals(ctx context.Context) ([]domain.BalanceTotal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceTotal), args.Error(1)
}

func (m *MockInvoiceRepository) FindOpenWithClient(ctx context.Context) ([]domain.OpenInvoiceRef, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpenInvoiceRef), args.Error(1)
}

// MockReconciliationRepository is a mock implementation of ReconciliationRepository
type MockReconciliationRepository struct {
	mock.Mock
}

func (m *MockReconciliationRepository) Save(ctx context.Context, rec *domain.Reconciliation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockReconciliationRepository) FindAll(ctx context.Context, filter domain.ReconciliationFilter) ([]domain.Reconciliation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Reconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) Count(ctx context.Context, filter domain.ReconciliationFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReconciliationRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.Reconciliation, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]domain.Reconciliation), args.Error(1)
}

// MockMatchStateWriter is a mock implementation of MatchStateWriter
type MockMatchStateWriter struct {
	mock.Mock
}

func (m *MockMatchStateWriter) ApplyMatchState(ctx context.Context, invoiceID uuid.UUID, remaining decimal.Decimal, status domain.InvoiceStatus) error {
	args := m.Called(ctx, invoiceID, remaining, status)
	return args.Error(0)
}

// MockReceiptRepository is a mock implementation of ReceiptRepository
type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.Receipt, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindAll(ctx context.Context, filter shared.Filter) ([]domain.Receipt, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) Save(ctx context.Context, receipt *domain.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSourceFileRepository is a mock implementation of SourceFileRepository
type MockSourceFileRepository struct {
	mock.Mock
}

func (m *MockSourceFileRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.SourceFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SourceFile), args.Error(1)
}

func (m *MockSourceFileRepository) FindAll(ctx context.Context, filter shared.Filter) ([]domain.SourceFile, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.SourceFile), args.Error(1)
}

func (m *MockSourceFileRepository) Save(ctx context.Context, file *domain.SourceFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockSourceFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =============================================================================
// Mock collaborators
// =============================================================================

// MockReconciler is a mock implementation of Reconciler
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Reconcile(ctx context.Context, clientID uuid.UUID, appliedBy string) (*ReconcileResult, error) {
	args := m.Called(ctx, clientID, appliedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ReconcileResult), args.Error(1)
}

// MockObjectStorageService is a mock implementation of ObjectStorageService
type MockObjectStorageService struct {
	mock.Mock
}

func (m *MockObjectStorageService) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorageService) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorageService) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorageService) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

// MockReportCache is a mock implementation of ReportCache
type MockReportCache struct {
	mock.Mock
}

func (m *MockReportCache) GetAgingReport(ctx context.Context, key string) (*AgingReport, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AgingReport), args.Error(1)
}

func (m *MockReportCache) SetAgingReport(ctx context.Context, key string, report *AgingReport, ttl time.Duration) error {
	args := m.Called(ctx, key, report, ttl)
	return args.Error(0)
}
