package ledger

import (
	"context"
	"fmt"

	"github.com/cobranza/backend/internal/domain/ledger"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reconciler triggers a matching pass for one client. The invoice lifecycle
// depends on this interface rather than on ReconciliationService directly.
type Reconciler interface {
	Reconcile(ctx context.Context, clientID uuid.UUID, appliedBy string) (*ReconcileResult, error)
}

// ReconciliationService runs the matching engine inside its transactional
// envelope: an exclusive lock on the client row, ordered locked loads of the
// client's open invoices, the in-memory matching pass, and the persistence of
// its outcome. Invoice state lands through the raw match-state path, so a
// matching pass can never re-trigger itself through the invoice lifecycle.
type ReconciliationService struct {
	txManager   shared.TransactionManager
	clientRepo  ledger.ClientRepository
	invoiceRepo ledger.InvoiceRepository
	reconRepo   ledger.ReconciliationRepository
	matchWriter ledger.MatchStateWriter
	matcher     *ledger.MatchService
	logger      *zap.Logger
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	txManager shared.TransactionManager,
	clientRepo ledger.ClientRepository,
	invoiceRepo ledger.InvoiceRepository,
	reconRepo ledger.ReconciliationRepository,
	matchWriter ledger.MatchStateWriter,
	logger *zap.Logger,
) *ReconciliationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReconciliationService{
		txManager:   txManager,
		clientRepo:  clientRepo,
		invoiceRepo: invoiceRepo,
		reconRepo:   reconRepo,
		matchWriter: matchWriter,
		matcher:     ledger.NewMatchService(),
		logger:      logger,
	}
}

var _ Reconciler = (*ReconciliationService)(nil)

// Reconcile matches the client's open payments against its open charges,
// oldest first. The whole pass runs in one transaction; any failure rolls
// back every record and state change of the attempt. Running it again with
// no intervening mutation produces no new records.
func (s *ReconciliationService) Reconcile(ctx context.Context, clientID uuid.UUID, appliedBy string) (*ReconcileResult, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}

	var result *ReconcileResult
	var touched []*ledger.Invoice
	err := s.txManager.Transaction(ctx, func(ctx context.Context) error {
		// The client row lock serializes concurrent passes for the same client.
		if _, err := s.clientRepo.FindByIDForUpdate(ctx, clientID); err != nil {
			return err
		}

		payments, err := s.invoiceRepo.FindOpenForUpdate(ctx, clientID, ledger.InvoiceKindPayment)
		if err != nil {
			return fmt.Errorf("failed to load open payments: %w", err)
		}
		charges, err := s.invoiceRepo.FindOpenForUpdate(ctx, clientID, ledger.InvoiceKindCharge)
		if err != nil {
			return fmt.Errorf("failed to load open charges: %w", err)
		}

		matched, err := s.matcher.Match(payments, charges, appliedBy)
		if err != nil {
			return err
		}

		for i := range matched.Reconciliations {
			if err := s.reconRepo.Save(ctx, &matched.Reconciliations[i]); err != nil {
				return fmt.Errorf("failed to save reconciliation: %w", err)
			}
		}
		for _, inv := range matched.Touched {
			if err := s.matchWriter.ApplyMatchState(ctx, inv.ID, inv.Remaining, inv.Status); err != nil {
				return fmt.Errorf("failed to write invoice state: %w", err)
			}
		}

		result = &ReconcileResult{
			ClientID:        clientID,
			Reconciliations: make([]ReconciliationResponse, 0, len(matched.Reconciliations)),
			InvoicesTouched: len(matched.Touched),
			TotalApplied:    matched.TotalApplied,
		}
		for i := range matched.Reconciliations {
			result.Reconciliations = append(result.Reconciliations, ToReconciliationResponse(&matched.Reconciliations[i]))
		}
		touched = matched.Touched
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Invoices closed by the pass carry their close events out of the commit.
	for _, inv := range touched {
		logDomainEvents(s.logger, inv)
	}

	s.logger.Info("reconciliation pass completed",
		zap.String("client_id", clientID.String()),
		zap.Int("records", len(result.Reconciliations)),
		zap.Int("invoices_touched", result.InvoicesTouched),
		zap.String("total_applied", result.TotalApplied.String()),
	)

	return result, nil
}

// List retrieves reconciliation records with filtering and pagination
func (s *ReconciliationService) List(ctx context.Context, filter ReconciliationListFilter) ([]ReconciliationResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	repoFilter := ledger.ReconciliationFilter{
		InvoiceID: filter.InvoiceID,
		ClientID:  filter.ClientID,
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	}

	records, err := s.reconRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.reconRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ReconciliationResponse, 0, len(records))
	for i := range records {
		responses = append(responses, ToReconciliationResponse(&records[i]))
	}
	return responses, total, nil
}

// ListByInvoice retrieves every reconciliation record referencing an invoice,
// as payment or as charge
func (s *ReconciliationService) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]ReconciliationResponse, error) {
	records, err := s.reconRepo.FindByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	responses := make([]ReconciliationResponse, 0, len(records))
	for i := range records {
		responses = append(responses, ToReconciliationResponse(&records[i]))
	}
	return responses, nil
}
