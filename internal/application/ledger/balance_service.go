package ledger

import (
	"context"
	"fmt"

	"github.com/cobranza/backend/internal/domain/ledger"
	"github.com/cobranza/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BalanceService is the repair pass for client balances. The running balance
// is normally maintained incrementally by the invoice lifecycle; this service
// re-derives it from scratch when drift is suspected. It never touches
// invoice state or reconciliation records.
type BalanceService struct {
	txManager   shared.TransactionManager
	clientRepo  ledger.ClientRepository
	invoiceRepo ledger.InvoiceRepository
	logger      *zap.Logger
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(
	txManager shared.TransactionManager,
	clientRepo ledger.ClientRepository,
	invoiceRepo ledger.InvoiceRepository,
	logger *zap.Logger,
) *BalanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BalanceService{
		txManager:   txManager,
		clientRepo:  clientRepo,
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// RecomputeAll resets every client balance to zero, then writes back each
// client's balance as the sum of its invoice deltas. The whole pass is one
// transaction, so readers never observe the zeroed intermediate state.
// Returns the number of clients whose balance was written.
func (s *BalanceService) RecomputeAll(ctx context.Context) (int, error) {
	var written int
	err := s.txManager.Transaction(ctx, func(ctx context.Context) error {
		if err := s.clientRepo.ZeroBalances(ctx); err != nil {
			return fmt.Errorf("failed to zero balances: %w", err)
		}

		totals, err := s.invoiceRepo.BalanceTotals(ctx)
		if err != nil {
			return fmt.Errorf("failed to derive balance totals: %w", err)
		}

		for _, total := range totals {
			if err := s.clientRepo.SetBalance(ctx, total.ClientID, total.Balance); err != nil {
				return fmt.Errorf("failed to write balance for client %s: %w", total.ClientID, err)
			}
		}
		written = len(totals)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("balance recompute completed", zap.Int("clients_written", written))
	return written, nil
}
