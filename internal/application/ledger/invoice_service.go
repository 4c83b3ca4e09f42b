package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/cobranza/backend/internal/domain/ledger"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceService is the invoice lifecycle: every create, update and delete
// runs in one transaction that persists the invoice, applies its balance
// delta to the owning client as a store-level atomic increment, and, for new
// payments, triggers a matching pass for that client. The matching pass
// itself persists through the raw match-state path, never through this
// service.
type InvoiceService struct {
	txManager   shared.TransactionManager
	invoiceRepo ledger.InvoiceRepository
	clientRepo  ledger.ClientRepository
	reconciler  Reconciler
	logger      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	txManager shared.TransactionManager,
	invoiceRepo ledger.InvoiceRepository,
	clientRepo ledger.ClientRepository,
	reconciler Reconciler,
	logger *zap.Logger,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		txManager:   txManager,
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		reconciler:  reconciler,
		logger:      logger,
	}
}

// Create validates and persists a new invoice, applies its delta to the
// owning client's balance, and for payments runs a matching pass before the
// transaction commits
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	currency := valueobject.DefaultCurrency
	if req.Currency != "" {
		currency = valueobject.Currency(req.Currency)
	}

	inv, err := ledger.NewInvoice(req.Number, req.ClientID, req.IssueDate, req.Amount, currency, ledger.InvoiceKind(req.Kind))
	if err != nil {
		return nil, err
	}

	err = s.txManager.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.clientRepo.FindByID(ctx, req.ClientID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("CLIENT_NOT_FOUND", "Owning client does not exist")
			}
			return err
		}

		existing, err := s.invoiceRepo.FindByNumber(ctx, req.Number)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if existing != nil {
			return shared.NewDomainError("ALREADY_EXISTS",
				fmt.Sprintf("Invoice with number %s already exists", req.Number))
		}

		if err := s.invoiceRepo.Save(ctx, inv); err != nil {
			return err
		}
		if err := s.clientRepo.AddToBalance(ctx, inv.ClientID, inv.Delta()); err != nil {
			return fmt.Errorf("failed to apply balance delta: %w", err)
		}

		if inv.Kind == ledger.InvoiceKindPayment {
			if _, err := s.reconciler.Reconcile(ctx, inv.ClientID, req.CreatedBy); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logDomainEvents(s.logger, inv)

	// A payment may have been partially or fully consumed by the matching
	// pass; reload so the response carries the final remaining and status.
	if inv.Kind == ledger.InvoiceKindPayment {
		reloaded, err := s.invoiceRepo.FindByID(ctx, inv.ID)
		if err != nil {
			return nil, err
		}
		inv = reloaded
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	repoFilter := ledger.InvoiceFilter{
		ClientID: filter.ClientID,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.Kind != "" {
		kind := ledger.InvoiceKind(filter.Kind)
		repoFilter.Kind = &kind
	}
	if filter.Status != "" {
		status := ledger.InvoiceStatus(filter.Status)
		repoFilter.Status = &status
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoiceRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, ToInvoiceResponse(&invoices[i]))
	}
	return responses, total, nil
}

// Update changes an invoice's number, issue date or owning client. Amount and
// kind are fixed at creation. Moving the invoice to another client reverts
// the delta on the old client and applies it to the new one, both as atomic
// increments inside the same transaction.
func (s *InvoiceService) Update(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	var inv *ledger.Invoice
	err := s.txManager.Transaction(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.invoiceRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Number != nil && *req.Number != inv.Number {
			existing, err := s.invoiceRepo.FindByNumber(ctx, *req.Number)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			if existing != nil {
				return shared.NewDomainError("ALREADY_EXISTS",
					fmt.Sprintf("Invoice with number %s already exists", *req.Number))
			}
			inv.Number = *req.Number
		}
		if req.IssueDate != nil {
			inv.SetIssueDate(*req.IssueDate)
		}

		if req.ClientID != nil && *req.ClientID != inv.ClientID {
			if _, err := s.clientRepo.FindByID(ctx, *req.ClientID); err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("CLIENT_NOT_FOUND", "Target client does not exist")
				}
				return err
			}

			oldClientID := inv.ClientID
			delta := inv.Delta()
			if err := inv.Rebind(*req.ClientID); err != nil {
				return err
			}
			if err := s.clientRepo.AddToBalance(ctx, oldClientID, delta.Neg()); err != nil {
				return fmt.Errorf("failed to revert balance delta: %w", err)
			}
			if err := s.clientRepo.AddToBalance(ctx, inv.ClientID, delta); err != nil {
				return fmt.Errorf("failed to apply balance delta: %w", err)
			}
		}

		return s.invoiceRepo.Save(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// Delete removes an invoice and reverts exactly its delta from the owning
// client's balance. Reconciliation records referencing the invoice stay in
// the append-only ledger.
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.txManager.Transaction(ctx, func(ctx context.Context) error {
		inv, err := s.invoiceRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := s.clientRepo.AddToBalance(ctx, inv.ClientID, inv.Delta().Neg()); err != nil {
			return fmt.Errorf("failed to revert balance delta: %w", err)
		}
		return s.invoiceRepo.Delete(ctx, id)
	})
}
