package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/cobranza/backend/internal/domain/ledger"
	"github.com/google/uuid"
)

// ObjectStorageService defines the interface for object storage operations
// used for voucher scans and import files
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file.
	// Returns the upload URL and expiration time.
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file.
	// Returns the download URL and expiration time.
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ReceiptServiceConfig holds URL expiry configuration for voucher handling
type ReceiptServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultReceiptServiceConfig returns the default configuration
func DefaultReceiptServiceConfig() ReceiptServiceConfig {
	return ReceiptServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
	}
}

// ReceiptService records proof-of-payment vouchers against invoices. Vouchers
// are informational; they never feed the matching engine or the balance.
type ReceiptService struct {
	receiptRepo ledger.ReceiptRepository
	invoiceRepo ledger.InvoiceRepository
	storage     ObjectStorageService
	config      ReceiptServiceConfig
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(
	receiptRepo ledger.ReceiptRepository,
	invoiceRepo ledger.InvoiceRepository,
	storage ObjectStorageService,
	config ReceiptServiceConfig,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo: receiptRepo,
		invoiceRepo: invoiceRepo,
		storage:     storage,
		config:      config,
	}
}

// Create records a receipt against an existing invoice and returns a
// presigned URL where the caller can upload the voucher scan
func (s *ReceiptService) Create(ctx context.Context, req CreateReceiptRequest) (*ReceiptResponse, error) {
	if _, err := s.invoiceRepo.FindByID(ctx, req.InvoiceID); err != nil {
		return nil, err
	}

	receipt, err := ledger.NewReceipt(req.InvoiceID, req.Date, req.Amount, req.Method, "")
	if err != nil {
		return nil, err
	}

	voucherKey := fmt.Sprintf("vouchers/%s/%s", req.InvoiceID, receipt.ID)
	receipt.SetVoucherKey(voucherKey)

	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		return nil, err
	}

	uploadURL, _, err := s.storage.GenerateUploadURL(ctx, voucherKey, "application/octet-stream", s.config.UploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate voucher upload URL: %w", err)
	}

	response := ToReceiptResponse(receipt)
	response.VoucherURL = uploadURL
	return &response, nil
}

// GetByID retrieves a receipt, with a download URL when the voucher scan has
// been uploaded
func (s *ReceiptService) GetByID(ctx context.Context, id uuid.UUID) (*ReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToReceiptResponse(receipt)
	if receipt.VoucherKey != "" {
		exists, err := s.storage.ObjectExists(ctx, receipt.VoucherKey)
		if err != nil {
			return nil, fmt.Errorf("failed to check voucher object: %w", err)
		}
		if exists {
			url, _, err := s.storage.GenerateDownloadURL(ctx, receipt.VoucherKey, s.config.DownloadURLExpiry)
			if err != nil {
				return nil, fmt.Errorf("failed to generate voucher download URL: %w", err)
			}
			response.VoucherURL = url
		}
	}
	return &response, nil
}

// ListByInvoice retrieves all receipts recorded against an invoice
func (s *ReceiptService) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]ReceiptResponse, error) {
	receipts, err := s.receiptRepo.FindByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	responses := make([]ReceiptResponse, 0, len(receipts))
	for i := range receipts {
		responses = append(responses, ToReceiptResponse(&receipts[i]))
	}
	return responses, nil
}

// Delete removes a receipt record and its voucher object if one was uploaded
func (s *ReceiptService) Delete(ctx context.Context, id uuid.UUID) error {
	receipt, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if receipt.VoucherKey != "" {
		exists, err := s.storage.ObjectExists(ctx, receipt.VoucherKey)
		if err != nil {
			return fmt.Errorf("failed to check voucher object: %w", err)
		}
		if exists {
			if err := s.storage.DeleteObject(ctx, receipt.VoucherKey); err != nil {
				return fmt.Errorf("failed to delete voucher object: %w", err)
			}
		}
	}

	return s.receiptRepo.Delete(ctx, id)
}
