package ledger

import (
	"context"
	"testing"
	"time"

	domain "github.com/cobranza/backend/internal/domain/ledger"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReceiptService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("records a receipt and returns a voucher upload URL", func(t *testing.T) {
		receiptRepo := new(MockReceiptRepository)
		invoiceRepo := new(MockInvoiceRepository)
		storage := new(MockObjectStorageService)
		service := NewReceiptService(receiptRepo, invoiceRepo, storage, DefaultReceiptServiceConfig())

		inv, err := domain.NewInvoice("P-1", uuid.New(), time.Now(), decimal.NewFromInt(50), valueobject.USD, domain.InvoiceKindPayment)
		require.NoError(t, err)

		invoiceRepo.On("FindByID", ctx, inv.ID).Return(inv, nil)
		receiptRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Receipt")).Return(nil)
		storage.On("GenerateUploadURL", ctx, mock.AnythingOfType("string"), "application/octet-stream", 15*time.Minute).
			Return("https://storage.test/upload", time.Now().Add(15*time.Minute), nil)

		resp, err := service.Create(ctx, CreateReceiptRequest{
			InvoiceID: inv.ID,
			Date:      time.Now(),
			Amount:    decimal.NewFromInt(50),
			Method:    "transfer",
		})

		require.NoError(t, err)
		assert.Equal(t, inv.ID, resp.InvoiceID)
		assert.NotEmpty(t, resp.VoucherKey)
		assert.Equal(t, "https://storage.test/upload", resp.VoucherURL)
		receiptRepo.AssertExpectations(t)
	})

	t.Run("unknown invoice surfaces not found", func(t *testing.T) {
		receiptRepo := new(MockReceiptRepository)
		invoiceRepo := new(MockInvoiceRepository)
		service := NewReceiptService(receiptRepo, invoiceRepo, new(MockObjectStorageService), DefaultReceiptServiceConfig())

		id := uuid.New()
		invoiceRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, CreateReceiptRequest{
			InvoiceID: id,
			Date:      time.Now(),
			Amount:    decimal.NewFromInt(50),
			Method:    "transfer",
		})

		require.ErrorIs(t, err, shared.ErrNotFound)
		receiptRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestReceiptService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("includes a download URL once the voucher was uploaded", func(t *testing.T) {
		receiptRepo := new(MockReceiptRepository)
		storage := new(MockObjectStorageService)
		service := NewReceiptService(receiptRepo, new(MockInvoiceRepository), storage, DefaultReceiptServiceConfig())

		receipt, err := domain.NewReceipt(uuid.New(), time.Now(), decimal.NewFromInt(50), "cash", "vouchers/x/y")
		require.NoError(t, err)

		receiptRepo.On("FindByID", ctx, receipt.ID).Return(receipt, nil)
		storage.On("ObjectExists", ctx, "vouchers/x/y").Return(true, nil)
		storage.On("GenerateDownloadURL", ctx, "vouchers/x/y", time.Hour).
			Return("https://storage.test/download", time.Now().Add(time.Hour), nil)

		resp, err := service.GetByID(ctx, receipt.ID)

		require.NoError(t, err)
		assert.Equal(t, "https://storage.test/download", resp.VoucherURL)
	})

	t.Run("missing voucher object yields no URL", func(t *testing.T) {
		receiptRepo := new(MockReceiptRepository)
		storage := new(MockObjectStorageService)
		service := NewReceiptService(receiptRepo, new(MockInvoiceRepository), storage, DefaultReceiptServiceConfig())

		receipt, err := domain.NewReceipt(uuid.New(), time.Now(), decimal.NewFromInt(50), "cash", "vouchers/x/y")
		require.NoError(t, err)

		receiptRepo.On("FindByID", ctx, receipt.ID).Return(receipt, nil)
		storage.On("ObjectExists", ctx, "vouchers/x/y").Return(false, nil)

		resp, err := service.GetByID(ctx, receipt.ID)

		require.NoError(t, err)
		assert.Empty(t, resp.VoucherURL)
	})
}

func TestReceiptService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the voucher object along with the record", func(t *testing.T) {
		receiptRepo := new(MockReceiptRepository)
		storage := new(MockObjectStorageService)
		service := NewReceiptService(receiptRepo, new(MockInvoiceRepository), storage, DefaultReceiptServiceConfig())

		receipt, err := domain.NewReceipt(uuid.New(), time.Now(), decimal.NewFromInt(50), "cash", "vouchers/x/y")
		require.NoError(t, err)

		receiptRepo.On("FindByID", ctx, receipt.ID).Return(receipt, nil)
		storage.On("ObjectExists", ctx, "vouchers/x/y").Return(true, nil)
		storage.On("DeleteObject", ctx, "vouchers/x/y").Return(nil)
		receiptRepo.On("Delete", ctx, receipt.ID).Return(nil)

		require.NoError(t, service.Delete(ctx, receipt.ID))
		storage.AssertExpectations(t)
		receiptRepo.AssertExpectations(t)
	})
}
