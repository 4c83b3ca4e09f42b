package ledger

import (
	"context"
	"testing"
	"time"

	domain "github.com/cobranza/backend/internal/domain/ledger"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSourceFileService_Create(t *testing.T) {
	ctx := context.Background()

	fileRepo := new(MockSourceFileRepository)
	storage := new(MockObjectStorageService)
	service := NewSourceFileService(fileRepo, new(MockClientRepository), storage, DefaultReceiptServiceConfig())

	fileRepo.On("Save", ctx, mock.AnythingOfType("*ledger.SourceFile")).Return(nil)
	storage.On("GenerateUploadURL", ctx, mock.AnythingOfType("string"), "text/csv", 15*time.Minute).
		Return("https://storage.test/upload", time.Now().Add(15*time.Minute), nil)

	resp, err := service.Create(ctx, CreateSourceFileRequest{
		Name:        "clientes-marzo.csv",
		ContentType: "text/csv",
		UploadedBy:  "operator",
	})

	require.NoError(t, err)
	assert.Equal(t, "clientes-marzo.csv", resp.Name)
	assert.Equal(t, "operator", resp.UploadedBy)
	assert.NotEmpty(t, resp.ObjectKey)
	assert.Equal(t, "https://storage.test/upload", resp.UploadURL)
}

func TestSourceFileService_AttachToClient(t *testing.T) {
	ctx := context.Background()

	t.Run("points the client at its import file", func(t *testing.T) {
		fileRepo := new(MockSourceFileRepository)
		clientRepo := new(MockClientRepository)
		service := NewSourceFileService(fileRepo, clientRepo, new(MockObjectStorageService), DefaultReceiptServiceConfig())

		file, err := domain.NewSourceFile("clientes.csv", "operator", "imports/x", time.Now())
		require.NoError(t, err)
		client := newTestClient(t)

		fileRepo.On("FindByID", ctx, file.ID).Return(file, nil)
		clientRepo.On("FindByID", ctx, client.ID).Return(client, nil)
		clientRepo.On("Save", ctx, client).Return(nil)

		require.NoError(t, service.AttachToClient(ctx, file.ID, client.ID))
		require.NotNil(t, client.SourceFileID)
		assert.Equal(t, file.ID, *client.SourceFileID)
	})

	t.Run("unknown file surfaces not found", func(t *testing.T) {
		fileRepo := new(MockSourceFileRepository)
		clientRepo := new(MockClientRepository)
		service := NewSourceFileService(fileRepo, clientRepo, new(MockObjectStorageService), DefaultReceiptServiceConfig())

		id := uuid.New()
		fileRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		require.ErrorIs(t, service.AttachToClient(ctx, id, uuid.New()), shared.ErrNotFound)
		clientRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
