package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/cobranza/backend/internal/domain/ledger"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SourceFileService registers uploaded import files and hands out presigned
// URLs for their content. Clients created from an import keep a pointer back
// to the file.
type SourceFileService struct {
	fileRepo   ledger.SourceFileRepository
	clientRepo ledger.ClientRepository
	storage    ObjectStorageService
	config     ReceiptServiceConfig
}

// NewSourceFileService creates a new SourceFileService
func NewSourceFileService(
	fileRepo ledger.SourceFileRepository,
	clientRepo ledger.ClientRepository,
	storage ObjectStorageService,
	config ReceiptServiceConfig,
) *SourceFileService {
	return &SourceFileService{
		fileRepo:   fileRepo,
		clientRepo: clientRepo,
		storage:    storage,
		config:     config,
	}
}

// Create registers an import file and returns a presigned upload URL for its
// content
func (s *SourceFileService) Create(ctx context.Context, req CreateSourceFileRequest) (*SourceFileResponse, error) {
	uploadedBy := req.UploadedBy
	if uploadedBy == "" {
		uploadedBy = ledger.SystemUser
	}

	file, err := ledger.NewSourceFile(req.Name, uploadedBy, "", time.Now())
	if err != nil {
		return nil, err
	}
	file.ObjectKey = fmt.Sprintf("imports/%s/%s", file.LoadedAt.Format("2006-01-02"), file.ID)

	if err := s.fileRepo.Save(ctx, file); err != nil {
		return nil, err
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	uploadURL, _, err := s.storage.GenerateUploadURL(ctx, file.ObjectKey, contentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload URL: %w", err)
	}

	response := ToSourceFileResponse(file)
	response.UploadURL = uploadURL
	return &response, nil
}

// GetByID retrieves an import file record with a download URL for its content
func (s *SourceFileService) GetByID(ctx context.Context, id uuid.UUID) (*SourceFileResponse, error) {
	file, err := s.fileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToSourceFileResponse(file)
	exists, err := s.storage.ObjectExists(ctx, file.ObjectKey)
	if err != nil {
		return nil, fmt.Errorf("failed to check file object: %w", err)
	}
	if exists {
		url, _, err := s.storage.GenerateDownloadURL(ctx, file.ObjectKey, s.config.DownloadURLExpiry)
		if err != nil {
			return nil, fmt.Errorf("failed to generate download URL: %w", err)
		}
		response.DownloadURL = url
	}
	return &response, nil
}

// List retrieves import file records, newest first
func (s *SourceFileService) List(ctx context.Context, page, pageSize int) ([]SourceFileResponse, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	files, err := s.fileRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]SourceFileResponse, 0, len(files))
	for i := range files {
		responses = append(responses, ToSourceFileResponse(&files[i]))
	}
	return responses, nil
}

// AttachToClient points a client back at the import file it was loaded from
func (s *SourceFileService) AttachToClient(ctx context.Context, fileID, clientID uuid.UUID) error {
	if _, err := s.fileRepo.FindByID(ctx, fileID); err != nil {
		return err
	}

	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return err
	}

	client.AttachSourceFile(fileID)
	return s.clientRepo.Save(ctx, client)
}

// Delete removes an import file record and its stored object. Clients that
// reference the file keep their data; only the pointer dangles to null via
// the store's on-delete rule.
func (s *SourceFileService) Delete(ctx context.Context, id uuid.UUID) error {
	file, err := s.fileRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	exists, err := s.storage.ObjectExists(ctx, file.ObjectKey)
	if err != nil {
		return fmt.Errorf("failed to check file object: %w", err)
	}
	if exists {
		if err := s.storage.DeleteObject(ctx, file.ObjectKey); err != nil {
			return fmt.Errorf("failed to delete file object: %w", err)
		}
	}

	return s.fileRepo.Delete(ctx, id)
}
