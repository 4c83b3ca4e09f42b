package ledger

import (
	"time"

	"github.com/cobranza/backend/internal/domain/shared"
)

// SourceFile records an uploaded import file (e.g. a client/invoice batch
// spreadsheet). Clients can point back to the file they were loaded from.
type SourceFile struct {
	shared.BaseEntity
	Name       string    `json:"name"`
	LoadedAt   time.Time `json:"loaded_at"`
	UploadedBy string    `json:"uploaded_by"`
	ObjectKey  string    `json:"object_key"`
}

// NewSourceFile creates a source file record
func NewSourceFile(name, uploadedBy, objectKey string, loadedAt time.Time) (*SourceFile, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "File name cannot be empty")
	}
	if len(name) > 255 {
		return nil, shared.NewDomainError("INVALID_NAME", "File name cannot exceed 255 characters")
	}
	if uploadedBy == "" {
		return nil, shared.NewDomainError("INVALID_USER", "Uploading user cannot be empty")
	}

	return &SourceFile{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		LoadedAt:   loadedAt,
		UploadedBy: uploadedBy,
		ObjectKey:  objectKey,
	}, nil
}
