package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	ledgerapp "github.com/cobranza/backend/internal/application/ledger"
)

var _ ledgerapp.ObjectStorageService = (*StubObjectStorage)(nil)

// StubObjectStorage is an in-memory implementation of ObjectStorageService
// for development and tests. Upload URLs mark the key as existing.
type StubObjectStorage struct {
	// BaseURL is the base URL used for generated upload/download URLs
	BaseURL string

	mu   sync.Mutex
	keys map[string]bool
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
		keys:    make(map[string]bool),
	}
}

// GenerateUploadURL generates a stub presigned URL for uploading a file
func (s *StubObjectStorage) GenerateUploadURL(
	ctx context.Context,
	storageKey, contentType string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	s.mu.Lock()
	s.keys[storageKey] = true
	s.mu.Unlock()

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/upload/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)
	return url, expiresAt, nil
}

// GenerateDownloadURL generates a stub presigned URL for downloading a file
func (s *StubObjectStorage) GenerateDownloadURL(
	ctx context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)
	return url, expiresAt, nil
}

// DeleteObject removes the key from the in-memory set
func (s *StubObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	delete(s.keys, storageKey)
	s.mu.Unlock()
	return nil
}

// ObjectExists reports whether an upload URL was generated for the key
func (s *StubObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[storageKey], nil
}
