package file

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/digitalis-hr/pointage-backend-go/internal/pkg/storage"
)

// StoredFile identifies a persisted artifact: Path for storage-level
// operations, URL for responses and database rows.
type StoredFile struct {
	Path string
	URL  string
}

// FileService persists signature artifacts and resolves their public URLs.
type FileService interface {
	// StoreSignature decodes a base64 data URI and writes it under
	// signatures/<ownerKey>/<name>.<ext>.
	StoreSignature(ctx context.Context, ownerKey string, name string, dataURI string) (StoredFile, error)

	// Remove deletes a previously stored artifact. Callers use it to undo a
	// store whose surrounding transaction rolled back.
	Remove(ctx context.Context, path string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(fileStorage storage.FileStorage) FileService {
	return &fileServiceImpl{storage: fileStorage}
}

// StoreSignature implements FileService.
func (s *fileServiceImpl) StoreSignature(ctx context.Context, ownerKey string, name string, dataURI string) (StoredFile, error) {
	contentType, ext, data, err := decodeDataURI(dataURI)
	if err != nil {
		return StoredFile{}, err
	}

	path := fmt.Sprintf("signatures/%s/%s%s", ownerKey, name, ext)
	stored, err := s.storage.Upload(ctx, bytes.NewReader(data), path, contentType)
	if err != nil {
		return StoredFile{}, fmt.Errorf("failed to store signature: %w", err)
	}

	return StoredFile{Path: stored, URL: s.storage.URL(stored)}, nil
}

// Remove implements FileService.
func (s *fileServiceImpl) Remove(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

func decodeDataURI(dataURI string) (contentType string, ext string, data []byte, err error) {
	switch {
	case strings.HasPrefix(dataURI, "data:image/png;base64,"):
		contentType, ext = "image/png", ".png"
	case strings.HasPrefix(dataURI, "data:image/jpeg;base64,"):
		contentType, ext = "image/jpeg", ".jpg"
	default:
		return "", "", nil, fmt.Errorf("unsupported signature encoding")
	}

	encoded := dataURI[strings.Index(dataURI, ",")+1:]
	data, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to decode signature: %w", err)
	}

	return contentType, ext, data, nil
}
