package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/digitalis-hr/pointage-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileService(t *testing.T) (FileService, string) {
	t.Helper()
	dir := t.TempDir()
	local, err := storage.NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)
	return NewFileService(local), dir
}

func TestStoreSignature_PNG(t *testing.T) {
	svc, dir := newTestFileService(t)

	// "hello" base64-encoded
	stored, err := svc.StoreSignature(context.Background(), "worker-1", "2026-03-02-in", "data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)

	assert.Equal(t, "signatures/worker-1/2026-03-02-in.png", stored.Path)
	assert.Equal(t, "http://localhost:8080/uploads/signatures/worker-1/2026-03-02-in.png", stored.URL)

	data, err := os.ReadFile(filepath.Join(dir, "signatures", "worker-1", "2026-03-02-in.png"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestRemove_DeletesStoredSignature(t *testing.T) {
	svc, dir := newTestFileService(t)

	stored, err := svc.StoreSignature(context.Background(), "worker-1", "2026-03-02-in", "data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), stored.Path))

	_, err = os.Stat(filepath.Join(dir, "signatures", "worker-1", "2026-03-02-in.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestStoreSignature_JPEG(t *testing.T) {
	svc, _ := newTestFileService(t)

	stored, err := svc.StoreSignature(context.Background(), "worker-1", "2026-03-02-out", "data:image/jpeg;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/signatures/worker-1/2026-03-02-out.jpg", stored.URL)
}

func TestStoreSignature_RejectsUnsupportedEncoding(t *testing.T) {
	svc, _ := newTestFileService(t)

	_, err := svc.StoreSignature(context.Background(), "worker-1", "2026-03-02-in", "data:image/gif;base64,aGVsbG8=")
	assert.Error(t, err)

	_, err = svc.StoreSignature(context.Background(), "worker-1", "2026-03-02-in", "plain text")
	assert.Error(t, err)
}

func TestStoreSignature_RejectsBrokenBase64(t *testing.T) {
	svc, _ := newTestFileService(t)

	_, err := svc.StoreSignature(context.Background(), "worker-1", "2026-03-02-in", "data:image/png;base64,!!!not-base64!!!")
	assert.Error(t, err)
}
