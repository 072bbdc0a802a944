package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/rajkumarptv/ChitLedger/internal/models"
)

// allowedTypes is the receipt content-type allowlist with the extension
// stored files get.
var allowedTypes = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// FileStore implements Store on the local filesystem. Files are served by
// the HTTP layer under baseURL.
type FileStore struct {
	dir     string
	baseURL string
}

// Ensure FileStore implements Store
var _ Store = (*FileStore)(nil)

// NewFileStore creates the receipts directory if needed.
func NewFileStore(dir, baseURL string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create receipts directory: %v", models.ErrStorage, err)
	}
	return &FileStore{dir: dir, baseURL: baseURL}, nil
}

// Dir returns the directory uploads land in.
func (f *FileStore) Dir() string {
	return f.dir
}

// Save writes the upload to disk under a generated name and returns the
// reference. The original filename is preserved only in the returned
// Receipt, never on disk.
func (f *FileStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (*models.Receipt, error) {
	ext, ok := allowedTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported receipt type %q", models.ErrValidation, contentType)
	}

	stored := uuid.New().String() + ext
	target := filepath.Join(f.dir, stored)

	out, err := os.Create(target)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create receipt file: %v", models.ErrStorage, err)
	}

	// Read one byte past the cap so an at-limit file passes and an
	// over-limit one is detected without buffering the whole upload.
	n, err := io.Copy(out, io.LimitReader(r, MaxReceiptSize+1))
	closeErr := out.Close()
	if err != nil {
		os.Remove(target)
		return nil, fmt.Errorf("%w: failed to write receipt: %v", models.ErrStorage, err)
	}
	if closeErr != nil {
		os.Remove(target)
		return nil, fmt.Errorf("%w: failed to write receipt: %v", models.ErrStorage, closeErr)
	}
	if n > MaxReceiptSize {
		os.Remove(target)
		return nil, fmt.Errorf("%w: receipt exceeds %d bytes", models.ErrValidation, MaxReceiptSize)
	}

	return &models.Receipt{
		URL:  path.Join(f.baseURL, stored),
		Name: filename,
	}, nil
}
