// Package blob stores uploaded payment receipts and hands back stable
// references. The ledger never stores image bytes, only the (URL, filename)
// pair a store returns.
package blob

import (
	"context"
	"io"

	"github.com/rajkumarptv/ChitLedger/internal/models"
)

// MaxReceiptSize is the upload cap for a single receipt.
const MaxReceiptSize = 2 << 20 // 2 MiB

// Store defines the interface for receipt blob storage.
type Store interface {
	// Save persists the upload and returns its stable reference.
	// Oversize or unsupported uploads fail with ErrValidation; IO
	// failures with ErrStorage. Nothing is kept on failure.
	Save(ctx context.Context, filename, contentType string, r io.Reader) (*models.Receipt, error)
}
