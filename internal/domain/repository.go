package domain

import (
	"context"
	"io"
)

// ListingFetcher runs a search against the listings site and extracts
// at most limit listings in document order.
// An empty slice with a nil error means the page had no matching items.
type ListingFetcher interface {
	Search(ctx context.Context, query string, limit int) ([]Listing, error)
}

// BarcodeDecoder extracts the first barcode found in an uploaded image.
// filename is the original upload name; only its extension is used.
type BarcodeDecoder interface {
	DecodeUpload(ctx context.Context, r io.Reader, filename string) (*BarcodePayload, error)
}
