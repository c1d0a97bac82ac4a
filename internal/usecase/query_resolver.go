package usecase

import (
	"context"
	"io"
	"strings"

	"github.com/ebaylookup/backend/internal/domain"
)

// QueryResolver turns raw user input into a single search query
type QueryResolver struct {
	decoder domain.BarcodeDecoder
}

// NewQueryResolver creates a resolver backed by the given barcode decoder
func NewQueryResolver(decoder domain.BarcodeDecoder) *QueryResolver {
	return &QueryResolver{decoder: decoder}
}

// ResolveText returns the trimmed input. Whitespace-only input yields ErrEmptyQuery.
func (r *QueryResolver) ResolveText(raw string) (string, error) {
	query := strings.TrimSpace(raw)
	if query == "" {
		return "", domain.ErrEmptyQuery
	}
	return query, nil
}

// ResolveImage decodes the first barcode in the upload. Its payload is used
// verbatim as the query; no fallback query is made up when none is found.
func (r *QueryResolver) ResolveImage(ctx context.Context, img io.Reader, filename string) (*domain.BarcodePayload, error) {
	payload, err := r.decoder.DecodeUpload(ctx, img, filename)
	if err != nil {
		return nil, err
	}
	if payload == nil || payload.Text == "" {
		return nil, domain.ErrNoBarcode
	}
	return payload, nil
}
