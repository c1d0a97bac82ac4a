package usecase

import (
	"context"
	"io"

	"github.com/ebaylookup/backend/internal/domain"
)

// MockListingFetcher is a mock implementation of domain.ListingFetcher
type MockListingFetcher struct {
	listings    []domain.Listing
	searchError error
	calls       int
	gotQuery    string
	gotLimit    int
}

func NewMockListingFetcher() *MockListingFetcher {
	return &MockListingFetcher{}
}

func (m *MockListingFetcher) Search(ctx context.Context, query string, limit int) ([]domain.Listing, error) {
	m.calls++
	m.gotQuery = query
	m.gotLimit = limit
	if m.searchError != nil {
		return nil, m.searchError
	}
	return m.listings, nil
}

// MockBarcodeDecoder is a mock implementation of domain.BarcodeDecoder
type MockBarcodeDecoder struct {
	payload     *domain.BarcodePayload
	decodeError error
	calls       int
	gotFilename string
	gotBytes    []byte
}

func NewMockBarcodeDecoder() *MockBarcodeDecoder {
	return &MockBarcodeDecoder{}
}

func (m *MockBarcodeDecoder) DecodeUpload(ctx context.Context, r io.Reader, filename string) (*domain.BarcodePayload, error) {
	m.calls++
	m.gotFilename = filename
	m.gotBytes, _ = io.ReadAll(r)
	if m.decodeError != nil {
		return nil, m.decodeError
	}
	return m.payload, nil
}
