package usecase

import (
	"context"
	"io"
	"log"

	"github.com/ebaylookup/backend/internal/domain"
)

// LookupServiceConfig holds configuration for the lookup service
type LookupServiceConfig struct {
	DefaultLimit       int
	EnableDebugLogging bool
}

// LookupService resolves a query from user input and runs the listing search.
// It holds no mutable state, so one instance serves concurrent requests.
type LookupService struct {
	resolver     *QueryResolver
	fetcher      domain.ListingFetcher
	defaultLimit int
	debug        bool
}

// NewLookupService creates a new lookup service with dependencies
func NewLookupService(
	fetcher domain.ListingFetcher,
	decoder domain.BarcodeDecoder,
	config LookupServiceConfig,
) *LookupService {
	defaultLimit := config.DefaultLimit
	if domain.ValidateLimit(defaultLimit) != nil {
		defaultLimit = domain.DefaultLimit
	}

	return &LookupService{
		resolver:     NewQueryResolver(decoder),
		fetcher:      fetcher,
		defaultLimit: defaultLimit,
		debug:        config.EnableDebugLogging,
	}
}

// DefaultLimit is the limit applied when a request does not carry one
func (s *LookupService) DefaultLimit() int {
	return s.defaultLimit
}

// SearchText searches using typed keywords, EAN or UPC text.
// A zero limit means the default limit.
func (s *LookupService) SearchText(ctx context.Context, raw string, limit int) (*domain.SearchResult, error) {
	limit, err := s.resolveLimit(limit)
	if err != nil {
		return nil, err
	}

	query, err := s.resolver.ResolveText(raw)
	if err != nil {
		return nil, err
	}

	return s.search(ctx, &domain.SearchResult{
		Query:  query,
		Source: domain.SourceText,
		Limit:  limit,
	})
}

// SearchImage decodes a barcode from an uploaded image and searches for its payload.
// Nothing is fetched when no barcode is found.
func (s *LookupService) SearchImage(ctx context.Context, img io.Reader, filename string, limit int) (*domain.SearchResult, error) {
	limit, err := s.resolveLimit(limit)
	if err != nil {
		return nil, err
	}

	payload, err := s.resolver.ResolveImage(ctx, img, filename)
	if err != nil {
		log.Printf("[LOOKUP] Could not resolve query from image %q: %v", filename, err)
		return nil, err
	}

	return s.search(ctx, &domain.SearchResult{
		Query:   payload.Text,
		Source:  domain.SourceBarcode,
		Limit:   limit,
		Barcode: payload,
	})
}

// DecodeBarcode only resolves the query from an image, without searching
func (s *LookupService) DecodeBarcode(ctx context.Context, img io.Reader, filename string) (*domain.BarcodePayload, error) {
	return s.resolver.ResolveImage(ctx, img, filename)
}

// search runs the fetch and fills in the listings.
// Zero extracted listings is reported as ErrNoResults, not as a network failure.
func (s *LookupService) search(ctx context.Context, result *domain.SearchResult) (*domain.SearchResult, error) {
	if s.debug {
		log.Printf("[LOOKUP] Searching %s query %q with limit %d", result.Source, result.Query, result.Limit)
	}

	listings, err := s.fetcher.Search(ctx, result.Query, result.Limit)
	if err != nil {
		return nil, err
	}

	if len(listings) == 0 {
		log.Printf("[LOOKUP] No listings for query: %q", result.Query)
		return nil, domain.ErrNoResults
	}

	result.Listings = listings
	return result, nil
}

func (s *LookupService) resolveLimit(limit int) (int, error) {
	if limit == 0 {
		return s.defaultLimit, nil
	}
	if err := domain.ValidateLimit(limit); err != nil {
		return 0, err
	}
	return limit, nil
}
