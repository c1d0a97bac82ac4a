package http

import (
	"errors"
	"net/http"

	"github.com/ebaylookup/backend/internal/domain"
)

// Error kinds reported to clients
const (
	kindInput      = "input"
	kindNetwork    = "network"
	kindNoResults  = "no_results"
	kindUnexpected = "unexpected"
)

var errNotConfigured = errors.New("lookup service not configured")

// classifyError maps an error to its HTTP status, kind and user-facing message
func classifyError(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		return http.StatusBadRequest, kindInput, "Please enter an EAN, UPC, or keywords to search."
	case errors.Is(err, domain.ErrInvalidLimit):
		return http.StatusBadRequest, kindInput, err.Error()
	case errors.Is(err, errMissingImage):
		return http.StatusBadRequest, kindInput, "Please upload a product image."
	case errors.Is(err, domain.ErrNoBarcode):
		return http.StatusUnprocessableEntity, kindInput, "No barcode detected in the image. Please enter a text query instead."
	case errors.Is(err, domain.ErrUnsupportedImage):
		return http.StatusUnsupportedMediaType, kindInput, "The uploaded file is not a supported image."
	case errors.Is(err, domain.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge, kindInput, "The uploaded image is too large."
	case errors.Is(err, domain.ErrNoResults):
		return http.StatusNotFound, kindNoResults, "No results found."
	case errors.Is(err, domain.ErrListingSiteFailure):
		return http.StatusBadGateway, kindNetwork, "Error during search: " + err.Error()
	case errors.Is(err, errNotConfigured):
		return http.StatusServiceUnavailable, kindUnexpected, "Lookup service not configured"
	default:
		return http.StatusInternalServerError, kindUnexpected, "Error during search: " + err.Error()
	}
}
