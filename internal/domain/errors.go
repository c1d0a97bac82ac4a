package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery is returned when the text input is empty after trimming
	ErrEmptyQuery = errors.New("search query is empty")

	// ErrInvalidLimit is returned when the result limit is outside [MinLimit, MaxLimit]
	ErrInvalidLimit = errors.New("result limit out of range")

	// ErrNoBarcode is returned when no barcode could be detected in an uploaded image
	ErrNoBarcode = errors.New("no barcode detected in image")

	// ErrUnsupportedImage is returned when the upload cannot be decoded as an image
	ErrUnsupportedImage = errors.New("unsupported or corrupt image")

	// ErrUploadTooLarge is returned when an upload exceeds the configured size
	ErrUploadTooLarge = errors.New("uploaded file too large")

	// ErrListingSiteFailure is returned when the request to the listings site fails
	ErrListingSiteFailure = errors.New("listings site request failed")

	// ErrNoResults is returned when a search succeeded but yielded no listings
	ErrNoResults = errors.New("no results found")
)

// StatusError reports a non-2xx response from the listings site
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d", ErrListingSiteFailure, e.StatusCode)
}

// Unwrap lets errors.Is match ErrListingSiteFailure
func (e *StatusError) Unwrap() error {
	return ErrListingSiteFailure
}

// ValidateLimit checks that limit lies within [MinLimit, MaxLimit]
func ValidateLimit(limit int) error {
	if limit < MinLimit || limit > MaxLimit {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidLimit, limit, MinLimit, MaxLimit)
	}
	return nil
}
