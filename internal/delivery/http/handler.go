package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/ebaylookup/backend/internal/domain"
	"github.com/gin-gonic/gin"
)

const imageField = "image"

var errMissingImage = errors.New("no image uploaded")

// LookupService is what the handlers need from the usecase layer
type LookupService interface {
	SearchText(ctx context.Context, raw string, limit int) (*domain.SearchResult, error)
	SearchImage(ctx context.Context, img io.Reader, filename string, limit int) (*domain.SearchResult, error)
	DecodeBarcode(ctx context.Context, img io.Reader, filename string) (*domain.BarcodePayload, error)
	DefaultLimit() int
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	lookup LookupService
}

// NewHandler creates a new HTTP handler
func NewHandler(lookup LookupService) *Handler {
	return &Handler{lookup: lookup}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "ebay-lookup",
		"version": "1.0.0",
	})
}

// pageData feeds templates/index.html
type pageData struct {
	Query    string
	Limit    int
	MinLimit int
	MaxLimit int
	Result   *domain.SearchResult
	Message  string
	IsError  bool
}

func (h *Handler) newPage(query string, limit int) pageData {
	if limit == 0 && h.lookup != nil {
		limit = h.lookup.DefaultLimit()
	}
	if limit == 0 {
		limit = domain.DefaultLimit
	}
	return pageData{
		Query:    query,
		Limit:    limit,
		MinLimit: domain.MinLimit,
		MaxLimit: domain.MaxLimit,
	}
}

// Index renders the search page
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.newPage("", 0))
}

// SearchPage handles the text search form
func (h *Handler) SearchPage(c *gin.Context) {
	query := c.PostForm("query")
	limit, err := parseLimit(c.PostForm("limit"))
	page := h.newPage(query, limit)
	if err != nil {
		h.renderError(c, page, err)
		return
	}
	if h.lookup == nil {
		h.renderError(c, page, errNotConfigured)
		return
	}

	result, err := h.lookup.SearchText(c.Request.Context(), query, limit)
	if err != nil {
		h.renderError(c, page, err)
		return
	}

	page.Result = result
	page.Limit = result.Limit
	c.HTML(http.StatusOK, "index.html", page)
}

// SearchImagePage handles the image upload form
func (h *Handler) SearchImagePage(c *gin.Context) {
	limit, err := parseLimit(c.PostForm("limit"))
	page := h.newPage("", limit)
	if err != nil {
		h.renderError(c, page, err)
		return
	}
	if h.lookup == nil {
		h.renderError(c, page, errNotConfigured)
		return
	}

	var result *domain.SearchResult
	err = withUpload(c, func(file multipart.File, filename string) error {
		var searchErr error
		result, searchErr = h.lookup.SearchImage(c.Request.Context(), file, filename, limit)
		return searchErr
	})
	if err != nil {
		h.renderError(c, page, err)
		return
	}

	page.Query = result.Query
	page.Result = result
	page.Limit = result.Limit
	c.HTML(http.StatusOK, "index.html", page)
}

// SearchListings handles JSON search requests
func (h *Handler) SearchListings(c *gin.Context) {
	if h.lookup == nil {
		h.respondError(c, errNotConfigured)
		return
	}

	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("invalid request body: %v", err),
			"kind":  kindInput,
		})
		return
	}

	result, err := h.lookup.SearchText(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SearchListingsByImage handles multipart image search requests
func (h *Handler) SearchListingsByImage(c *gin.Context) {
	if h.lookup == nil {
		h.respondError(c, errNotConfigured)
		return
	}

	limit, err := parseLimit(c.PostForm("limit"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	var result *domain.SearchResult
	err = withUpload(c, func(file multipart.File, filename string) error {
		var searchErr error
		result, searchErr = h.lookup.SearchImage(c.Request.Context(), file, filename, limit)
		return searchErr
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DecodeBarcode returns the barcode payload of an uploaded image without searching
func (h *Handler) DecodeBarcode(c *gin.Context) {
	if h.lookup == nil {
		h.respondError(c, errNotConfigured)
		return
	}

	var payload *domain.BarcodePayload
	err := withUpload(c, func(file multipart.File, filename string) error {
		var decodeErr error
		payload, decodeErr = h.lookup.DecodeBarcode(c.Request.Context(), file, filename)
		return decodeErr
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payload)
}

// withUpload opens the uploaded image and closes it once fn returns
func withUpload(c *gin.Context, fn func(file multipart.File, filename string) error) error {
	header, err := c.FormFile(imageField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: limit is %d bytes", domain.ErrUploadTooLarge, maxErr.Limit)
		}
		return errMissingImage
	}

	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	return fn(file, header.Filename)
}

// parseLimit reads the optional limit form value. Empty means default (0).
func parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidLimit, raw)
	}
	if err := domain.ValidateLimit(limit); err != nil {
		return 0, err
	}
	return limit, nil
}

func (h *Handler) renderError(c *gin.Context, page pageData, err error) {
	status, kind, message := classifyError(err)
	if kind == kindUnexpected || kind == kindNetwork {
		log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	page.Message = message
	page.IsError = kind != kindInput
	c.HTML(status, "index.html", page)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status, kind, message := classifyError(err)
	if kind == kindUnexpected || kind == kindNetwork {
		log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{
		"error": message,
		"kind":  kind,
	})
}
