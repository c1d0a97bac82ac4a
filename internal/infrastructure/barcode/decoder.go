package barcode

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ebaylookup/backend/internal/domain"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/datamatrix"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxBytes caps the size of an uploaded image
const DefaultMaxBytes int64 = 10 << 20

var extensionRegex = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// Options configures a Decoder. Zero values fall back to defaults.
type Options struct {
	MaxBytes int64
	TempDir  string // empty means os.TempDir()
}

// Decoder finds barcodes in uploaded images
type Decoder struct {
	maxBytes int64
	tempDir  string
}

// NewDecoder creates a new barcode decoder
func NewDecoder(opts Options) *Decoder {
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	return &Decoder{
		maxBytes: maxBytes,
		tempDir:  opts.TempDir,
	}
}

// DecodeUpload writes the upload to a temporary file, decodes the first
// barcode found in it and removes the file again on every path.
func (d *Decoder) DecodeUpload(ctx context.Context, r io.Reader, filename string) (*domain.BarcodePayload, error) {
	path, err := d.materialize(r, filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			log.Printf("[BARCODE] warning: failed to remove temp file %s: %v", path, rmErr)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := DecodeFile(path)
	if err != nil {
		log.Printf("[BARCODE] No barcode decoded from %q: %v", filename, err)
		return nil, err
	}

	log.Printf("[BARCODE] Decoded %s barcode %q from %q", payload.Format, payload.Text, filename)
	return payload, nil
}

// materialize copies r into a fresh temp file and returns its path.
// The file is already removed when an error is returned.
func (d *Decoder) materialize(r io.Reader, filename string) (string, error) {
	f, err := os.CreateTemp(d.tempDir, "upload-*"+tempSuffix(filename))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()

	n, copyErr := io.Copy(f, io.LimitReader(r, d.maxBytes+1))
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		err = fmt.Errorf("failed to store upload: %w", copyErr)
	case closeErr != nil:
		err = fmt.Errorf("failed to store upload: %w", closeErr)
	case n > d.maxBytes:
		err = fmt.Errorf("%w: limit is %d bytes", domain.ErrUploadTooLarge, d.maxBytes)
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}

// tempSuffix keeps the original extension so the file stays recognizable
func tempSuffix(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if !extensionRegex.MatchString(ext) {
		return ""
	}
	return ext
}

// DecodeFile decodes the first barcode in the image stored at path
func DecodeFile(path string) (*domain.BarcodePayload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedImage, err)
	}

	return DecodeImage(img)
}

// DecodeImage returns the payload of the first barcode any reader finds.
// 2-D symbologies are tried before 1-D ones.
func DecodeImage(img image.Image) (*domain.BarcodePayload, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedImage, err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	for _, reader := range newReaders() {
		result, err := reader.Decode(bmp, hints)
		if err != nil {
			continue
		}
		return &domain.BarcodePayload{
			Text:   result.GetText(),
			Format: result.GetBarcodeFormat().String(),
		}, nil
	}

	return nil, domain.ErrNoBarcode
}

// newReaders lists the supported symbologies in lookup order.
// EAN-13 is read directly so UPC-A symbols keep their leading zero.
func newReaders() []gozxing.Reader {
	return []gozxing.Reader{
		qrcode.NewQRCodeReader(),
		datamatrix.NewDataMatrixReader(),
		oned.NewEAN13Reader(),
		oned.NewEAN8Reader(),
		oned.NewUPCEReader(),
		oned.NewCode128Reader(),
		oned.NewCode39Reader(),
		oned.NewITFReader(),
		oned.NewCode93Reader(),
		oned.NewCodaBarReader(),
	}
}
