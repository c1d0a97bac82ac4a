package domain

// PriceNotAvailable is reported when a listing carries no price element
const PriceNotAvailable = "N/A"

// Result limit bounds
const (
	MinLimit     = 1
	MaxLimit     = 10
	DefaultLimit = 5
)

// Query sources
const (
	SourceText    = "text"
	SourceBarcode = "barcode"
)

// Listing is a single search result scraped from the listings site.
// Title and Price keep the text exactly as it appears in the page markup.
type Listing struct {
	Title string `json:"title"`
	Price string `json:"price"`
	Link  string `json:"link"`
}

// BarcodePayload is the first barcode symbol decoded from an uploaded image
type BarcodePayload struct {
	Text   string `json:"text"`
	Format string `json:"format"`
}

// SearchRequest represents a text search request
type SearchRequest struct {
	Query string `json:"query" form:"query"`
	Limit int    `json:"limit,omitempty" form:"limit"`
}

// SearchResult is what a lookup hands back to the presentation layer
type SearchResult struct {
	Query    string          `json:"query"`
	Source   string          `json:"source"` // "text" or "barcode"
	Limit    int             `json:"limit"`
	Barcode  *BarcodePayload `json:"barcode,omitempty"`
	Listings []Listing       `json:"listings"`
}
