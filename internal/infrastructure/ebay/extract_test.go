package ebay

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/ebaylookup/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func resultsPage(items ...string) string {
	return `<html><body><div id="srp-river-results"><ul class="srp-results">` +
		strings.Join(items, "\n") +
		`</ul></div></body></html>`
}

func item(title, price, link string) string {
	var b strings.Builder
	b.WriteString(`<li class="s-item">`)
	if link != "" {
		b.WriteString(`<a class="s-item__link" href="` + link + `">`)
	} else {
		b.WriteString(`<a>`)
	}
	if title != "" {
		b.WriteString(`<div class="s-item__title">` + title + `</div>`)
	}
	b.WriteString(`</a>`)
	if price != "" {
		b.WriteString(`<span class="s-item__price">` + price + `</span>`)
	}
	b.WriteString(`</li>`)
	return b.String()
}

func TestExtractListings_MissingPriceIsNA(t *testing.T) {
	client := NewClient(Options{})
	doc := newDoc(t, resultsPage(item("Mouse", "", "https://www.ebay.com/itm/1")))

	listings := client.extractListings(doc, 5, nil)

	require.Len(t, listings, 1)
	assert.Equal(t, domain.PriceNotAvailable, listings[0].Price)
	assert.Equal(t, "N/A", listings[0].Price)
}

func TestExtractListings_SkipsItemsWithoutTitleOrLink(t *testing.T) {
	client := NewClient(Options{})
	doc := newDoc(t, resultsPage(
		item("", "$1.00", "https://www.ebay.com/itm/1"),
		item("Has everything", "$2.00", "https://www.ebay.com/itm/2"),
		item("No link", "$3.00", ""),
		item("Also fine", "", "https://www.ebay.com/itm/4"),
	))

	listings := client.extractListings(doc, 10, nil)

	assert.Equal(t, []domain.Listing{
		{Title: "Has everything", Price: "$2.00", Link: "https://www.ebay.com/itm/2"},
		{Title: "Also fine", Price: "N/A", Link: "https://www.ebay.com/itm/4"},
	}, listings)
}

func TestExtractListings_TruncatesBeforeFiltering(t *testing.T) {
	client := NewClient(Options{})
	doc := newDoc(t, resultsPage(
		item("One", "$1", "https://www.ebay.com/itm/1"),
		item("", "$2", "https://www.ebay.com/itm/2"),
		item("Three", "$3", "https://www.ebay.com/itm/3"),
	))

	listings := client.extractListings(doc, 2, nil)

	require.Len(t, listings, 1)
	assert.Equal(t, "One", listings[0].Title)
}

func TestExtractListings_FewerItemsThanLimit(t *testing.T) {
	client := NewClient(Options{})
	doc := newDoc(t, resultsPage(
		item("One", "$1", "https://www.ebay.com/itm/1"),
		item("Two", "$2", "https://www.ebay.com/itm/2"),
	))

	for limit := domain.MinLimit; limit <= domain.MaxLimit; limit++ {
		listings := client.extractListings(doc, limit, nil)
		want := 2
		if limit < 2 {
			want = limit
		}
		assert.Len(t, listings, want, "limit %d", limit)
	}
}

func TestExtractListings_IgnoresItemsOutsideResultsRegion(t *testing.T) {
	client := NewClient(Options{})
	html := `<html><body>
		<ul class="srp-results">` + item("Stray", "$1", "https://www.ebay.com/itm/0") + `</ul>
		<div id="srp-river-results"><ul class="srp-results">` + item("Real", "$2", "https://www.ebay.com/itm/2") + `</ul></div>
	</body></html>`

	listings := client.extractListings(newDoc(t, html), 5, nil)

	require.Len(t, listings, 1)
	assert.Equal(t, "Real", listings[0].Title)
}

func TestExtractListings_KeepsRawText(t *testing.T) {
	client := NewClient(Options{})
	doc := newDoc(t, resultsPage(item("\n  Mouse &amp; Pad  ", " $5.00 ", "https://www.ebay.com/itm/1")))

	listings := client.extractListings(doc, 5, nil)

	require.Len(t, listings, 1)
	assert.Equal(t, "\n  Mouse & Pad  ", listings[0].Title)
	assert.Equal(t, " $5.00 ", listings[0].Price)
}

func TestExtractListings_NegativeLimit(t *testing.T) {
	client := NewClient(Options{})
	doc := newDoc(t, resultsPage(item("One", "$1", "https://www.ebay.com/itm/1")))

	assert.Empty(t, client.extractListings(doc, -1, nil))
}

func TestResolveLink(t *testing.T) {
	base, err := url.Parse("https://www.ebay.com/sch/i.html?_nkw=mouse")
	require.NoError(t, err)

	tests := []struct {
		name     string
		href     string
		expected string
	}{
		{"absolute", "https://www.ebay.com/itm/1?hash=abc", "https://www.ebay.com/itm/1?hash=abc"},
		{"root relative", "/itm/2", "https://www.ebay.com/itm/2"},
		{"path relative", "itm/3", "https://www.ebay.com/sch/itm/3"},
		{"protocol relative", "//www.ebay.com/itm/4", "https://www.ebay.com/itm/4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveLink(base, tt.href))
		})
	}
}

func TestSelectorsValidate(t *testing.T) {
	assert.NoError(t, DefaultSelectors.Validate())

	missing := DefaultSelectors
	missing.Price = ""
	assert.EqualError(t, missing.Validate(), "price selector is empty")
}
