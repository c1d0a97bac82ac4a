package ebay

import (
	"log"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/ebaylookup/backend/internal/domain"
)

// extractListings walks the result items in document order.
// Items are truncated to limit before field checks, so the result may be
// shorter than limit when some items lack a title or link.
func (c *Client) extractListings(doc *goquery.Document, limit int, base *url.URL) []domain.Listing {
	if limit < 0 {
		limit = 0
	}
	listings := make([]domain.Listing, 0, limit)

	items := doc.Find(c.selectors.Items)
	if items.Length() > limit {
		items = items.Slice(0, limit)
	}

	items.Each(func(i int, s *goquery.Selection) {
		listing, ok := c.extractListing(s, base)
		if !ok {
			if c.debug {
				log.Printf("[EBAY] Skipping item %d: missing title or link", i)
			}
			return
		}
		listings = append(listings, listing)
	})

	return listings
}

// extractListing pulls title, price and link out of a single item
func (c *Client) extractListing(s *goquery.Selection, base *url.URL) (domain.Listing, bool) {
	titleEl := s.Find(c.selectors.Title).First()
	if titleEl.Length() == 0 {
		return domain.Listing{}, false
	}

	href, exists := s.Find(c.selectors.Link).First().Attr("href")
	if !exists {
		return domain.Listing{}, false
	}

	price := domain.PriceNotAvailable
	if priceEl := s.Find(c.selectors.Price).First(); priceEl.Length() > 0 {
		price = priceEl.Text()
	}

	return domain.Listing{
		Title: titleEl.Text(),
		Price: price,
		Link:  resolveLink(base, href),
	}, true
}

// resolveLink makes href absolute against the page URL.
// Absolute hrefs are returned untouched.
func resolveLink(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() || base == nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
