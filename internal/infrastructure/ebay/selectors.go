package ebay

import "fmt"

// Selectors holds the CSS selectors used to pull listings out of a
// search-results page. The site's markup is not a stable contract, so
// all of them live here and can be overridden from configuration.
type Selectors struct {
	Items string `mapstructure:"items"`
	Title string `mapstructure:"title"`
	Price string `mapstructure:"price"`
	Link  string `mapstructure:"link"`
}

// DefaultSelectors matches the search-results markup of www.ebay.com
var DefaultSelectors = Selectors{
	Items: "#srp-river-results ul.srp-results li.s-item",
	Title: ".s-item__title",
	Price: ".s-item__price",
	Link:  ".s-item__link",
}

// Validate checks that every selector is set
func (s Selectors) Validate() error {
	switch {
	case s.Items == "":
		return fmt.Errorf("items selector is empty")
	case s.Title == "":
		return fmt.Errorf("title selector is empty")
	case s.Price == "":
		return fmt.Errorf("price selector is empty")
	case s.Link == "":
		return fmt.Errorf("link selector is empty")
	}
	return nil
}
