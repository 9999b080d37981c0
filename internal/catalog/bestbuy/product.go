// Package bestbuy is the catalog source adapter. It queries the Best Buy
// Products API by free-text term and absorbs every source failure into a
// built-in sample fallback, so callers always receive a usable candidate list.
package bestbuy

// Product is a candidate catalog item. Sourced read-only from the catalog
// API; never mutated after retrieval.
type Product struct {
	SKU                   int64    `json:"sku"`
	Name                  string   `json:"name"`
	SalePrice             float64  `json:"salePrice"`
	RegularPrice          *float64 `json:"regularPrice,omitempty"`
	Manufacturer          *string  `json:"manufacturer,omitempty"`
	ModelNumber           *string  `json:"modelNumber,omitempty"`
	ShortDescription      *string  `json:"shortDescription,omitempty"`
	Image                 *string  `json:"image,omitempty"`
	URL                   *string  `json:"url,omitempty"`
	CustomerReviewAverage *float64 `json:"customerReviewAverage,omitempty"`
	InStoreAvailability   *bool    `json:"inStoreAvailability,omitempty"`
	OnlineAvailability    *bool    `json:"onlineAvailability,omitempty"`
}

func ptr[T any](v T) *T { return &v }
