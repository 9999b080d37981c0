package bestbuy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"merchant_agent_backend/platform/logger"
)

const defaultBaseURL = "https://api.bestbuy.com/v1"

// DefaultMinPrice is the price floor applied when the caller supplies no
// minimum, suppressing low-value accessory noise in search results.
const DefaultMinPrice = 50.0

// Fields requested from the products endpoint.
const showFields = "sku,name,salePrice,regularPrice,manufacturer,modelNumber," +
	"shortDescription,image,url,customerReviewAverage," +
	"inStoreAvailability,onlineAvailability"

// Config for the catalog client.
type Config struct {
	APIKey   string
	BaseURL  string
	MinPrice float64
	Timeout  time.Duration
	// RPS and Burst bound the client-side call rate against the quota'd
	// public API. Zero RPS disables limiting.
	RPS   float64
	Burst int
}

// Client queries the Best Buy Products API. A Client is scoped to one
// discovery request; Close releases its transport resources.
type Client struct {
	apiKey     string
	baseURL    string
	minPrice   float64
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logger.Logger
}

// SearchParams are the inputs for one product search.
type SearchParams struct {
	Term       string
	MaxResults int
	MinPrice   *float64
	MaxPrice   *float64
	// Oversample is how many items to fetch so the relevance filter has
	// material to discard. Floored at 3x MaxResults.
	Oversample int
	// CategoryID narrows the search to a source category, when known.
	CategoryID string
}

// SearchOutcome is a search result plus how it was obtained. Search never
// fails outright: when the source is unavailable the sample pool serves.
type SearchOutcome struct {
	Items          []Product
	FromFallback   bool
	FallbackReason string
}

// NewClient creates a catalog client. An empty API key puts the client in
// demo mode, serving only the built-in sample pool.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.MinPrice == 0 {
		cfg.MinPrice = DefaultMinPrice
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RPS > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		minPrice:   cfg.MinPrice,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
		log:        log,
	}
}

// DemoMode reports whether the client has no API key and serves samples only.
func (c *Client) DemoMode() bool {
	return c.apiKey == ""
}

// Search returns candidate products for the term, ordered by the source's
// descending review volume. On transport failure, non-2xx response, an empty
// batch, or a whole batch failing to parse, it falls back to the sample pool.
// Individual malformed items are skipped, not fatal.
func (c *Client) Search(ctx context.Context, p SearchParams) SearchOutcome {
	if p.MaxResults < 1 {
		p.MaxResults = 1
	}

	if c.DemoMode() {
		return SearchOutcome{
			Items:          SampleProducts(p.Term, p.MaxResults),
			FromFallback:   true,
			FallbackReason: "no catalog API key configured",
		}
	}

	items, err := c.fetch(ctx, p)
	if err != nil {
		if c.log != nil {
			c.log.CatalogError("search", err)
		}
		return SearchOutcome{
			Items:          SampleProducts(p.Term, p.MaxResults),
			FromFallback:   true,
			FallbackReason: err.Error(),
		}
	}
	if len(items) == 0 {
		return SearchOutcome{
			Items:          SampleProducts(p.Term, p.MaxResults),
			FromFallback:   true,
			FallbackReason: "catalog source returned no parseable products",
		}
	}
	return SearchOutcome{Items: items}
}

// Close releases the client's transport resources. Safe to call on every
// exit path of a discovery request.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) fetch(ctx context.Context, p SearchParams) ([]Product, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("catalog rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(p), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("catalog API returned %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Total    int               `json:"total"`
		Products []json.RawMessage `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	if c.log != nil {
		c.log.Debug("catalog search", "term", p.Term, "total", payload.Total, "page", len(payload.Products))
	}

	items := make([]Product, 0, len(payload.Products))
	seen := make(map[int64]struct{}, len(payload.Products))
	for _, raw := range payload.Products {
		product, err := parseProduct(raw)
		if err != nil {
			if c.log != nil {
				c.log.CatalogError("parse_product", err)
			}
			continue
		}
		// SKUs are never reused within one response.
		if _, dup := seen[product.SKU]; dup {
			continue
		}
		seen[product.SKU] = struct{}{}
		items = append(items, product)
	}
	return items, nil
}

func (c *Client) searchURL(p SearchParams) string {
	criteria := []string{"search=" + url.QueryEscape(p.Term)}

	if p.CategoryID != "" {
		criteria = append(criteria, "categoryPath.id="+p.CategoryID)
	}

	// hardgood excludes warranty and service listings.
	criteria = append(criteria, "type=hardgood")

	minPrice := c.minPrice
	if p.MinPrice != nil {
		minPrice = *p.MinPrice
	}
	criteria = append(criteria, fmt.Sprintf("salePrice>=%s", formatPrice(minPrice)))
	if p.MaxPrice != nil {
		criteria = append(criteria, fmt.Sprintf("salePrice<=%s", formatPrice(*p.MaxPrice)))
	}

	pageSize := p.Oversample
	if floor := p.MaxResults * 3; pageSize < floor {
		pageSize = floor
	}

	query := url.Values{}
	query.Set("apiKey", c.apiKey)
	query.Set("format", "json")
	query.Set("show", showFields)
	query.Set("pageSize", strconv.Itoa(pageSize))
	// Most reviewed first: actual products surface ahead of accessories.
	query.Set("sort", "customerReviewCount.desc")

	return fmt.Sprintf("%s/products(%s)?%s", c.baseURL, strings.Join(criteria, "&"), query.Encode())
}

// parseProduct validates the per-item required fields the same way the
// upstream schema does: sku, name, and salePrice must be present.
func parseProduct(raw json.RawMessage) (Product, error) {
	var wire struct {
		SKU                   *int64   `json:"sku"`
		Name                  *string  `json:"name"`
		SalePrice             *float64 `json:"salePrice"`
		RegularPrice          *float64 `json:"regularPrice"`
		Manufacturer          *string  `json:"manufacturer"`
		ModelNumber           *string  `json:"modelNumber"`
		ShortDescription      *string  `json:"shortDescription"`
		Image                 *string  `json:"image"`
		URL                   *string  `json:"url"`
		CustomerReviewAverage *float64 `json:"customerReviewAverage"`
		InStoreAvailability   *bool    `json:"inStoreAvailability"`
		OnlineAvailability    *bool    `json:"onlineAvailability"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Product{}, fmt.Errorf("malformed product record: %w", err)
	}
	if wire.SKU == nil || wire.Name == nil || wire.SalePrice == nil {
		return Product{}, fmt.Errorf("product record missing required fields")
	}

	return Product{
		SKU:                   *wire.SKU,
		Name:                  *wire.Name,
		SalePrice:             *wire.SalePrice,
		RegularPrice:          wire.RegularPrice,
		Manufacturer:          wire.Manufacturer,
		ModelNumber:           wire.ModelNumber,
		ShortDescription:      wire.ShortDescription,
		Image:                 wire.Image,
		URL:                   wire.URL,
		CustomerReviewAverage: wire.CustomerReviewAverage,
		InStoreAvailability:   wire.InStoreAvailability,
		OnlineAvailability:    wire.OnlineAvailability,
	}, nil
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
