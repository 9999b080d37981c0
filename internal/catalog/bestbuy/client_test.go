package bestbuy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"merchant_agent_backend/platform/logger"
)

func testLogger() *logger.Logger {
	return logger.New("test")
}

func TestSearchParsesProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"total": 3,
			"products": [
				{"sku": 100, "name": "Espresso Machine", "salePrice": 199.99, "manufacturer": "Breville"},
				{"sku": 200, "name": "Drip Coffee Maker", "salePrice": 79.99},
				{"sku": 100, "name": "Espresso Machine Duplicate", "salePrice": 199.99}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "key", BaseURL: server.URL}, testLogger())
	defer client.Close()

	out := client.Search(context.Background(), SearchParams{Term: "coffee maker", MaxResults: 3})
	if out.FromFallback {
		t.Fatalf("expected live results, got fallback: %s", out.FallbackReason)
	}
	if len(out.Items) != 2 {
		t.Fatalf("expected 2 products after SKU dedupe, got %d", len(out.Items))
	}
	if out.Items[0].SKU != 100 || out.Items[0].Name != "Espresso Machine" {
		t.Fatalf("unexpected first product: %+v", out.Items[0])
	}
	if out.Items[0].Manufacturer == nil || *out.Items[0].Manufacturer != "Breville" {
		t.Fatalf("expected manufacturer to be carried through")
	}
}

func TestSearchSkipsMalformedItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"total": 3,
			"products": [
				{"sku": 1, "name": "Good Item", "salePrice": 59.99},
				{"name": "Missing SKU", "salePrice": 10},
				{"sku": 2, "salePrice": 20}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "key", BaseURL: server.URL}, testLogger())
	defer client.Close()

	out := client.Search(context.Background(), SearchParams{Term: "anything", MaxResults: 3})
	if out.FromFallback {
		t.Fatalf("per-item failures must not trigger the fallback: %s", out.FallbackReason)
	}
	if len(out.Items) != 1 || out.Items[0].SKU != 1 {
		t.Fatalf("expected only the valid item, got %+v", out.Items)
	}
}

func TestSearchFallbackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "key", BaseURL: server.URL}, testLogger())
	defer client.Close()

	out := client.Search(context.Background(), SearchParams{Term: "coffee maker", MaxResults: 3})
	if !out.FromFallback {
		t.Fatal("expected fallback on non-2xx response")
	}
	if len(out.Items) != 3 {
		t.Fatalf("expected 3 sample products, got %d", len(out.Items))
	}
	if !strings.Contains(out.Items[0].Name, "Keurig") {
		t.Fatalf("expected coffee samples for a coffee term, got %q", out.Items[0].Name)
	}
}

func TestSearchFallbackOnEmptyBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total": 0, "products": []}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "key", BaseURL: server.URL}, testLogger())
	defer client.Close()

	out := client.Search(context.Background(), SearchParams{Term: "laptop", MaxResults: 3})
	if !out.FromFallback {
		t.Fatal("expected fallback on empty batch")
	}
	if len(out.Items) != 3 {
		t.Fatalf("expected 3 sample products, got %d", len(out.Items))
	}
}

func TestSearchFallbackOnWholeBatchUnparseable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"total": 2,
			"products": [
				{"name": "no sku", "salePrice": 10},
				{"sku": 5, "name": "no price"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "key", BaseURL: server.URL}, testLogger())
	defer client.Close()

	out := client.Search(context.Background(), SearchParams{Term: "tv", MaxResults: 2})
	if !out.FromFallback {
		t.Fatal("expected fallback when no item in the batch parses")
	}
	if len(out.Items) != 2 {
		t.Fatalf("expected 2 sample products, got %d", len(out.Items))
	}
}

func TestDemoModeMakesNoNetworkCall(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, testLogger())
	defer client.Close()

	if !client.DemoMode() {
		t.Fatal("client without an API key must be in demo mode")
	}

	out := client.Search(context.Background(), SearchParams{Term: "headphones", MaxResults: 3})
	if !out.FromFallback {
		t.Fatal("demo mode must serve the sample pool")
	}
	if got := calls.Load(); got != 0 {
		t.Fatalf("demo mode made %d network calls", got)
	}
}

func TestSearchURLCriteria(t *testing.T) {
	client := NewClient(Config{APIKey: "secret", BaseURL: "https://example.test/v1"}, nil)
	defer client.Close()

	maxPrice := 500.0
	u := client.searchURL(SearchParams{
		Term:       "coffee maker",
		MaxResults: 3,
		MaxPrice:   &maxPrice,
		Oversample: 15,
		CategoryID: "pcmcat367400050001",
	})

	for _, want := range []string{
		"search=coffee+maker",
		"categoryPath.id=pcmcat367400050001",
		"type=hardgood",
		"salePrice>=50",
		"salePrice<=500",
		"pageSize=15",
		"sort=customerReviewCount.desc",
		"apiKey=secret",
	} {
		if !strings.Contains(u, want) {
			t.Fatalf("search URL missing %q: %s", want, u)
		}
	}
}

func TestSearchURLOversampleFloor(t *testing.T) {
	client := NewClient(Config{APIKey: "secret"}, nil)
	defer client.Close()

	u := client.searchURL(SearchParams{Term: "tv", MaxResults: 10, Oversample: 5})
	if !strings.Contains(u, "pageSize=30") {
		t.Fatalf("expected page size floored at 3x desired, got %s", u)
	}
}

func TestSearchURLCallerPriceBounds(t *testing.T) {
	client := NewClient(Config{APIKey: "secret"}, nil)
	defer client.Close()

	minPrice := 10.0
	u := client.searchURL(SearchParams{Term: "tv", MaxResults: 3, MinPrice: &minPrice})
	if !strings.Contains(u, "salePrice>=10") {
		t.Fatalf("caller-supplied floor must override the default: %s", u)
	}
	if strings.Contains(u, "salePrice<=") {
		t.Fatalf("no upper bound requested, got %s", u)
	}
}
