package filter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"google.golang.org/genai"

	"merchant_agent_backend/internal/catalog/bestbuy"
	"merchant_agent_backend/internal/discovery/domain"
)

type stubGenerator struct {
	indices []int
	err     error
}

func (s *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return "", fmt.Errorf("not used")
}

func (s *stubGenerator) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	if s.err != nil {
		return s.err
	}
	raw, err := json.Marshal(s.indices)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func candidates(n int) []bestbuy.Product {
	items := make([]bestbuy.Product, n)
	for i := range items {
		items[i] = bestbuy.Product{
			SKU:       int64(1000 + i),
			Name:      fmt.Sprintf("Product %d", i),
			SalePrice: float64(50 + i),
		}
	}
	return items
}

func TestFilterPassthroughAtOrUnderTarget(t *testing.T) {
	f := New(&stubGenerator{err: fmt.Errorf("must not be called")}, nil)

	for _, n := range []int{1, 2, 3} {
		input := candidates(n)
		res := f.Filter(context.Background(), input, "anything", 3)
		if res.Outcome != domain.OutcomeOK {
			t.Fatalf("n=%d: expected OK passthrough, got %v", n, res.Outcome)
		}
		if len(res.Value) != n {
			t.Fatalf("n=%d: expected %d items, got %d", n, n, len(res.Value))
		}
		for i := range input {
			if res.Value[i].SKU != input[i].SKU {
				t.Fatalf("n=%d: order changed at %d", n, i)
			}
		}
	}
}

func TestFilterSelectsRankedIndices(t *testing.T) {
	input := candidates(8)
	f := New(&stubGenerator{indices: []int{5, 2, 0}}, nil)

	res := f.Filter(context.Background(), input, "a product", 3)
	if res.Outcome != domain.OutcomeOK {
		t.Fatalf("expected OK, got %v (%s)", res.Outcome, res.Reason)
	}
	want := []int64{1005, 1002, 1000}
	for i, sku := range want {
		if res.Value[i].SKU != sku {
			t.Fatalf("position %d: expected SKU %d, got %d", i, sku, res.Value[i].SKU)
		}
	}
}

func TestFilterDropsOutOfRangeIndices(t *testing.T) {
	input := candidates(8)
	f := New(&stubGenerator{indices: []int{2, 7, 20}}, nil)

	res := f.Filter(context.Background(), input, "a product", 3)
	if res.Outcome != domain.OutcomeFallback {
		t.Fatalf("expected fallback outcome for a partial ranking, got %v", res.Outcome)
	}
	if len(res.Value) != 2 {
		t.Fatalf("expected the 2 valid indices kept, got %d", len(res.Value))
	}
	if res.Value[0].SKU != 1002 || res.Value[1].SKU != 1007 {
		t.Fatalf("unexpected selection: %+v", res.Value)
	}
	if !strings.Contains(res.Reason, "1") {
		t.Fatalf("drop count must be observable in the reason, got %q", res.Reason)
	}
}

func TestFilterNegativeIndicesDropped(t *testing.T) {
	input := candidates(5)
	f := New(&stubGenerator{indices: []int{-1, 3}}, nil)

	res := f.Filter(context.Background(), input, "a product", 3)
	if res.Outcome != domain.OutcomeFallback {
		t.Fatalf("expected fallback, got %v", res.Outcome)
	}
	if len(res.Value) != 1 || res.Value[0].SKU != 1003 {
		t.Fatalf("unexpected selection: %+v", res.Value)
	}
}

func TestFilterFallbackOnRankingError(t *testing.T) {
	input := candidates(10)
	f := New(&stubGenerator{err: fmt.Errorf("model unavailable")}, nil)

	res := f.Filter(context.Background(), input, "a product", 3)
	if res.Outcome != domain.OutcomeFallback {
		t.Fatalf("expected fallback on ranking error, got %v", res.Outcome)
	}
	if len(res.Value) != 3 {
		t.Fatalf("expected first 3 candidates, got %d", len(res.Value))
	}
	for i := 0; i < 3; i++ {
		if res.Value[i].SKU != input[i].SKU {
			t.Fatalf("fallback must preserve input order at %d", i)
		}
	}
}

func TestFilterFallbackOnZeroUsableIndices(t *testing.T) {
	input := candidates(6)
	f := New(&stubGenerator{indices: []int{40, 50}}, nil)

	res := f.Filter(context.Background(), input, "a product", 3)
	if res.Outcome != domain.OutcomeFallback {
		t.Fatalf("expected fallback, got %v", res.Outcome)
	}
	if len(res.Value) != 3 || res.Value[0].SKU != input[0].SKU {
		t.Fatalf("expected first-N fallback, got %+v", res.Value)
	}
}

func TestFilterNilGenerator(t *testing.T) {
	input := candidates(7)
	f := New(nil, nil)

	res := f.Filter(context.Background(), input, "a product", 3)
	if res.Outcome != domain.OutcomeFallback {
		t.Fatalf("expected fallback without ranking capability, got %v", res.Outcome)
	}
	if len(res.Value) != 3 {
		t.Fatalf("expected 3 items, got %d", len(res.Value))
	}
}

func TestFilterCapsAtDesired(t *testing.T) {
	input := candidates(8)
	f := New(&stubGenerator{indices: []int{0, 1, 2, 3, 4}}, nil)

	res := f.Filter(context.Background(), input, "a product", 3)
	if len(res.Value) != 3 {
		t.Fatalf("selection must cap at the desired count, got %d", len(res.Value))
	}
}
