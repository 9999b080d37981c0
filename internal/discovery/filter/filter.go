// Package filter narrows an oversupplied candidate list to the items that are
// the literal product the buyer asked for. Filtering is a precision
// refinement, never a hard requirement: every failure mode degrades to the
// first N candidates in input order.
package filter

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"merchant_agent_backend/internal/ai/gemini"
	"merchant_agent_backend/internal/catalog/bestbuy"
	"merchant_agent_backend/internal/discovery/domain"
	"merchant_agent_backend/platform/logger"
)

var indexArraySchema = &genai.Schema{
	Type:  genai.TypeArray,
	Items: &genai.Schema{Type: genai.TypeInteger},
}

// Relevance selects the candidates matching the buyer's intent.
type Relevance struct {
	gen gemini.Generator
	log *logger.Logger
}

// New creates a relevance filter. A nil generator makes every call use the
// deterministic first-N fallback.
func New(gen gemini.Generator, log *logger.Logger) *Relevance {
	return &Relevance{gen: gen, log: log}
}

// Filter returns at most desired candidates. Lists already at or under the
// target size pass through untouched, in order. Out-of-range indices in the
// ranking response are dropped; zero usable indices triggers the fallback.
func (f *Relevance) Filter(ctx context.Context, candidates []bestbuy.Product, intent string, desired int) domain.Result[[]bestbuy.Product] {
	if desired < 1 {
		desired = 1
	}
	if len(candidates) <= desired {
		return domain.OK(candidates)
	}

	if f.gen == nil {
		return domain.Fallback(firstN(candidates, desired), "ranking capability not configured")
	}

	var indices []int
	err := f.gen.GenerateJSON(ctx, buildPrompt(candidates, intent, desired), indexArraySchema, &indices)
	if err != nil {
		if f.log != nil {
			f.log.Warn("relevance ranking failed", "error", err.Error())
		}
		return domain.Fallback(firstN(candidates, desired), fmt.Sprintf("ranking call failed: %v", err))
	}

	selected := make([]bestbuy.Product, 0, desired)
	dropped := 0
	for _, idx := range indices {
		if idx < 0 || idx >= len(candidates) {
			dropped++
			continue
		}
		selected = append(selected, candidates[idx])
		if len(selected) == desired {
			break
		}
	}

	if len(selected) == 0 {
		return domain.Fallback(firstN(candidates, desired), "ranking selected no usable candidates")
	}
	if dropped > 0 {
		if f.log != nil {
			f.log.Warn("ranking returned out-of-range indices", "dropped", dropped, "kept", len(selected))
		}
		// Partial precision beats discarding the signal; the drop count stays
		// observable in the result.
		return domain.Fallback(selected, fmt.Sprintf("dropped %d out-of-range ranking indices", dropped))
	}
	return domain.OK(selected)
}

func firstN(candidates []bestbuy.Product, n int) []bestbuy.Product {
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]bestbuy.Product, len(candidates))
	copy(out, candidates)
	return out
}

func buildPrompt(candidates []bestbuy.Product, intent string, desired int) string {
	var list strings.Builder
	for i, p := range candidates {
		description := ""
		if p.ShortDescription != nil {
			description = *p.ShortDescription
		}
		fmt.Fprintf(&list, "%d. %s - $%.2f - %s\n", i, p.Name, p.SalePrice, description)
	}

	return fmt.Sprintf(`You are helping filter product search results for relevance.

User's search intent: %q

Available products:
%s
Your task: Select ONLY the %d products that are the ACTUAL MAIN ITEM the user wants to buy.

CRITICAL FILTERING RULES - FOLLOW STRICTLY:
1. ABSOLUTELY EXCLUDE: filters, refills, air filters, water filters, replacement parts, accessories
2. ABSOLUTELY EXCLUDE: cables, cases, chargers, adapters, batteries, cleaning supplies
3. ABSOLUTELY EXCLUDE: any product with words like "filter", "refill", "replacement", "accessory", "cable", "case", "adapter"
4. ONLY SELECT: The main product itself (e.g., actual MacBooks, actual refrigerators, actual TVs)
5. If user searches "refrigerator", select REFRIGERATORS not "refrigerator filters"
6. If user searches "MacBook", select MACBOOKS not "MacBook cases"
7. Look for the COMPLETE PRODUCT NAME that matches the search intent: every key
   search term must literally occur in the chosen item's name

Return ONLY the indices (0-based) of the %d most relevant MAIN PRODUCTS as a JSON array.
If you cannot find %d main products, return fewer indices.
Example: [12, 14]
`, intent, list.String(), desired, desired, desired)
}
