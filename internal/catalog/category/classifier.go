// Package category maps a free-text purchase intent to one of a fixed set of
// catalog categories. Classification is purely advisory: any failure yields
// "no category" and the caller searches unfiltered.
package category

import (
	"context"
	"fmt"
	"strings"

	"merchant_agent_backend/internal/ai/gemini"
	"merchant_agent_backend/platform/logger"
)

// None is the sentinel the classifier returns when nothing matches well.
const None = "none"

// Definition is one entry in the fixed category table.
type Definition struct {
	Key         string
	SourceID    string
	Description string
}

// The closed category table. Source IDs are the catalog's category path ids.
var definitions = []Definition{
	{"computers", "abcat0500000", "All computers and tablets"},
	{"laptops", "abcat0502000", "Laptop computers"},
	{"desktops", "abcat0501000", "Desktop computers"},
	{"tablets", "pcmcat209000050006", "Tablets and iPads"},
	{"tvs", "abcat0101000", "Televisions and home theater"},
	{"appliances", "abcat0900000", "Home appliances"},
	{"refrigerators", "abcat0901000", "Refrigerators and freezers"},
	{"headphones", "abcat0204000", "Headphones and earbuds"},
	{"cameras", "abcat0401000", "Cameras and camcorders"},
	{"phones", "abcat0800000", "Cell phones and smartphones"},
	{"gaming", "abcat0700000", "Video games and gaming consoles"},
	{"audio", "abcat0200000", "Audio equipment and speakers"},
	{"smart_home", "pcmcat1496256099917", "Smart home devices"},
	{"wearables", "pcmcat332000050000", "Wearable technology like smartwatches"},
	{"coffee_makers", "pcmcat367400050001", "Coffee makers and espresso machines"},
}

var sourceIDByKey = func() map[string]string {
	m := make(map[string]string, len(definitions))
	for _, d := range definitions {
		m[d.Key] = d.SourceID
	}
	return m
}()

// Classifier resolves a search term to a category key via the external
// text-classification capability.
type Classifier struct {
	gen gemini.Generator
	log *logger.Logger
}

// New creates a classifier. A nil generator disables classification; every
// call then returns no category.
func New(gen gemini.Generator, log *logger.Logger) *Classifier {
	return &Classifier{gen: gen, log: log}
}

// Classify returns the source category ID and key for the term, or empty
// values when classification is indeterminate. It never returns an error:
// a wrong or missing category degrades precision, not availability.
func (c *Classifier) Classify(ctx context.Context, term string) (sourceID, key string) {
	if c.gen == nil {
		return "", ""
	}

	response, err := c.gen.GenerateText(ctx, buildPrompt(term))
	if err != nil {
		if c.log != nil {
			c.log.Warn("category classification failed", "term", term, "error", err.Error())
		}
		return "", ""
	}

	candidate := strings.ToLower(strings.TrimSpace(response))
	if candidate == None {
		return "", ""
	}
	id, ok := sourceIDByKey[candidate]
	if !ok {
		if c.log != nil {
			c.log.Warn("category classification returned unknown key", "term", term, "key", candidate)
		}
		return "", ""
	}

	if c.log != nil {
		c.log.Debug("category detected", "term", term, "category", candidate)
	}
	return id, candidate
}

func buildPrompt(term string) string {
	var sb strings.Builder
	for _, d := range definitions {
		fmt.Fprintf(&sb, "- %s: %s\n", d.Key, d.Description)
	}

	return fmt.Sprintf(`Given this product search query: %q

Select the MOST SPECIFIC category that matches the user's intent from these options:

%s
Rules:
1. Choose the MOST SPECIFIC category (e.g., "desktops" instead of "computers" if they want a desktop)
2. If the query mentions "laptop", choose "laptops"
3. If the query mentions "desktop" or "tower", choose "desktops"
4. If the query is generic like "computer for work", choose "computers" (broader category)
5. Return ONLY the category key (e.g., "desktops"), not the description
6. If none match well, return %q

Return only the category key as a single word.
`, term, sb.String(), None)
}
