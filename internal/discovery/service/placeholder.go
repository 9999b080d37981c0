package service

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"merchant_agent_backend/internal/ai/gemini"
	"merchant_agent_backend/internal/discovery/domain"
)

var paymentItemsSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"label": {Type: genai.TypeString},
			"amount": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"currency": {Type: genai.TypeString},
					"value":    {Type: genai.TypeString},
				},
				Required: []string{"currency", "value"},
			},
		},
		Required: []string{"label", "amount"},
	},
}

// PlaceholderGenerator produces stand-in line items when search yields
// nothing. This is the pipeline's last resort; its failure is fatal.
type PlaceholderGenerator interface {
	Generate(ctx context.Context, intent string, count int) ([]domain.PaymentItem, error)
}

// GeminiPlaceholderGenerator generates placeholder items with Gemini.
type GeminiPlaceholderGenerator struct {
	gen gemini.Generator
}

// NewPlaceholderGenerator creates a Gemini-backed placeholder generator.
// A nil generator is valid and fails every call, surfacing as an
// UpstreamGenerationFailure in the pipeline.
func NewPlaceholderGenerator(gen gemini.Generator) *GeminiPlaceholderGenerator {
	return &GeminiPlaceholderGenerator{gen: gen}
}

// Generate returns count realistic brand-free line items for the intent.
func (g *GeminiPlaceholderGenerator) Generate(ctx context.Context, intent string, count int) ([]domain.PaymentItem, error) {
	if g.gen == nil {
		return nil, fmt.Errorf("placeholder generation capability not configured")
	}

	prompt := fmt.Sprintf(`Based on the user's request for '%s', your task is to generate %d
complete, unique and realistic payment item JSON objects.

You MUST exclude all branding from the item 'label' field.

Each amount must use currency "USD" and a decimal string value with two
fraction digits.
`, intent, count)

	var items []domain.PaymentItem
	if err := g.gen.GenerateJSON(ctx, prompt, paymentItemsSchema, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("placeholder generation returned no items")
	}
	if len(items) > count {
		items = items[:count]
	}
	return items, nil
}

var _ PlaceholderGenerator = (*GeminiPlaceholderGenerator)(nil)
