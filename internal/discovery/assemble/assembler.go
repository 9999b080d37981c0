// Package assemble converts a selected candidate (or a generated placeholder
// line) into a signed-off cart mandate: priced, time-bounded, and requiring
// explicit buyer confirmation.
package assemble

import (
	"context"
	"fmt"
	"time"

	"merchant_agent_backend/internal/catalog/bestbuy"
	"merchant_agent_backend/internal/discovery/domain"
	"merchant_agent_backend/internal/discovery/repository"
	"merchant_agent_backend/internal/events"
	"merchant_agent_backend/platform/apperr"
)

// DefaultMerchantName is used when no merchant identity is supplied, such as
// on the generated-placeholder path.
const DefaultMerchantName = "Generic Merchant"

// Assembler builds cart mandates and emits each one, paired with its display
// metadata, as a single atomic unit to the store and the event sink.
type Assembler struct {
	store      repository.Store
	bus        events.Bus
	cartExpiry time.Duration
}

// Options carries per-offer display data.
type Options struct {
	MerchantName string
	Description  *string
	Image        *string
	URL          *string
}

// New creates an assembler.
func New(store repository.Store, bus events.Bus, cartExpiry time.Duration) *Assembler {
	if cartExpiry <= 0 {
		cartExpiry = 30 * time.Minute
	}
	return &Assembler{store: store, bus: bus, cartExpiry: cartExpiry}
}

// FromProduct assembles an offer for a catalog product.
func (a *Assembler) FromProduct(ctx context.Context, sessionID string, product bestbuy.Product, seq int, createdAt time.Time, merchantName string) (domain.CartMandate, domain.OfferMetadata, error) {
	item := domain.PaymentItem{
		Label:  product.Name,
		Amount: domain.NewAmount("USD", product.SalePrice),
	}
	return a.Assemble(ctx, sessionID, item, seq, createdAt, Options{
		MerchantName: merchantName,
		Description:  product.ShortDescription,
		Image:        product.Image,
		URL:          product.URL,
	})
}

// Assemble builds exactly one single-line-item cart mandate, persists the
// mandate/metadata pair, and publishes it to the sink. Multi-item assembly is
// an extension point this pipeline does not exercise.
func (a *Assembler) Assemble(ctx context.Context, sessionID string, item domain.PaymentItem, seq int, createdAt time.Time, opts Options) (domain.CartMandate, domain.OfferMetadata, error) {
	merchant := opts.MerchantName
	if merchant == "" {
		merchant = DefaultMerchantName
	}

	cartID := domain.CartID(sessionID, seq)

	paymentRequest := domain.PaymentRequest{
		MethodData: []domain.PaymentMethodData{
			{
				SupportedMethods: "CARD",
				Data: map[string]any{
					"network": []string{"mastercard", "paypal", "amex"},
				},
			},
		},
		Details: domain.PaymentDetails{
			ID:           domain.OrderID(sessionID, seq),
			DisplayItems: []domain.PaymentItem{item},
			Total: domain.PaymentItem{
				Label:  "Total",
				Amount: item.Amount,
			},
		},
		// The buyer's shipping address is always collected with the offer.
		Options: domain.PaymentOptions{RequestShipping: true},
	}

	mandate := domain.CartMandate{
		Contents: domain.CartContents{
			ID:                           cartID,
			UserCartConfirmationRequired: true,
			PaymentRequest:               paymentRequest,
			CartExpiry:                   createdAt.Add(a.cartExpiry),
			MerchantName:                 merchant,
		},
	}

	metadata := domain.OfferMetadata{
		CartID:      cartID,
		Description: opts.Description,
		Image:       opts.Image,
		URL:         opts.URL,
	}

	rec := repository.Record{Mandate: mandate, Metadata: metadata}
	if err := a.store.PutMandate(ctx, rec); err != nil {
		return domain.CartMandate{}, domain.OfferMetadata{}, apperr.Wrap(apperr.KindInternal,
			fmt.Sprintf("failed to persist cart mandate %s", cartID), err)
	}

	if err := a.bus.PublishSync(ctx, events.CartOfferReady{
		BaseEvent: events.NewBaseEvent(),
		SessionID: sessionID,
		Sequence:  seq,
		Mandate:   mandate,
		Metadata:  metadata,
	}); err != nil {
		return domain.CartMandate{}, domain.OfferMetadata{}, apperr.Wrap(apperr.KindInternal,
			fmt.Sprintf("failed to emit cart mandate %s", cartID), err)
	}

	return mandate, metadata, nil
}
