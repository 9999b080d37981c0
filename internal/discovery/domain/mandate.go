package domain

import (
	"fmt"
	"time"
)

// CartContents is the purchase-ready bundle inside a cart mandate.
type CartContents struct {
	ID                           string         `json:"id"`
	UserCartConfirmationRequired bool           `json:"user_cart_confirmation_required"`
	PaymentRequest               PaymentRequest `json:"payment_request"`
	CartExpiry                   time.Time      `json:"cart_expiry"`
	MerchantName                 string         `json:"merchant_name"`
}

// CartMandate is a priced, time-bounded, confirmable purchase proposal.
type CartMandate struct {
	Contents CartContents `json:"contents"`
}

// OfferMetadata is side-channel display data keyed by the cart mandate id.
// It is always produced together with its mandate and never emitted alone.
type OfferMetadata struct {
	CartID      string  `json:"cart_id"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
	URL         *string `json:"url,omitempty"`
}

// CartID formats the mandate id for a sequence number within a session.
func CartID(sessionID string, seq int) string {
	return fmt.Sprintf("cart_%s_%d", sessionID, seq)
}

// OrderID formats the order id for a sequence number within a session.
func OrderID(sessionID string, seq int) string {
	return fmt.Sprintf("order_%s_%d", sessionID, seq)
}
