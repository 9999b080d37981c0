package domain

import (
	"strings"
	"time"
)

// IntentMandate captures what the buyer wants to purchase. Created once per
// shopping session and immutable afterwards.
type IntentMandate struct {
	NaturalLanguageDescription   string    `json:"natural_language_description"`
	Merchants                    []string  `json:"merchants,omitempty"`
	SKUs                         []string  `json:"skus,omitempty"`
	RequiresRefundability        bool      `json:"requires_refundability"`
	UserCartConfirmationRequired bool      `json:"user_cart_confirmation_required"`
	IntentExpiry                 time.Time `json:"intent_expiry"`
}

// NewIntentMandate builds an intent expiring after the given window.
func NewIntentMandate(description string, now time.Time, expiry time.Duration) IntentMandate {
	return IntentMandate{
		NaturalLanguageDescription:   strings.TrimSpace(description),
		UserCartConfirmationRequired: true,
		IntentExpiry:                 now.Add(expiry),
	}
}

// Empty reports whether the intent carries no usable description.
func (m IntentMandate) Empty() bool {
	return strings.TrimSpace(m.NaturalLanguageDescription) == ""
}

// Expired reports whether the intent has passed its expiry.
func (m IntentMandate) Expired(now time.Time) bool {
	return !m.IntentExpiry.IsZero() && now.After(m.IntentExpiry)
}
