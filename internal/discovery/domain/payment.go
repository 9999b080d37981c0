// Package domain holds the mandate and payment shapes exchanged with the
// shopping agent. Values are immutable once created; a superseded cart
// mandate is dropped and re-issued, never edited.
package domain

import (
	"fmt"
	"math"
	"strconv"
)

// Amount is a currency code plus a decimal value carried as a string with
// two fraction digits, matching the payment-request wire shape.
type Amount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

// NewAmount builds an Amount from a float price.
func NewAmount(currency string, value float64) Amount {
	return Amount{
		Currency: currency,
		Value:    strconv.FormatFloat(value, 'f', 2, 64),
	}
}

// Cents returns the amount in minor units. Totals are compared in cents to
// avoid float drift.
func (a Amount) Cents() (int64, error) {
	v, err := strconv.ParseFloat(a.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount value %q: %w", a.Value, err)
	}
	return int64(math.Round(v * 100)), nil
}

// PaymentItem is a single priced entry within an offer.
type PaymentItem struct {
	Label  string `json:"label"`
	Amount Amount `json:"amount"`
}

// PaymentMethodData describes one payment method the merchant accepts.
type PaymentMethodData struct {
	SupportedMethods string         `json:"supported_methods"`
	Data             map[string]any `json:"data,omitempty"`
}

// PaymentOptions carries the information the merchant needs collected
// alongside payment.
type PaymentOptions struct {
	RequestShipping bool `json:"request_shipping"`
}

// PaymentDetails is the priced content of a payment request.
type PaymentDetails struct {
	ID           string        `json:"id"`
	DisplayItems []PaymentItem `json:"display_items"`
	Total        PaymentItem   `json:"total"`
}

// PaymentRequest is the W3C-style payment request embedded in a cart mandate.
type PaymentRequest struct {
	MethodData []PaymentMethodData `json:"method_data"`
	Details    PaymentDetails      `json:"details"`
	Options    PaymentOptions      `json:"options"`
}

// TotalsConsistent reports whether the total equals the sum of the display
// items, compared in cents.
func (d PaymentDetails) TotalsConsistent() bool {
	total, err := d.Total.Amount.Cents()
	if err != nil {
		return false
	}
	var sum int64
	for _, item := range d.DisplayItems {
		cents, err := item.Amount.Cents()
		if err != nil {
			return false
		}
		sum += cents
	}
	return sum == total
}
