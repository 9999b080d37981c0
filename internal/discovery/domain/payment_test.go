package domain

import "testing"

func TestNewAmountFormatsTwoDecimals(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{169.99, "169.99"},
		{89.9, "89.90"},
		{1000, "1000.00"},
		{0.005, "0.01"},
	}
	for _, tt := range tests {
		if got := NewAmount("USD", tt.value); got.Value != tt.want {
			t.Fatalf("NewAmount(%v) = %q, want %q", tt.value, got.Value, tt.want)
		}
	}
}

func TestAmountCents(t *testing.T) {
	cents, err := Amount{Currency: "USD", Value: "169.99"}.Cents()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cents != 16999 {
		t.Fatalf("expected 16999 cents, got %d", cents)
	}

	if _, err := (Amount{Value: "not-a-number"}).Cents(); err == nil {
		t.Fatal("expected an error for a malformed value")
	}
}

func TestTotalsConsistent(t *testing.T) {
	item := PaymentItem{Label: "Coffee Maker", Amount: NewAmount("USD", 169.99)}

	consistent := PaymentDetails{
		ID:           "order_s_1",
		DisplayItems: []PaymentItem{item},
		Total:        PaymentItem{Label: "Total", Amount: item.Amount},
	}
	if !consistent.TotalsConsistent() {
		t.Fatal("single-item total equal to the line item must be consistent")
	}

	inconsistent := consistent
	inconsistent.Total = PaymentItem{Label: "Total", Amount: NewAmount("USD", 1.00)}
	if inconsistent.TotalsConsistent() {
		t.Fatal("mismatched total must be inconsistent")
	}
}
