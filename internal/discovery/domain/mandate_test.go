package domain

import (
	"testing"
	"time"
)

func TestCartAndOrderIDs(t *testing.T) {
	if got := CartID("abc", 2); got != "cart_abc_2" {
		t.Fatalf("CartID = %q", got)
	}
	if got := OrderID("abc", 2); got != "order_abc_2" {
		t.Fatalf("OrderID = %q", got)
	}
}

func TestIntentMandateLifecycle(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	intent := NewIntentMandate("  a coffee maker  ", now, 24*time.Hour)

	if intent.NaturalLanguageDescription != "a coffee maker" {
		t.Fatalf("description not trimmed: %q", intent.NaturalLanguageDescription)
	}
	if !intent.UserCartConfirmationRequired {
		t.Fatal("confirmation must always be required")
	}
	if intent.Empty() {
		t.Fatal("populated intent reported empty")
	}
	if intent.Expired(now.Add(23 * time.Hour)) {
		t.Fatal("intent expired before its window")
	}
	if !intent.Expired(now.Add(25 * time.Hour)) {
		t.Fatal("intent not expired after its window")
	}

	if !(IntentMandate{NaturalLanguageDescription: "   "}).Empty() {
		t.Fatal("whitespace-only intent must be empty")
	}
}

func TestStateTerminal(t *testing.T) {
	for _, s := range []State{StateStart, StateSearching, StateFiltering, StateAssembling} {
		if s.Terminal() {
			t.Fatalf("%s must not be terminal", s)
		}
	}
	for _, s := range []State{StateCompleted, StateErrored} {
		if !s.Terminal() {
			t.Fatalf("%s must be terminal", s)
		}
	}
}
