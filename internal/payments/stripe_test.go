package payments

import (
	"context"
	"strings"
	"testing"

	"github.com/stripe/stripe-go/v79"
)

func TestLinkBuilder_sessionParams(t *testing.T) {
	b := NewLinkBuilder("sk_test_placeholder")

	t.Run("Given a standard amount When built Then subscription mode with the mapped price", func(t *testing.T) {
		params := b.sessionParams("Hartwell & Price LLP", 1250, "deal-1")

		if *params.Mode != string(stripe.CheckoutSessionModeSubscription) {
			t.Errorf("expected subscription mode, got %s", *params.Mode)
		}
		if len(params.LineItems) != 1 || *params.LineItems[0].Price != DefaultPlanPrices[1250] {
			t.Errorf("expected mapped Growth price, got %+v", params.LineItems)
		}
		if *params.ClientReferenceID != "deal-1" {
			t.Errorf("expected client reference id, got %s", *params.ClientReferenceID)
		}
	})

	t.Run("Given a non-standard amount When built Then one-time charge in minor units", func(t *testing.T) {
		params := b.sessionParams("Hartwell & Price LLP", 1800, "deal-2")

		if *params.Mode != string(stripe.CheckoutSessionModePayment) {
			t.Errorf("expected payment mode, got %s", *params.Mode)
		}
		pd := params.LineItems[0].PriceData
		if pd == nil || *pd.UnitAmount != 180000 {
			t.Fatalf("expected unit amount 180000, got %+v", pd)
		}
		if *pd.Currency != "usd" {
			t.Errorf("expected usd, got %s", *pd.Currency)
		}
		if !strings.Contains(*pd.ProductData.Name, "Hartwell & Price LLP") {
			t.Errorf("expected firm name in product, got %s", *pd.ProductData.Name)
		}
	})

	t.Run("Given each standard tier When built Then each maps to its own price", func(t *testing.T) {
		seen := map[string]bool{}
		for _, amount := range []int64{650, 1250, 3000} {
			params := b.sessionParams("x", amount, "d")
			priceID := *params.LineItems[0].Price
			if seen[priceID] {
				t.Errorf("amount %d reuses price %s", amount, priceID)
			}
			seen[priceID] = true
		}
	})
}

func TestLinkBuilder_CreateLink(t *testing.T) {
	ctx := context.Background()

	t.Run("Given a placeholder key When linking Then a mock URL with the reference id and no network", func(t *testing.T) {
		for _, key := range []string{"", "your_stripe_key", "sk_test_placeholder_integration"} {
			b := NewLinkBuilder(key)

			url := b.CreateLink(ctx, "Hartwell & Price LLP", 1250, "deal-77")

			if !strings.Contains(url, "deal-77") {
				t.Errorf("key %q: expected reference id in mock url, got %s", key, url)
			}
			if !strings.Contains(url, "mock_") {
				t.Errorf("key %q: expected clearly marked mock url, got %s", key, url)
			}
		}
	})
}
