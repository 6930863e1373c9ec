// Package payments builds hosted Stripe Checkout links for setup fees and
// keeps the standard subscription plans synced.
package payments

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
)

// Standard plan amounts (whole dollars) mapped to pre-provisioned
// subscription prices. Kept in sync by `claireops plans`.
var DefaultPlanPrices = map[int64]string{
	650:  "price_1SsTZe9vzmXGIElUEMFmo5K8", // Starter
	1250: "price_1SsTZf9vzmXGIElULER2nuHY", // Growth
	3000: "price_1SsTZg9vzmXGIElUAIkpB50V", // Enterprise
}

const (
	defaultSuccessURL = "https://theclaireai.com/onboarding/success"
	defaultCancelURL  = "https://theclaireai.com/onboarding/cancel"
)

// LinkBuilder implements core.PaymentLinker on Stripe Checkout. Its
// CreateLink contract is non-failing: upstream problems degrade to a
// clearly marked fallback URL.
type LinkBuilder struct {
	apiKey     string
	plans      map[int64]string
	successURL string
	cancelURL  string
}

func NewLinkBuilder(apiKey string) *LinkBuilder {
	stripe.Key = apiKey
	return &LinkBuilder{
		apiKey:     apiKey,
		plans:      DefaultPlanPrices,
		successURL: defaultSuccessURL,
		cancelURL:  defaultCancelURL,
	}
}

// WithPlans overrides the amount-to-price map.
func (b *LinkBuilder) WithPlans(plans map[int64]string) *LinkBuilder {
	b.plans = plans
	return b
}

// Placeholder reports whether the configured key is absent or a known
// placeholder, in which case no network call is ever made.
func (b *LinkBuilder) Placeholder() bool {
	return b.apiKey == "" ||
		b.apiKey == "your_stripe_key" ||
		strings.Contains(b.apiKey, "placeholder")
}

// CreateLink creates a checkout session for the setup fee and returns its
// hosted URL. Standard amounts use the pre-provisioned subscription
// price; anything else becomes an ad-hoc one-time charge.
func (b *LinkBuilder) CreateLink(ctx context.Context, firmName string, amount int64, referenceID string) string {
	if b.Placeholder() {
		log.Printf("[Stripe] SIMULATION: mock link for %s", firmName)
		return fmt.Sprintf("https://checkout.stripe.com/pay/mock_%s_claireai", referenceID)
	}

	params := b.sessionParams(firmName, amount, referenceID)
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		log.Printf("[Stripe] Error creating payment link: %v", err)
		return fmt.Sprintf("https://checkout.stripe.com/pay/fallback_%s", referenceID)
	}

	log.Printf("[Stripe] Created payment session for %s: %s", firmName, s.URL)
	return s.URL
}

// sessionParams builds the checkout-session parameters. Split out so the
// plan-selection logic is testable without the network.
func (b *LinkBuilder) sessionParams(firmName string, amount int64, referenceID string) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(b.successURL),
		CancelURL:          stripe.String(b.cancelURL),
		ClientReferenceID:  stripe.String(referenceID),
	}

	if priceID, ok := b.plans[amount]; ok {
		// Subscription mode: the setup fee doubles as the first cycle of
		// the matched plan.
		log.Printf("[Stripe] Matched plan for $%d: %s (subscription mode)", amount, priceID)
		params.Mode = stripe.String(string(stripe.CheckoutSessionModeSubscription))
		params.LineItems = []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(priceID),
			Quantity: stripe.Int64(1),
		}}
		return params
	}

	log.Printf("[Stripe] No plan matched for $%d, using one-time charge", amount)
	params.Mode = stripe.String(string(stripe.CheckoutSessionModePayment))
	params.LineItems = []*stripe.CheckoutSessionLineItemParams{{
		Quantity: stripe.Int64(1),
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(string(stripe.CurrencyUSD)),
			UnitAmount: stripe.Int64(amount * 100),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(fmt.Sprintf("ClaireAI Setup - %s", firmName)),
				Description: stripe.String("Professional setup and configuration of the ClaireAI receptionist: " +
					"voice humanization tuning, knowledge base ingestion, CRM integration, " +
					"custom call routing design and after-hours workflow automation."),
			},
		},
	}}
	return params
}
