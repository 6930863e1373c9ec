package payments

import (
	"fmt"
	"log"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/price"
	"github.com/stripe/stripe-go/v79/product"
)

// Plan is one standard subscription tier.
type Plan struct {
	Name        string
	AmountCents int64
	Description string
}

// StandardPlans are the three pre-provisioned tiers.
var StandardPlans = []Plan{
	{
		Name:        "Starter Plan",
		AmountCents: 65000,
		Description: "24/7 AI Receptionist - Starter Tier",
	},
	{
		Name:        "Growth Plan",
		AmountCents: 125000,
		Description: "24/7 AI Receptionist - Growth Tier",
	},
	{
		Name:        "Enterprise Plan",
		AmountCents: 300000,
		Description: "24/7 AI Receptionist - Enterprise Tier",
	},
}

// SyncPlans makes sure every standard tier exists in Stripe as a product
// with an active monthly price. Idempotent: existing products and prices
// are left alone.
func (b *LinkBuilder) SyncPlans() error {
	if b.Placeholder() {
		return fmt.Errorf("stripe key not configured")
	}

	for _, plan := range StandardPlans {
		log.Printf("[Stripe] Syncing %s", plan.Name)

		productID, err := findOrCreateProduct(plan)
		if err != nil {
			return fmt.Errorf("sync product %s: %w", plan.Name, err)
		}
		if err := findOrCreatePrice(plan, productID); err != nil {
			return fmt.Errorf("sync price %s: %w", plan.Name, err)
		}
	}
	return nil
}

func findOrCreateProduct(plan Plan) (string, error) {
	search := product.Search(&stripe.ProductSearchParams{
		SearchParams: stripe.SearchParams{
			Query: fmt.Sprintf("name:'%s'", plan.Name),
		},
	})
	for search.Next() {
		p := search.Product()
		log.Printf("[Stripe] Found existing product %s", p.ID)
		return p.ID, nil
	}
	if err := search.Err(); err != nil {
		return "", err
	}

	p, err := product.New(&stripe.ProductParams{
		Name:        stripe.String(plan.Name),
		Description: stripe.String(plan.Description),
		Metadata:    map[string]string{"tier": "subscription"},
	})
	if err != nil {
		return "", err
	}
	log.Printf("[Stripe] Created product %s", p.ID)
	return p.ID, nil
}

func findOrCreatePrice(plan Plan, productID string) error {
	list := price.List(&stripe.PriceListParams{
		Product:  stripe.String(productID),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		Active:   stripe.Bool(true),
	})
	for list.Next() {
		p := list.Price()
		if p.UnitAmount == plan.AmountCents && p.Recurring != nil && p.Recurring.Interval == stripe.PriceRecurringIntervalMonth {
			log.Printf("[Stripe] Found matching price %s ($%d/mo)", p.ID, plan.AmountCents/100)
			return nil
		}
	}
	if err := list.Err(); err != nil {
		return err
	}

	p, err := price.New(&stripe.PriceParams{
		Product:    stripe.String(productID),
		UnitAmount: stripe.Int64(plan.AmountCents),
		Currency:   stripe.String(string(stripe.CurrencyUSD)),
		Recurring: &stripe.PriceRecurringParams{
			Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
		},
		Metadata: map[string]string{"tier_name": plan.Name},
	})
	if err != nil {
		return err
	}
	log.Printf("[Stripe] Created price %s", p.ID)
	return nil
}
