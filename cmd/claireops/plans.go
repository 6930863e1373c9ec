package main

import (
	"github.com/spf13/cobra"

	"github.com/theclaireai/claireops/internal/payments"
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Sync the subscription plan catalog to Stripe",
	Long: `Ensure each standard subscription tier exists in Stripe as a
product with a monthly recurring price. Existing products and prices are
reused; only missing ones are created.`,
	RunE: runPlans,
}

func runPlans(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return payments.NewLinkBuilder(cfg.Stripe.SecretKey).SyncPlans()
}
