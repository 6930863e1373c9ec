package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List recent CRM deals",
	Long: `Fetch the most recent deals from the CRM and print them with id,
name, and amount. Used to eyeball what test data has accumulated before
running purge.`,
	RunE: runAudit,
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cl, err := buildClients(cfg)
	if err != nil {
		return err
	}

	deals, err := cl.crm.ListRecentDeals(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Recent Deals (%d)\n", len(deals))
	fmt.Println(strings.Repeat("=", 40))
	for _, d := range deals {
		fmt.Printf("  %-22s $%-8d %s\n", d.ID, d.Amount, d.Name)
	}
	return nil
}
