package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theclaireai/claireops/internal/crm"
)

var purgeDryRun bool

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete test deals from the CRM",
	Long: `Scan recent deals for test-data keywords and delete the matches.
Deals whose name contains a protected substring are never touched, even
when a keyword also matches. Use --dry-run to preview.`,
	RunE: runPurge,
}

func init() {
	purgeCmd.Flags().BoolVar(&purgeDryRun, "dry-run", false, "List matches without deleting")
}

func runPurge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cl, err := buildClients(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	deals, err := cl.crm.ListRecentDeals(ctx)
	if err != nil {
		return err
	}

	matches := crm.SelectPurgeable(deals, crm.DefaultPurgeKeywords, crm.DefaultProtectedNames)
	if len(matches) == 0 {
		fmt.Println("No test deals found.")
		return nil
	}

	for _, d := range matches {
		if purgeDryRun {
			fmt.Printf("would delete %s (%s)\n", d.ID, d.Name)
			continue
		}
		if err := cl.crm.DeleteDeal(ctx, d.ID); err != nil {
			return fmt.Errorf("delete deal %s: %w", d.ID, err)
		}
		fmt.Printf("deleted %s (%s)\n", d.ID, d.Name)
	}
	return nil
}
