package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:     "claireops",
		Short:   "ClaireOps - onboarding automation and call routing for ClaireAI",
		Version: Version,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default claireops.yaml)")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(plansCmd)
	rootCmd.AddCommand(sendTestCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
