package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	sendTestDealID string
	sendTestEmail  string
	sendTestFee    int64
)

var sendTestCmd = &cobra.Command{
	Use:   "sendtest",
	Short: "Render and email a test invoice",
	Long: `Exercise the billing, document, and mail collaborators end to end
against a real deal: create a draft invoice, render the PDF, and send it
through the CRM's mail API. With unconfigured credentials every step
runs in simulation mode, which makes this a safe smoke test.`,
	RunE: runSendTest,
}

func init() {
	sendTestCmd.Flags().StringVar(&sendTestDealID, "deal", "DEMO", "CRM deal id to send through")
	sendTestCmd.Flags().StringVar(&sendTestEmail, "to", "", "Recipient email address")
	sendTestCmd.Flags().Int64Var(&sendTestFee, "fee", 0, "Invoice amount in dollars (default: configured fee)")
	sendTestCmd.MarkFlagRequired("to")
}

func runSendTest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cl, err := buildClients(cfg)
	if err != nil {
		return err
	}

	fee := sendTestFee
	if fee <= 0 {
		fee = cfg.Billing.DefaultFee
	}

	ctx := context.Background()
	const firm = "Sendtest Diagnostics LLC"

	invoice, err := cl.billing.CreateInvoice(ctx, firm, fee)
	if err != nil {
		return err
	}
	paymentURL := cl.payments.CreateLink(ctx, firm, invoice.Amount, sendTestDealID)

	pdfPath, err := cl.docs.RenderInvoice(invoice, firm, paymentURL)
	if err != nil {
		return err
	}
	fmt.Printf("Rendered %s\n", pdfPath)

	receipt, err := cl.crm.SendInvoice(ctx, sendTestDealID, sendTestEmail, invoice, pdfPath, paymentURL)
	if err != nil {
		return err
	}
	fmt.Printf("Sent invoice %s to %s: %s\n", invoice.ID, sendTestEmail, receipt)
	return nil
}
